package database

import (
	"encoding/json"
	"fmt"

	"github.com/passai/passai-be/internal/entity"
	"gorm.io/gorm"
)

type templateSeed struct {
	ID            string
	Difficulty    string
	Type          string
	Text          string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Tags          []string
	Points        int
}

// Subject-agnostic fallback questions served when AI generation exhausts its
// retries. Not meant to assess material knowledge, only to keep the quiz flow
// usable while the provider is down.
var templateSeeds = []templateSeed{
	// Easy
	{ID: "t-easy-1", Difficulty: "easy", Type: "multiple-choice", Text: "Which study technique involves testing yourself on material instead of re-reading it?", Options: []string{"Active recall", "Highlighting", "Skimming", "Copying notes"}, CorrectAnswer: "Active recall", Explanation: "Retrieving information from memory strengthens retention far more than passive review.", Tags: []string{"study-skills"}, Points: 1},
	{ID: "t-easy-2", Difficulty: "easy", Type: "multiple-choice", Text: "What is spaced repetition?", Options: []string{"Reviewing material at increasing intervals", "Studying one subject all night", "Reading a chapter twice in a row", "Memorizing without breaks"}, CorrectAnswer: "Reviewing material at increasing intervals", Explanation: "Spacing reviews over time combats the forgetting curve.", Tags: []string{"study-skills"}, Points: 1},
	{ID: "t-easy-3", Difficulty: "easy", Type: "true-false", Text: "Taking short breaks during long study sessions improves focus.", Options: []string{"True", "False"}, CorrectAnswer: "True", Explanation: "Brief breaks restore attention and reduce mental fatigue.", Tags: []string{"study-skills"}, Points: 1},
	{ID: "t-easy-4", Difficulty: "easy", Type: "true-false", Text: "Cramming the night before an exam is the most effective way to retain material long-term.", Options: []string{"True", "False"}, CorrectAnswer: "False", Explanation: "Cramming produces short-lived recall; distributed practice retains far more.", Tags: []string{"study-skills"}, Points: 1},
	{ID: "t-easy-5", Difficulty: "easy", Type: "multiple-choice", Text: "Which environment factor most commonly hurts concentration while studying?", Options: []string{"Frequent phone notifications", "Natural light", "A tidy desk", "Quiet background"}, CorrectAnswer: "Frequent phone notifications", Explanation: "Interruptions force costly context switches and break deep focus.", Tags: []string{"study-skills"}, Points: 1},
	// Medium
	{ID: "t-med-1", Difficulty: "medium", Type: "multiple-choice", Text: "The Pomodoro technique structures work into which pattern?", Options: []string{"25 minutes of focus followed by a 5 minute break", "2 hours of focus followed by lunch", "10 minutes of focus followed by 30 minutes of rest", "Working until the task is complete"}, CorrectAnswer: "25 minutes of focus followed by a 5 minute break", Explanation: "Short timed sprints with regular breaks sustain attention over long sessions.", Tags: []string{"study-skills", "time-management"}, Points: 2},
	{ID: "t-med-2", Difficulty: "medium", Type: "multiple-choice", Text: "What does the Feynman technique ask you to do with a concept?", Options: []string{"Explain it in simple terms as if teaching someone", "Memorize its formal definition", "Read three different textbooks about it", "Write it down ten times"}, CorrectAnswer: "Explain it in simple terms as if teaching someone", Explanation: "Teaching exposes gaps in understanding that passive reading hides.", Tags: []string{"study-skills"}, Points: 2},
	{ID: "t-med-3", Difficulty: "medium", Type: "true-false", Text: "Interleaving different topics in one session generally improves long-term learning compared to blocking one topic at a time.", Options: []string{"True", "False"}, CorrectAnswer: "True", Explanation: "Interleaving forces discrimination between problem types, which deepens learning.", Tags: []string{"study-skills"}, Points: 2},
	{ID: "t-med-4", Difficulty: "medium", Type: "multiple-choice", Text: "Which note-taking method divides the page into cues, notes, and a summary?", Options: []string{"Cornell method", "Mind mapping", "Outlining", "Transcription"}, CorrectAnswer: "Cornell method", Explanation: "The Cornell layout builds in review prompts alongside the raw notes.", Tags: []string{"study-skills", "note-taking"}, Points: 2},
	// Hard
	{ID: "t-hard-1", Difficulty: "hard", Type: "multiple-choice", Text: "Why does retrieval practice outperform re-reading even when retrieval attempts fail?", Options: []string{"The attempt itself strengthens the memory trace and primes later encoding", "Failure makes students read more carefully", "Re-reading is always harmful", "Retrieval shortens total study time"}, CorrectAnswer: "The attempt itself strengthens the memory trace and primes later encoding", Explanation: "Effortful retrieval, even unsuccessful, enhances subsequent learning of the answer.", Tags: []string{"study-skills", "memory"}, Points: 4},
	{ID: "t-hard-2", Difficulty: "hard", Type: "multiple-choice", Text: "Which phenomenon explains why students overestimate their mastery after re-reading familiar material?", Options: []string{"Fluency illusion", "Spacing effect", "Testing effect", "Primacy effect"}, CorrectAnswer: "Fluency illusion", Explanation: "Ease of processing familiar text is mistaken for genuine command of the content.", Tags: []string{"study-skills", "memory"}, Points: 4},
	{ID: "t-hard-3", Difficulty: "hard", Type: "true-false", Text: "Desirable difficulties, such as spacing and interleaving, slow down apparent progress during practice but improve retention.", Options: []string{"True", "False"}, CorrectAnswer: "True", Explanation: "Conditions that make practice harder often make learning more durable.", Tags: []string{"study-skills"}, Points: 4},
}

// SeedQuestionTemplates loads the fallback question bank. Idempotent: skips
// entirely when templates already exist.
func SeedQuestionTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.QuestionTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range templateSeeds {
		options, err := json.Marshal(seed.Options)
		if err != nil {
			return fmt.Errorf("seed %s: %w", seed.ID, err)
		}
		tags, err := json.Marshal(seed.Tags)
		if err != nil {
			return fmt.Errorf("seed %s: %w", seed.ID, err)
		}

		template := entity.QuestionTemplate{
			TemplateID:    seed.ID,
			Difficulty:    seed.Difficulty,
			Type:          seed.Type,
			Text:          seed.Text,
			Options:       string(options),
			CorrectAnswer: seed.CorrectAnswer,
			Explanation:   seed.Explanation,
			Tags:          string(tags),
			Points:        seed.Points,
		}
		if err := db.Create(&template).Error; err != nil {
			return fmt.Errorf("seed %s: %w", seed.ID, err)
		}
	}

	return nil
}
