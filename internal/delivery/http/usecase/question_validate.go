package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/passai/passai-be/internal/delivery/http/entity"
)

// rawQuestion mirrors one question object as the model emits it, before any
// cleaning. Points arrives as json.Number because models return both 2 and
// "2".
type rawQuestion struct {
	Question      string      `json:"question"`
	Type          string      `json:"type"`
	Options       []string    `json:"options"`
	CorrectAnswer string      `json:"correct_answer"`
	CorrectAlt    string      `json:"correctAnswer"`
	Explanation   string      `json:"explanation"`
	Difficulty    string      `json:"difficulty"`
	Tags          []string    `json:"tags"`
	Points        json.Number `json:"points"`
	Topic         string      `json:"topic"`
}

func (q rawQuestion) answer() string {
	if q.CorrectAnswer != "" {
		return q.CorrectAnswer
	}
	return q.CorrectAlt
}

// extractionStrategy recovers the questions array from one shape the model
// has been observed to return. Strategies are tried in order; the first that
// yields a non-nil slice wins.
type extractionStrategy func(raw json.RawMessage) []json.RawMessage

var extractionStrategies = []extractionStrategy{
	extractDirectArray,
	extractKnownKeys,
	extractSingleQuestion,
	extractFirstArrayValue,
}

// extractQuestionArray parses the model output and recovers the array of
// question objects, tolerating the response shapes the model actually
// produces instead of the one the prompt asks for.
func extractQuestionArray(text string) ([]json.RawMessage, error) {
	clean := stripCodeFence(text)

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("AI output is not valid json: %w", err)
	}

	for _, strategy := range extractionStrategies {
		if items := strategy(raw); items != nil {
			return items, nil
		}
	}
	return nil, fmt.Errorf("no questions array found in AI response")
}

func stripCodeFence(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func extractDirectArray(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func extractKnownKeys(raw json.RawMessage) []json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	for _, key := range []string{"questions", "data", "items", "quiz"} {
		if inner, ok := obj[key]; ok {
			var items []json.RawMessage
			if err := json.Unmarshal(inner, &items); err == nil {
				return items
			}
		}
	}
	return nil
}

// extractSingleQuestion wraps an object that is itself one question (has a
// string "question" field) into a one-element array.
func extractSingleQuestion(raw json.RawMessage) []json.RawMessage {
	var probe struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Question == "" {
		return nil
	}
	return []json.RawMessage{raw}
}

func extractFirstArrayValue(raw json.RawMessage) []json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	for _, value := range obj {
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err == nil && len(items) > 0 {
			return items
		}
	}
	return nil
}

var (
	letterPrefixRe = regexp.MustCompile(`^[A-Da-d][.)]\s*`)
	numberPrefixRe = regexp.MustCompile(`^[1-9][.)]\s*`)
)

// cleanOptionPrefix strips "A. " / "b) " / "1) " style prefixes the model
// adds despite being told not to.
func cleanOptionPrefix(s string) string {
	s = strings.TrimSpace(s)
	if letterPrefixRe.MatchString(s) {
		return letterPrefixRe.ReplaceAllString(s, "")
	}
	return numberPrefixRe.ReplaceAllString(s, "")
}

func defaultPoints(difficulty entity.Difficulty) int {
	switch difficulty {
	case entity.DifficultyEasy:
		return 1
	case entity.DifficultyHard:
		return 4
	default:
		return 2
	}
}

// normalizeQuestion validates and cleans one parsed question. A disallowed
// type (essay, short-answer, matching) is fatal for the whole attempt, so it
// returns an error rather than coercing.
func normalizeQuestion(raw rawQuestion, fallbackDifficulty entity.Difficulty) (entity.GeneratedQuestion, error) {
	question := strings.TrimSpace(raw.Question)
	if question == "" {
		return entity.GeneratedQuestion{}, fmt.Errorf("question text is empty")
	}

	qType := entity.QuestionType(strings.ToLower(strings.TrimSpace(raw.Type)))
	switch qType {
	case entity.TypeMultipleChoice, entity.TypeTrueFalse:
	case "short-answer", "essay", "fill-in-blank", "matching":
		return entity.GeneratedQuestion{}, fmt.Errorf("disallowed question type: %s", raw.Type)
	default:
		// Unrecognized labels ("mcq", "multiple_choice") coerce rather than
		// burning a retry attempt; only the banned types are fatal.
		qType = entity.TypeMultipleChoice
	}

	difficulty := entity.Difficulty(strings.ToLower(strings.TrimSpace(raw.Difficulty)))
	if !difficulty.Valid() {
		difficulty = fallbackDifficulty
		if !difficulty.Valid() {
			difficulty = entity.DifficultyMedium
		}
	}

	answer := cleanOptionPrefix(raw.answer())
	if answer == "" {
		return entity.GeneratedQuestion{}, fmt.Errorf("question has no correct answer")
	}

	var options []string
	switch qType {
	case entity.TypeTrueFalse:
		options = []string{"True", "False"}
		switch {
		case strings.EqualFold(answer, "True"):
			answer = "True"
		case strings.EqualFold(answer, "False"):
			answer = "False"
		default:
			return entity.GeneratedQuestion{}, fmt.Errorf("true-false answer %q is neither True nor False", answer)
		}
	default:
		options = make([]string, 0, len(raw.Options))
		for _, opt := range raw.Options {
			cleaned := cleanOptionPrefix(opt)
			if cleaned != "" {
				options = append(options, cleaned)
			}
		}
		if len(options) != 4 {
			return entity.GeneratedQuestion{}, fmt.Errorf("multiple-choice question needs exactly 4 options, got %d", len(options))
		}
		if !containsFold(options, answer) {
			return entity.GeneratedQuestion{}, fmt.Errorf("correct answer %q is not among the options", answer)
		}
	}

	points := defaultPoints(difficulty)
	if p, err := raw.Points.Int64(); err == nil && p > 0 {
		points = int(p)
	}

	explanation := strings.TrimSpace(raw.Explanation)
	if explanation == "" {
		explanation = "No explanation provided."
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	return entity.GeneratedQuestion{
		ID:            generateQuestionID(question, difficulty),
		Question:      question,
		Type:          qType,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Difficulty:    difficulty,
		Tags:          tags,
		Points:        points,
		Topic:         strings.TrimSpace(raw.Topic),
	}, nil
}

func containsFold(list []string, target string) bool {
	for _, v := range list {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func generateQuestionID(question string, difficulty entity.Difficulty) string {
	sum := sha256.Sum256([]byte(question + "|" + string(difficulty)))
	return "q-" + hex.EncodeToString(sum[:8])
}

// scopeQuestionID namespaces a question ID to one quiz. Stored question IDs
// are globally unique, so the same template (or an identical regenerated
// question) must get a fresh ID per quiz it is persisted into.
func scopeQuestionID(quizID, questionID string) string {
	sum := sha256.Sum256([]byte(quizID + "|" + questionID))
	return "q-" + hex.EncodeToString(sum[:8])
}
