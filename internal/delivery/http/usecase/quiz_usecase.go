package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/passai/passai-be/internal/delivery/http/entity"
	"github.com/passai/passai-be/internal/delivery/http/repository"
	internalEntity "github.com/passai/passai-be/internal/entity"
	"github.com/passai/passai-be/internal/pkg/mapper"
)

const (
	// maxSourceChars bounds the material text embedded in a prompt
	// (roughly 5,000 tokens).
	maxSourceChars   = 20000
	truncationMarker = "\n\n[Content truncated]"

	// generateAttempts is the total attempt budget for one generation
	// request, with linear backoff attempt*1s between attempts.
	generateAttempts = 2
	backoffUnit      = time.Second

	defaultQuestionCount = 5
	passingScore         = 70.0
)

// TextGenerator is the slice of the LLM client the quiz usecase needs.
// Injected so tests can substitute a canned generator.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, system string, prompt string, maxTokens int) (string, error)
}

type QuizUsecase interface {
	GenerateQuiz(ctx context.Context, req entity.GenerateQuizRequest) (*entity.GenerateQuizResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*entity.QuizDetail, error)
	ListQuizzes(ctx context.Context, subject string) ([]entity.QuizDetail, error)
	SubmitAttempt(ctx context.Context, quizID string, req entity.SubmitAttemptRequest) (*entity.SubmitAttemptResponse, error)
}

type QuizConfig struct {
	DB           *gorm.DB
	Generator    TextGenerator
	Repository   repository.QuizRepository
	MaterialRepo repository.MaterialRepository
	Log          *logrus.Logger
	Config       *viper.Viper
	// Sleep is the backoff delay between attempts; defaults to time.Sleep.
	Sleep func(time.Duration)
}

type quizUsecase struct {
	cfg QuizConfig
}

func NewQuizUsecase(cfg QuizConfig) QuizUsecase {
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &quizUsecase{cfg: cfg}
}

func (u *quizUsecase) GenerateQuiz(ctx context.Context, req entity.GenerateQuizRequest) (*entity.GenerateQuizResponse, error) {
	material, err := u.cfg.MaterialRepo.FindByMaterialID(nil, req.MaterialID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, err
	}
	if strings.TrimSpace(material.ExtractedText) == "" {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Material has no extracted text to generate questions from")
	}

	count := req.QuestionCount
	if count <= 0 {
		count = defaultQuestionCount
	}
	difficulty := entity.Difficulty(req.Difficulty)
	if !difficulty.Valid() {
		difficulty = entity.DifficultyMedium
	}

	questions, genErr := u.generateQuestions(ctx, material.ExtractedText, req.Subject, count, difficulty, req.Mode)

	usedFallback := false
	fallbackReason := ""
	if genErr != nil {
		u.cfg.Log.WithError(genErr).WithField("subject", req.Subject).Warn("AI generation exhausted retries, using template questions")
		questions, err = u.fallbackQuestions(req.Subject, difficulty, count)
		if err != nil {
			return nil, fmt.Errorf("AI generation failed and no fallback templates available: %w", genErr)
		}
		usedFallback = true
		fallbackReason = genErr.Error()
	}

	quizID := "quiz-" + uuid.NewString()
	for i := range questions {
		questions[i].ID = scopeQuestionID(quizID, questions[i].ID)
	}
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s quiz (%s)", req.Subject, difficulty)
	}

	quiz := &internalEntity.Quiz{
		QuizID:         quizID,
		Subject:        req.Subject,
		Title:          title,
		MaterialID:     req.MaterialID,
		QuestionCount:  len(questions),
		Difficulty:     string(difficulty),
		UsedFallback:   usedFallback,
		FallbackReason: fallbackReason,
	}

	records := make([]internalEntity.Question, 0, len(questions))
	for _, q := range questions {
		record, err := mapper.ConvertToQuestionRecord(quizID, q)
		if err != nil {
			return nil, err
		}
		if usedFallback {
			record.GeneratedBy = "template"
		}
		records = append(records, record)
	}

	err = u.cfg.DB.Transaction(func(tx *gorm.DB) error {
		if err := u.cfg.Repository.CreateQuiz(tx, quiz); err != nil {
			return err
		}
		if err := u.cfg.Repository.CreateQuestions(tx, records); err != nil {
			return err
		}
		for _, q := range questions {
			if q.Topic == "" {
				continue
			}
			topic := &internalEntity.Topic{Name: q.Topic, Subject: req.Subject}
			if err := u.cfg.MaterialRepo.UpsertTopic(tx, topic); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !req.IncludeAnswer {
		for i := range questions {
			questions[i].CorrectAnswer = ""
		}
	}

	return &entity.GenerateQuizResponse{
		QuizID:         quizID,
		Subject:        req.Subject,
		Questions:      questions,
		UsedFallback:   usedFallback,
		FallbackReason: fallbackReason,
	}, nil
}

// generateQuestions runs the full attempt (prompt + call + parse + validate)
// under the retry budget. Any failure mode consumes an attempt.
func (u *quizUsecase) generateQuestions(ctx context.Context, sourceText, subject string, count int, difficulty entity.Difficulty, mode string) ([]entity.GeneratedQuestion, error) {
	if u.cfg.Generator == nil {
		return nil, fmt.Errorf("no text generator configured")
	}

	source := truncateSource(sourceText)
	prompt := buildQuestionPrompt(source, subject, count, difficulty, mode)

	var lastErr error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		if attempt > 1 {
			u.cfg.Sleep(time.Duration(attempt-1) * backoffUnit)
		}

		questions, err := u.attemptGenerate(ctx, prompt, count, difficulty)
		if err == nil {
			return questions, nil
		}
		lastErr = err
		u.cfg.Log.WithError(err).WithField("attempt", attempt).Warn("question generation attempt failed")
	}

	return nil, fmt.Errorf("question generation failed after %d attempts: %w", generateAttempts, lastErr)
}

func (u *quizUsecase) attemptGenerate(ctx context.Context, prompt string, count int, difficulty entity.Difficulty) ([]entity.GeneratedQuestion, error) {
	text, err := u.cfg.Generator.GenerateJSON(ctx, questionSystemPrompt, prompt, 3000)
	if err != nil {
		return nil, err
	}

	items, err := extractQuestionArray(text)
	if err != nil {
		return nil, err
	}

	questions := make([]entity.GeneratedQuestion, 0, len(items))
	for _, item := range items {
		var raw rawQuestion
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("question entry is not an object: %w", err)
		}
		q, err := normalizeQuestion(raw, difficulty)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions after validation")
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

func (u *quizUsecase) fallbackQuestions(subject string, difficulty entity.Difficulty, count int) ([]entity.GeneratedQuestion, error) {
	templates, err := u.cfg.Repository.FindTemplates(nil, subject, string(difficulty), count)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		// Relax difficulty before giving up.
		templates, err = u.cfg.Repository.FindTemplates(nil, "", string(entity.DifficultyMedium), count)
		if err != nil {
			return nil, err
		}
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no question templates seeded")
	}

	questions := make([]entity.GeneratedQuestion, 0, len(templates))
	for i := range templates {
		q, err := mapper.ConvertTemplateToGeneratedQuestion(&templates[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (u *quizUsecase) GetQuiz(ctx context.Context, quizID string) (*entity.QuizDetail, error) {
	quiz, err := u.cfg.Repository.FindByQuizID(nil, quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, err
	}
	return u.toQuizDetail(quiz)
}

func (u *quizUsecase) ListQuizzes(ctx context.Context, subject string) ([]entity.QuizDetail, error) {
	quizzes, err := u.cfg.Repository.FindBySubject(nil, subject)
	if err != nil {
		return nil, err
	}
	details := make([]entity.QuizDetail, 0, len(quizzes))
	for i := range quizzes {
		detail, err := u.toQuizDetail(&quizzes[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (u *quizUsecase) toQuizDetail(quiz *internalEntity.Quiz) (*entity.QuizDetail, error) {
	records, err := u.cfg.Repository.FindQuestionsByQuizID(nil, quiz.QuizID)
	if err != nil {
		return nil, err
	}
	questions := make([]entity.GeneratedQuestion, 0, len(records))
	for i := range records {
		q, err := mapper.ConvertToGeneratedQuestion(&records[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return &entity.QuizDetail{
		QuizID:       quiz.QuizID,
		Subject:      quiz.Subject,
		Title:        quiz.Title,
		MaterialID:   quiz.MaterialID,
		UsedFallback: quiz.UsedFallback,
		Questions:    questions,
	}, nil
}

func (u *quizUsecase) SubmitAttempt(ctx context.Context, quizID string, req entity.SubmitAttemptRequest) (*entity.SubmitAttemptResponse, error) {
	quiz, err := u.cfg.Repository.FindByQuizID(nil, quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, err
	}

	records, err := u.cfg.Repository.FindQuestionsByQuizID(nil, quizID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*internalEntity.Question, len(records))
	for i := range records {
		byID[records[i].QuestionID] = &records[i]
	}

	attemptID := "attempt-" + uuid.NewString()
	earned, total := 0, 0
	graded := make([]entity.GradedResponse, 0, len(req.Answers))
	responses := make([]internalEntity.QuestionResponse, 0, len(req.Answers))

	for i := range records {
		total += records[i].Points
	}

	answered := make(map[string]bool, len(req.Answers))
	for _, answer := range req.Answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Question %s does not belong to this quiz", answer.QuestionID))
		}
		if answered[answer.QuestionID] {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Question %s was answered more than once", answer.QuestionID))
		}
		answered[answer.QuestionID] = true
		correct := strings.EqualFold(strings.TrimSpace(answer.Answer), question.CorrectAnswer)
		if correct {
			earned += question.Points
		}
		graded = append(graded, entity.GradedResponse{
			QuestionID:    question.QuestionID,
			UserAnswer:    answer.Answer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   question.Explanation,
		})
		responses = append(responses, internalEntity.QuestionResponse{
			AttemptID:     attemptID,
			QuestionID:    question.QuestionID,
			Subject:       quiz.Subject,
			TopicName:     question.TopicName,
			QuestionText:  question.Text,
			QuestionType:  question.Type,
			UserAnswer:    answer.Answer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     correct,
		})
	}

	score := 0.0
	if total > 0 {
		score = float64(earned) / float64(total) * 100
	}
	passed := score >= passingScore

	attempt := &internalEntity.QuizAttempt{
		AttemptID: attemptID,
		QuizID:    quizID,
		UserID:    req.UserID,
		Subject:   quiz.Subject,
		Score:     score,
		Passed:    passed,
	}

	err = u.cfg.DB.Transaction(func(tx *gorm.DB) error {
		if err := u.cfg.Repository.CreateAttempt(tx, attempt); err != nil {
			return err
		}
		return u.cfg.Repository.CreateResponses(tx, responses)
	})
	if err != nil {
		return nil, err
	}

	return &entity.SubmitAttemptResponse{
		AttemptID: attemptID,
		QuizID:    quizID,
		Score:     score,
		Passed:    passed,
		Responses: graded,
	}, nil
}

func truncateSource(text string) string {
	if len(text) <= maxSourceChars {
		return text
	}
	// Back off to a rune boundary so the cut never leaves invalid UTF-8.
	cut := maxSourceChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}

const questionSystemPrompt = `You are an expert exam author. You generate assessment questions strictly from the study material provided, and you respond with JSON only.`

func buildQuestionPrompt(source, subject string, count int, difficulty entity.Difficulty, mode string) string {
	return fmt.Sprintf(`Generate exactly %d %s questions about %s from the study material below.

Rules:
- Allowed types: "multiple-choice" (exactly 4 options) and "true-false" (options ["True","False"]).
- Do NOT produce short-answer, essay, fill-in-blank or matching questions.
- Do NOT prefix options with letters or numbers ("A. ", "1) ").
- "correct_answer" must exactly equal one of the options.
- Every question needs "explanation", "tags" (array) and "topic".%s

Return ONLY a JSON object of the shape {"questions": [...]}, no markdown, no prose.
Each question object: {"question": "...", "type": "multiple-choice", "options": ["..","..","..",".."], "correct_answer": "..", "explanation": "..", "difficulty": "%s", "tags": [".."], "points": 2, "topic": ".."}

Study material:
%s`, count, difficulty, subject, modeRule(mode), difficulty, source)
}

// modeRule adds one prompt rule steering the question register for exam or
// practice mode. An unset mode adds nothing.
func modeRule(mode string) string {
	switch mode {
	case "exam":
		return "\n- Exam mode: use formal exam wording and keep explanations brief."
	case "practice":
		return "\n- Practice mode: use approachable wording and write explanations that teach the concept."
	}
	return ""
}
