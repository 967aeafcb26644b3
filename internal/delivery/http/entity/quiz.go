package entity

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionType - permitted generated question types. Anything else returned
// by the model is rejected outright.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTrueFalse      QuestionType = "true-false"
)

func (t QuestionType) Valid() bool {
	return t == TypeMultipleChoice || t == TypeTrueFalse
}

// GeneratedQuestion is a validated, cleaned AI question as returned to
// clients and persisted by the quiz usecase.
type GeneratedQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	Tags          []string     `json:"tags"`
	Points        int          `json:"points"`
	Topic         string       `json:"topic,omitempty"`
}

// GenerateQuizRequest asks for a new AI quiz over a material's extracted
// text.
type GenerateQuizRequest struct {
	Subject       string `json:"subject" validate:"required"`
	MaterialID    string `json:"material_id" validate:"required"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=20"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Mode          string `json:"mode" validate:"omitempty,oneof=practice exam"`
	IncludeAnswer bool   `json:"include_answer"`
}

// GenerateQuizResponse carries the typed generation outcome: callers branch
// on UsedFallback, never on error-message contents.
type GenerateQuizResponse struct {
	QuizID         string              `json:"quiz_id"`
	Subject        string              `json:"subject"`
	Questions      []GeneratedQuestion `json:"questions"`
	UsedFallback   bool                `json:"used_fallback"`
	FallbackReason string              `json:"fallback_reason,omitempty"`
}

// SubmitAttemptRequest grades a set of answers against a stored quiz.
type SubmitAttemptRequest struct {
	UserID  string          `json:"user_id" validate:"required"`
	Answers []AttemptAnswer `json:"answers" validate:"required,min=1,dive"`
}

type AttemptAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

// SubmitAttemptResponse reports the graded attempt.
type SubmitAttemptResponse struct {
	AttemptID string           `json:"attempt_id"`
	QuizID    string           `json:"quiz_id"`
	Score     float64          `json:"score"`
	Passed    bool             `json:"passed"`
	Responses []GradedResponse `json:"responses"`
}

type GradedResponse struct {
	QuestionID    string `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizDetail is a stored quiz with its questions.
type QuizDetail struct {
	QuizID       string              `json:"quiz_id"`
	Subject      string              `json:"subject"`
	Title        string              `json:"title"`
	MaterialID   string              `json:"material_id,omitempty"`
	UsedFallback bool                `json:"used_fallback"`
	Questions    []GeneratedQuestion `json:"questions"`
}
