package entity

// TaskType / TaskPriority - closed sets for generated study tasks.
type TaskType string

const (
	TaskReview     TaskType = "review"
	TaskPractice   TaskType = "practice"
	TaskQuiz       TaskType = "quiz"
	TaskFlashcards TaskType = "flashcards"
	TaskMaterial   TaskType = "material"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskReview, TaskPractice, TaskQuiz, TaskFlashcards, TaskMaterial:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusSkipped    TaskStatus = "skipped"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// PerformanceAnalysis is the aggregated, read-only snapshot of a student's
// performance for one subject. Computed fresh from persisted attempt records
// on every plan request; never itself the source of truth.
type PerformanceAnalysis struct {
	Subject       string            `json:"subject"`
	AverageScore  float64           `json:"average_score"`
	AttemptCount  int               `json:"attempt_count"`
	PassingRate   float64           `json:"passing_rate"` // 0-1
	Trend         string            `json:"trend"`        // improving, declining, stable
	PassingChance float64           `json:"passing_chance"`
	WeakTopics    []TopicMastery    `json:"weak_topics"`
	StrongTopics  []TopicMastery    `json:"strong_topics"`
	Mistakes      []MistakePattern  `json:"common_mistakes"`
	TypeStats     []TypePerformance `json:"type_performance"`
	Recent        []AttemptSummary  `json:"recent_attempts"`
}

type TopicMastery struct {
	Topic    string  `json:"topic"`
	Mastery  float64 `json:"mastery"` // 0-100
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
}

type MistakePattern struct {
	Concept   string           `json:"concept"`
	Frequency int              `json:"frequency"`
	Severity  string           `json:"severity"` // high, medium, low
	Examples  []MistakeExample `json:"examples"` // up to 3
}

type MistakeExample struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type TypePerformance struct {
	Type     string  `json:"type"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"` // 0-100
}

type AttemptSummary struct {
	AttemptID   string  `json:"attempt_id"`
	Score       float64 `json:"score"`
	Passed      bool    `json:"passed"`
	CompletedAt string  `json:"completed_at"`
}

// GeneratedTask is one validated task from the model output.
type GeneratedTask struct {
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Type                 TaskType     `json:"type"`
	Priority             TaskPriority `json:"priority"`
	EstimatedMinutes     int          `json:"estimated_minutes"`
	Topic                string       `json:"topic,omitempty"`
	RequiresVerification bool         `json:"requires_verification"`
	Reasoning            string       `json:"reasoning"`
	DueDate              string       `json:"due_date,omitempty"`
}

// PlanOverview is the model's summary of where the student stands.
type PlanOverview struct {
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	FocusAreas     []string `json:"focus_areas"`
	EstimatedHours float64  `json:"estimated_hours"`
	Confidence     float64  `json:"confidence"` // 0-100
}

// PlanRecommendations - the three free-text horizons.
type PlanRecommendations struct {
	Immediate string `json:"immediate"`
	ShortTerm string `json:"short_term"`
	LongTerm  string `json:"long_term"`
}

// StudyPlanDetail is a persisted plan with its tasks.
type StudyPlanDetail struct {
	PlanID          string              `json:"plan_id"`
	Subject         string              `json:"subject"`
	Active          bool                `json:"active"`
	Overview        PlanOverview        `json:"overview"`
	Recommendations PlanRecommendations `json:"recommendations"`
	Tasks           []GeneratedTask     `json:"tasks"`
	CreatedAt       string              `json:"created_at"`
}

// GeneratePlanRequest requests a plan for a subject. Without ForceRegenerate
// an existing active plan is returned unchanged.
type GeneratePlanRequest struct {
	Subject         string `json:"subject" validate:"required"`
	UserID          string `json:"user_id"`
	ForceRegenerate bool   `json:"force_regenerate"`
}

// UpdateTaskStatusRequest moves one task through its lifecycle.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed skipped"`
}

// GeneratePlanResponse reports the plan and whether it was freshly
// generated or reused.
type GeneratePlanResponse struct {
	Plan      StudyPlanDetail `json:"plan"`
	Generated bool            `json:"generated"`
}
