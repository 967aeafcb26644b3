package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/passai/passai-be/internal/delivery/http/entity"
	"github.com/passai/passai-be/internal/delivery/http/repository"
	internalEntity "github.com/passai/passai-be/internal/entity"
)

const (
	minPlanTasks         = 8
	maxPlanTasks         = 12
	defaultTaskMinutes   = 30
	defaultTaskReasoning = "Recommended based on your recent performance."
	planMaxTokens        = 4000
)

type StudyPlanUsecase interface {
	GetAnalysis(ctx context.Context, subject string) (*entity.PerformanceAnalysis, error)
	CreatePersonalizedStudyPlan(ctx context.Context, req entity.GeneratePlanRequest) (*entity.GeneratePlanResponse, error)
	GetActivePlan(ctx context.Context, subject string) (*entity.StudyPlanDetail, error)
	GetPlan(ctx context.Context, planID string) (*entity.StudyPlanDetail, error)
	ListActivePlans(ctx context.Context) ([]entity.StudyPlanDetail, error)
	UpdateTaskStatus(ctx context.Context, taskID, status string) error
}

type StudyPlanConfig struct {
	DB         *gorm.DB
	Generator  TextGenerator
	Repository repository.StudyPlanRepository
	QuizRepo   repository.QuizRepository
	Log        *logrus.Logger
	Config     *viper.Viper
	Sleep      func(time.Duration)
}

type studyPlanUsecase struct {
	cfg StudyPlanConfig
}

func NewStudyPlanUsecase(cfg StudyPlanConfig) StudyPlanUsecase {
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &studyPlanUsecase{cfg: cfg}
}

func (u *studyPlanUsecase) GetAnalysis(ctx context.Context, subject string) (*entity.PerformanceAnalysis, error) {
	attempts, err := u.cfg.QuizRepo.FindAttemptsBySubject(nil, subject)
	if err != nil {
		return nil, err
	}
	responses, err := u.cfg.QuizRepo.FindResponsesBySubject(nil, subject)
	if err != nil {
		return nil, err
	}
	return buildAnalysis(subject, attempts, responses), nil
}

// CreatePersonalizedStudyPlan is idempotent per subject: an existing active
// plan is returned unchanged unless ForceRegenerate is set. Generating a new
// plan deactivates the prior one instead of deleting it.
func (u *studyPlanUsecase) CreatePersonalizedStudyPlan(ctx context.Context, req entity.GeneratePlanRequest) (*entity.GeneratePlanResponse, error) {
	if !req.ForceRegenerate {
		existing, err := u.cfg.Repository.FindActiveBySubject(nil, req.Subject)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if existing != nil {
			detail, err := u.toPlanDetail(existing)
			if err != nil {
				return nil, err
			}
			return &entity.GeneratePlanResponse{Plan: *detail, Generated: false}, nil
		}
	}

	analysis, err := u.GetAnalysis(ctx, req.Subject)
	if err != nil {
		return nil, err
	}
	if analysis.AttemptCount == 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "No quiz attempts recorded for this subject yet")
	}

	plan, err := u.generatePlan(ctx, analysis)
	if err != nil {
		return nil, err
	}

	record, tasks, err := u.toRecords(req, plan)
	if err != nil {
		return nil, err
	}

	err = u.cfg.DB.Transaction(func(tx *gorm.DB) error {
		if err := u.cfg.Repository.DeactivateBySubject(tx, req.Subject); err != nil {
			return err
		}
		if err := u.cfg.Repository.CreatePlan(tx, record); err != nil {
			return err
		}
		return u.cfg.Repository.CreateTasks(tx, tasks)
	})
	if err != nil {
		return nil, err
	}

	detail, err := u.toPlanDetail(record)
	if err != nil {
		return nil, err
	}
	return &entity.GeneratePlanResponse{Plan: *detail, Generated: true}, nil
}

func (u *studyPlanUsecase) GetActivePlan(ctx context.Context, subject string) (*entity.StudyPlanDetail, error) {
	plan, err := u.cfg.Repository.FindActiveBySubject(nil, subject)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "No active study plan for this subject")
		}
		return nil, err
	}
	return u.toPlanDetail(plan)
}

// GetPlan looks a plan up by ID regardless of whether it is still active, so
// superseded plans stay readable after a regenerate.
func (u *studyPlanUsecase) GetPlan(ctx context.Context, planID string) (*entity.StudyPlanDetail, error) {
	plan, err := u.cfg.Repository.FindByPlanID(nil, planID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Study plan not found")
		}
		return nil, err
	}
	return u.toPlanDetail(plan)
}

func (u *studyPlanUsecase) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	if !entity.TaskStatus(status).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid task status %q", status))
	}
	if err := u.cfg.Repository.UpdateTaskStatus(nil, taskID, status); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Study task not found")
		}
		return err
	}
	return nil
}

func (u *studyPlanUsecase) ListActivePlans(ctx context.Context) ([]entity.StudyPlanDetail, error) {
	plans, err := u.cfg.Repository.FindAllActive(nil)
	if err != nil {
		return nil, err
	}
	details := make([]entity.StudyPlanDetail, 0, len(plans))
	for i := range plans {
		detail, err := u.toPlanDetail(&plans[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// generatedPlan mirrors the JSON shape the plan prompt asks for.
type generatedPlan struct {
	Overview struct {
		Strengths      []string `json:"strengths"`
		Weaknesses     []string `json:"weaknesses"`
		FocusAreas     []string `json:"focus_areas"`
		EstimatedHours float64  `json:"estimated_hours"`
		Confidence     float64  `json:"confidence"`
	} `json:"overview"`
	Recommendations struct {
		Immediate string `json:"immediate"`
		ShortTerm string `json:"short_term"`
		LongTerm  string `json:"long_term"`
	} `json:"recommendations"`
	Tasks []rawTask `json:"tasks"`
}

type rawTask struct {
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Type                 string      `json:"type"`
	Priority             string      `json:"priority"`
	EstimatedMinutes     json.Number `json:"estimated_minutes"`
	Topic                string      `json:"topic"`
	RequiresVerification bool        `json:"requires_verification"`
	Reasoning            string      `json:"reasoning"`
	DueDate              string      `json:"due_date"`
}

func (u *studyPlanUsecase) generatePlan(ctx context.Context, analysis *entity.PerformanceAnalysis) (*generatedPlan, error) {
	if u.cfg.Generator == nil {
		return nil, fmt.Errorf("no text generator configured")
	}

	prompt := buildPlanPrompt(analysis)

	var lastErr error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		if attempt > 1 {
			u.cfg.Sleep(time.Duration(attempt-1) * backoffUnit)
		}

		plan, err := u.attemptPlan(ctx, prompt)
		if err == nil {
			return plan, nil
		}
		lastErr = err
		u.cfg.Log.WithError(err).WithField("attempt", attempt).Warn("study plan generation attempt failed")
	}

	return nil, fmt.Errorf("study plan generation failed after %d attempts: %w", generateAttempts, lastErr)
}

func (u *studyPlanUsecase) attemptPlan(ctx context.Context, prompt string) (*generatedPlan, error) {
	text, err := u.cfg.Generator.GenerateJSON(ctx, planSystemPrompt, prompt, planMaxTokens)
	if err != nil {
		return nil, err
	}

	var plan generatedPlan
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &plan); err != nil {
		return nil, fmt.Errorf("AI output is not valid json: %w", err)
	}

	if len(plan.Tasks) == 0 {
		return nil, fmt.Errorf("plan has no tasks")
	}
	for i, task := range plan.Tasks {
		if strings.TrimSpace(task.Title) == "" || strings.TrimSpace(task.Description) == "" ||
			strings.TrimSpace(task.Type) == "" || strings.TrimSpace(task.Priority) == "" {
			return nil, fmt.Errorf("task %d is missing a required field (title/description/type/priority)", i+1)
		}
		if !entity.TaskType(task.Type).Valid() {
			return nil, fmt.Errorf("task %d has invalid type %q", i+1, task.Type)
		}
		if !entity.TaskPriority(task.Priority).Valid() {
			return nil, fmt.Errorf("task %d has invalid priority %q", i+1, task.Priority)
		}
	}
	return &plan, nil
}

func (u *studyPlanUsecase) toRecords(req entity.GeneratePlanRequest, plan *generatedPlan) (*internalEntity.StudyPlan, []internalEntity.StudyTask, error) {
	strengths, err := json.Marshal(orEmpty(plan.Overview.Strengths))
	if err != nil {
		return nil, nil, err
	}
	weaknesses, err := json.Marshal(orEmpty(plan.Overview.Weaknesses))
	if err != nil {
		return nil, nil, err
	}
	focus, err := json.Marshal(orEmpty(plan.Overview.FocusAreas))
	if err != nil {
		return nil, nil, err
	}

	record := &internalEntity.StudyPlan{
		PlanID:         "plan-" + uuid.NewString(),
		Subject:        req.Subject,
		UserID:         req.UserID,
		Active:         true,
		Strengths:      string(strengths),
		Weaknesses:     string(weaknesses),
		FocusAreas:     string(focus),
		EstimatedHours: plan.Overview.EstimatedHours,
		Confidence:     plan.Overview.Confidence,
		Immediate:      plan.Recommendations.Immediate,
		ShortTerm:      plan.Recommendations.ShortTerm,
		LongTerm:       plan.Recommendations.LongTerm,
	}

	tasks := make([]internalEntity.StudyTask, 0, len(plan.Tasks))
	for i, raw := range plan.Tasks {
		minutes := defaultTaskMinutes
		if m, err := raw.EstimatedMinutes.Int64(); err == nil && m > 0 {
			minutes = int(m)
		}
		reasoning := strings.TrimSpace(raw.Reasoning)
		if reasoning == "" {
			reasoning = defaultTaskReasoning
		}

		task := internalEntity.StudyTask{
			TaskID:               "task-" + uuid.NewString(),
			PlanID:               record.PlanID,
			Title:                raw.Title,
			Description:          raw.Description,
			Type:                 raw.Type,
			Priority:             raw.Priority,
			EstimatedMinutes:     minutes,
			TopicName:            raw.Topic,
			RequiresVerification: raw.RequiresVerification,
			Reasoning:            reasoning,
			Status:               "pending",
			SortOrder:            i,
		}
		if raw.DueDate != "" {
			if due, err := time.Parse("2006-01-02", raw.DueDate); err == nil {
				task.DueDate = &due
			}
		}
		tasks = append(tasks, task)
	}

	return record, tasks, nil
}

func (u *studyPlanUsecase) toPlanDetail(plan *internalEntity.StudyPlan) (*entity.StudyPlanDetail, error) {
	tasks, err := u.cfg.Repository.FindTasksByPlanID(nil, plan.PlanID)
	if err != nil {
		return nil, err
	}

	detail := &entity.StudyPlanDetail{
		PlanID:  plan.PlanID,
		Subject: plan.Subject,
		Active:  plan.Active,
		Overview: entity.PlanOverview{
			EstimatedHours: plan.EstimatedHours,
			Confidence:     plan.Confidence,
		},
		Recommendations: entity.PlanRecommendations{
			Immediate: plan.Immediate,
			ShortTerm: plan.ShortTerm,
			LongTerm:  plan.LongTerm,
		},
		CreatedAt: plan.CreatedAt.Format(time.RFC3339),
	}

	if err := decodeList(plan.Strengths, &detail.Overview.Strengths); err != nil {
		return nil, err
	}
	if err := decodeList(plan.Weaknesses, &detail.Overview.Weaknesses); err != nil {
		return nil, err
	}
	if err := decodeList(plan.FocusAreas, &detail.Overview.FocusAreas); err != nil {
		return nil, err
	}

	detail.Tasks = make([]entity.GeneratedTask, 0, len(tasks))
	for _, t := range tasks {
		task := entity.GeneratedTask{
			ID:                   t.TaskID,
			Title:                t.Title,
			Description:          t.Description,
			Type:                 entity.TaskType(t.Type),
			Priority:             entity.TaskPriority(t.Priority),
			EstimatedMinutes:     t.EstimatedMinutes,
			Topic:                t.TopicName,
			RequiresVerification: t.RequiresVerification,
			Reasoning:            t.Reasoning,
		}
		if t.DueDate != nil {
			task.DueDate = t.DueDate.Format("2006-01-02")
		}
		detail.Tasks = append(detail.Tasks, task)
	}

	return detail, nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func decodeList(raw string, out *[]string) error {
	if raw == "" {
		*out = []string{}
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

const planSystemPrompt = `You are an expert study coach. You design personalized study plans from performance data, and you respond with JSON only.`

func buildPlanPrompt(analysis *entity.PerformanceAnalysis) string {
	data, _ := json.MarshalIndent(analysis, "", "  ")

	return fmt.Sprintf(`Create a personalized study plan for the subject %q from the performance analysis below.

Rules:
- Produce between %d and %d tasks.
- Task "type" must be one of: review, practice, quiz, flashcards, material.
- Task "priority" must be one of: high, medium, low.
- Every task needs "title", "description", "type" and "priority".
- Prioritize the weak topics and common mistakes in the analysis.

Return ONLY a JSON object, no markdown, no prose, of the shape:
{"overview": {"strengths": [".."], "weaknesses": [".."], "focus_areas": [".."], "estimated_hours": 12, "confidence": 75},
 "recommendations": {"immediate": "..", "short_term": "..", "long_term": ".."},
 "tasks": [{"title": "..", "description": "..", "type": "practice", "priority": "high", "estimated_minutes": 30, "topic": "..", "requires_verification": false, "reasoning": "..", "due_date": "2025-01-31"}]}

Performance analysis:
%s`, analysis.Subject, minPlanTasks, maxPlanTasks, string(data))
}
