package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/passai/passai-be/internal/delivery/http/entity"
	"github.com/passai/passai-be/internal/delivery/http/repository"
	internalEntity "github.com/passai/passai-be/internal/entity"
)

func newStudyPlanUsecase(db *gorm.DB, gen TextGenerator, sleeps *[]time.Duration) StudyPlanUsecase {
	return NewStudyPlanUsecase(StudyPlanConfig{
		DB:         db,
		Generator:  gen,
		Repository: repository.NewStudyPlanRepository(db),
		QuizRepo:   repository.NewQuizRepository(db),
		Log:        testLogger(),
		Sleep: func(d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		},
	})
}

func seedAttempts(t *testing.T, db *gorm.DB, subject string, scores ...float64) {
	t.Helper()
	for i, score := range scores {
		attempt := internalEntity.QuizAttempt{
			AttemptID: fmt.Sprintf("attempt-%s-%d", subject, i),
			QuizID:    "quiz-1",
			UserID:    "user-1",
			Subject:   subject,
			Score:     score,
			Passed:    score >= 70,
		}
		require.NoError(t, db.Create(&attempt).Error)
	}
}

func planTasksJSON(count int) string {
	tasks := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			tasks += ","
		}
		tasks += fmt.Sprintf(`{"title":"Task %d","description":"Do the thing %d","type":"practice","priority":"high","estimated_minutes":45,"topic":"algebra","requires_verification":false,"reasoning":"weak topic"}`, i+1, i+1)
	}
	return tasks
}

func validPlanJSON(taskCount int) string {
	return fmt.Sprintf(`{
  "overview": {"strengths":["geometry"],"weaknesses":["algebra"],"focus_areas":["algebra"],"estimated_hours":12,"confidence":70},
  "recommendations": {"immediate":"Review algebra basics","short_term":"Daily practice sets","long_term":"Weekly mixed quizzes"},
  "tasks": [%s]
}`, planTasksJSON(taskCount))
}

func TestCreatePersonalizedStudyPlan(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	gen := &stubGenerator{responses: []string{validPlanJSON(8)}}
	uc := newStudyPlanUsecase(db, gen, nil)

	res, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{
		Subject: "math",
		UserID:  "user-1",
	})
	require.NoError(t, err)

	assert.True(t, res.Generated)
	assert.True(t, res.Plan.Active)
	assert.Equal(t, []string{"algebra"}, res.Plan.Overview.Weaknesses)
	assert.Equal(t, "Review algebra basics", res.Plan.Recommendations.Immediate)
	require.Len(t, res.Plan.Tasks, 8)
	assert.Equal(t, entity.TaskPractice, res.Plan.Tasks[0].Type)
	assert.Equal(t, 45, res.Plan.Tasks[0].EstimatedMinutes)

	var tasks int64
	require.NoError(t, db.Model(&internalEntity.StudyTask{}).Where("plan_id = ?", res.Plan.PlanID).Count(&tasks).Error)
	assert.EqualValues(t, 8, tasks)
}

func TestCreatePersonalizedStudyPlanIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	gen := &stubGenerator{responses: []string{validPlanJSON(8)}}
	uc := newStudyPlanUsecase(db, gen, nil)

	first, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.NoError(t, err)
	require.True(t, first.Generated)

	// A second request reuses the active plan without calling the model.
	second, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.NoError(t, err)
	assert.False(t, second.Generated)
	assert.Equal(t, first.Plan.PlanID, second.Plan.PlanID)
	assert.Equal(t, 1, gen.calls)
}

func TestCreatePersonalizedStudyPlanForceRegenerate(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	gen := &stubGenerator{responses: []string{validPlanJSON(8)}}
	uc := newStudyPlanUsecase(db, gen, nil)

	first, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.NoError(t, err)

	second, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{
		Subject:         "math",
		ForceRegenerate: true,
	})
	require.NoError(t, err)
	assert.True(t, second.Generated)
	assert.NotEqual(t, first.Plan.PlanID, second.Plan.PlanID)

	// The prior plan is deactivated, not deleted.
	var old internalEntity.StudyPlan
	require.NoError(t, db.Where("plan_id = ?", first.Plan.PlanID).First(&old).Error)
	assert.False(t, old.Active)

	var active int64
	require.NoError(t, db.Model(&internalEntity.StudyPlan{}).Where("subject = ? AND active = ?", "math", true).Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestCreatePersonalizedStudyPlanNoAttempts(t *testing.T) {
	db := openTestDB(t)
	uc := newStudyPlanUsecase(db, &stubGenerator{responses: []string{validPlanJSON(8)}}, nil)

	_, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	assert.Error(t, err)
}

func TestPlanGenerationRetryBound(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	gen := &stubGenerator{err: fmt.Errorf("timeout")}
	var sleeps []time.Duration
	uc := newStudyPlanUsecase(db, gen, &sleeps)

	_, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempts")
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, []time.Duration{time.Second}, sleeps)
}

func TestPlanRejectsTaskMissingRequiredField(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	bad := `{"overview":{},"recommendations":{},"tasks":[{"title":"","description":"x","type":"practice","priority":"high"}]}`
	gen := &stubGenerator{responses: []string{bad}}
	uc := newStudyPlanUsecase(db, gen, nil)

	_, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a required field")
}

func TestPlanRejectsInvalidTaskType(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	bad := `{"overview":{},"recommendations":{},"tasks":[{"title":"T","description":"x","type":"meditate","priority":"high"}]}`
	uc := newStudyPlanUsecase(db, &stubGenerator{responses: []string{bad}}, nil)

	_, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type")
}

func TestPlanTaskDefaults(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60, 65)
	minimal := `{"overview":{},"recommendations":{},"tasks":[{"title":"T","description":"x","type":"review","priority":"low","due_date":"2026-09-15"}]}`
	uc := newStudyPlanUsecase(db, &stubGenerator{responses: []string{minimal}}, nil)

	res, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.NoError(t, err)
	require.Len(t, res.Plan.Tasks, 1)

	task := res.Plan.Tasks[0]
	assert.Equal(t, defaultTaskMinutes, task.EstimatedMinutes)
	assert.False(t, task.RequiresVerification)
	assert.Equal(t, defaultTaskReasoning, task.Reasoning)
	assert.Equal(t, "2026-09-15", task.DueDate)
	// Overview lists default to empty arrays, never null.
	assert.NotNil(t, res.Plan.Overview.Strengths)
}

func TestGetPlanByID(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60)
	gen := &stubGenerator{responses: []string{validPlanJSON(8)}}
	uc := newStudyPlanUsecase(db, gen, nil)

	created, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.NoError(t, err)

	detail, err := uc.GetPlan(context.Background(), created.Plan.PlanID)
	require.NoError(t, err)
	assert.Equal(t, created.Plan.PlanID, detail.PlanID)
	assert.Len(t, detail.Tasks, 8)

	// A regenerate deactivates the plan but keeps it readable by ID.
	_, err = uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{
		Subject:         "math",
		ForceRegenerate: true,
	})
	require.NoError(t, err)

	old, err := uc.GetPlan(context.Background(), created.Plan.PlanID)
	require.NoError(t, err)
	assert.False(t, old.Active)

	_, err = uc.GetPlan(context.Background(), "plan-missing")
	require.Error(t, err)
}

func TestUpdateTaskStatus(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 50, 60)
	gen := &stubGenerator{responses: []string{validPlanJSON(8)}}
	uc := newStudyPlanUsecase(db, gen, nil)

	created, err := uc.CreatePersonalizedStudyPlan(context.Background(), entity.GeneratePlanRequest{Subject: "math"})
	require.NoError(t, err)
	taskID := created.Plan.Tasks[0].ID

	require.NoError(t, uc.UpdateTaskStatus(context.Background(), taskID, "completed"))

	var task internalEntity.StudyTask
	require.NoError(t, db.Where("task_id = ?", taskID).First(&task).Error)
	assert.Equal(t, "completed", task.Status)

	err = uc.UpdateTaskStatus(context.Background(), taskID, "done")
	require.Error(t, err)

	err = uc.UpdateTaskStatus(context.Background(), "task-missing", "completed")
	require.Error(t, err)
}

func TestGetActivePlanNotFound(t *testing.T) {
	db := openTestDB(t)
	uc := newStudyPlanUsecase(db, &stubGenerator{}, nil)

	_, err := uc.GetActivePlan(context.Background(), "history")
	assert.Error(t, err)
}

func TestGetAnalysisComposes(t *testing.T) {
	db := openTestDB(t)
	seedAttempts(t, db, "math", 40, 50, 60, 90, 90, 90)
	for i := 0; i < 4; i++ {
		r := internalEntity.QuestionResponse{
			AttemptID:     "attempt-math-0",
			QuestionID:    fmt.Sprintf("q-%d", i),
			Subject:       "math",
			TopicName:     "algebra",
			QuestionText:  "Q",
			QuestionType:  "multiple-choice",
			UserAnswer:    "a",
			CorrectAnswer: "b",
			IsCorrect:     i == 0,
		}
		require.NoError(t, db.Create(&r).Error)
	}
	uc := newStudyPlanUsecase(db, &stubGenerator{}, nil)

	analysis, err := uc.GetAnalysis(context.Background(), "math")
	require.NoError(t, err)
	assert.Equal(t, 6, analysis.AttemptCount)
	assert.Equal(t, "improving", analysis.Trend)
	require.Len(t, analysis.WeakTopics, 1)
	assert.Equal(t, "algebra", analysis.WeakTopics[0].Topic)
	require.Len(t, analysis.Mistakes, 1)
	assert.Equal(t, "medium", analysis.Mistakes[0].Severity)
}
