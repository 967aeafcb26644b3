package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalEntity "github.com/passai/passai-be/internal/entity"
)

func attemptsWithScores(scores ...float64) []internalEntity.QuizAttempt {
	attempts := make([]internalEntity.QuizAttempt, len(scores))
	for i, score := range scores {
		attempts[i] = internalEntity.QuizAttempt{
			AttemptID: fmt.Sprintf("attempt-%d", i),
			Subject:   "math",
			Score:     score,
			Passed:    score >= 70,
		}
	}
	return attempts
}

func response(topic string, correct bool) internalEntity.QuestionResponse {
	return internalEntity.QuestionResponse{
		Subject:       "math",
		TopicName:     topic,
		QuestionText:  "Q about " + topic,
		QuestionType:  "multiple-choice",
		UserAnswer:    "a",
		CorrectAnswer: "b",
		IsCorrect:     correct,
	}
}

func TestClassifyTrend(t *testing.T) {
	// Fewer than 3 attempts is always stable.
	assert.Equal(t, "stable", classifyTrend(attemptsWithScores(40, 90)))

	// Exactly 3 attempts leaves no older window to compare against.
	assert.Equal(t, "stable", classifyTrend(attemptsWithScores(40, 50, 60)))

	// Recent mean 80 vs older mean 50: improving.
	assert.Equal(t, "improving", classifyTrend(attemptsWithScores(50, 50, 50, 80, 80, 80)))

	// Recent mean 50 vs older mean 80: declining.
	assert.Equal(t, "declining", classifyTrend(attemptsWithScores(80, 80, 80, 50, 50, 50)))

	// Within the +/-5 band: stable.
	assert.Equal(t, "stable", classifyTrend(attemptsWithScores(70, 70, 70, 72, 72, 72)))
}

func TestBuildAnalysisOverall(t *testing.T) {
	attempts := attemptsWithScores(60, 80, 100)
	analysis := buildAnalysis("math", attempts, nil)

	assert.Equal(t, "math", analysis.Subject)
	assert.Equal(t, 3, analysis.AttemptCount)
	assert.InDelta(t, 80.0, analysis.AverageScore, 0.001)
	// 2 of 3 attempts passed the 70 bar.
	assert.InDelta(t, 2.0/3.0, analysis.PassingRate, 0.001)
}

func TestBuildAnalysisEmpty(t *testing.T) {
	analysis := buildAnalysis("math", nil, nil)

	assert.Equal(t, 0, analysis.AttemptCount)
	assert.Equal(t, "stable", analysis.Trend)
	assert.NotNil(t, analysis.WeakTopics)
	assert.NotNil(t, analysis.Mistakes)
	assert.Empty(t, analysis.Recent)
}

func TestTopicMasteryCutoffs(t *testing.T) {
	responses := []internalEntity.QuestionResponse{
		// algebra: 1/4 correct = 25% (weak)
		response("algebra", true), response("algebra", false), response("algebra", false), response("algebra", false),
		// geometry: 9/10 correct = 90% (strong)
	}
	for i := 0; i < 10; i++ {
		responses = append(responses, response("geometry", i > 0))
	}
	// calculus: 3/4 = 75%, neither weak nor strong
	responses = append(responses,
		response("calculus", true), response("calculus", true), response("calculus", true), response("calculus", false))

	weak, strong := topicMastery(responses)

	require.Len(t, weak, 1)
	assert.Equal(t, "algebra", weak[0].Topic)
	assert.InDelta(t, 25.0, weak[0].Mastery, 0.001)
	assert.Equal(t, 4, weak[0].Attempts)
	assert.Equal(t, 1, weak[0].Correct)

	require.Len(t, strong, 1)
	assert.Equal(t, "geometry", strong[0].Topic)
	assert.InDelta(t, 90.0, strong[0].Mastery, 0.001)
}

func TestTopicMasteryTopFiveOnly(t *testing.T) {
	var responses []internalEntity.QuestionResponse
	for i := 0; i < 8; i++ {
		topic := fmt.Sprintf("topic-%d", i)
		// Mastery ranges 0..70 in steps of 10; all below the weak cutoff
		// except the last.
		for j := 0; j < 10; j++ {
			responses = append(responses, response(topic, j < i))
		}
	}

	weak, _ := topicMastery(responses)
	require.Len(t, weak, topTopicCount)
	// Lowest mastery first.
	assert.Equal(t, "topic-0", weak[0].Topic)
}

func TestMistakePatternSeverity(t *testing.T) {
	var responses []internalEntity.QuestionResponse
	for i := 0; i < 6; i++ {
		responses = append(responses, response("fractions", false))
	}
	for i := 0; i < 3; i++ {
		responses = append(responses, response("decimals", false))
	}
	responses = append(responses, response("percentages", false))
	responses = append(responses, response("rounding", true))

	patterns := mistakePatterns(responses)
	require.Len(t, patterns, 3)

	// Sorted by frequency descending.
	assert.Equal(t, "fractions", patterns[0].Concept)
	assert.Equal(t, 6, patterns[0].Frequency)
	assert.Equal(t, "high", patterns[0].Severity)
	// Examples are capped.
	assert.Len(t, patterns[0].Examples, maxMistakeExamples)

	assert.Equal(t, "decimals", patterns[1].Concept)
	assert.Equal(t, "medium", patterns[1].Severity)

	assert.Equal(t, "percentages", patterns[2].Concept)
	assert.Equal(t, "low", patterns[2].Severity)
}

func TestMistakePatternsUntaggedGroupedAsGeneral(t *testing.T) {
	patterns := mistakePatterns([]internalEntity.QuestionResponse{
		response("", false), response("", false),
	})
	require.Len(t, patterns, 1)
	assert.Equal(t, "General", patterns[0].Concept)
	assert.Equal(t, 2, patterns[0].Frequency)
}

func TestMistakePatternsTopFive(t *testing.T) {
	var responses []internalEntity.QuestionResponse
	for i := 0; i < 7; i++ {
		for j := 0; j <= i; j++ {
			responses = append(responses, response(fmt.Sprintf("concept-%d", i), false))
		}
	}

	patterns := mistakePatterns(responses)
	require.Len(t, patterns, maxMistakePatterns)
	assert.Equal(t, "concept-6", patterns[0].Concept)
	assert.Equal(t, 7, patterns[0].Frequency)
}

func TestTypePerformance(t *testing.T) {
	responses := []internalEntity.QuestionResponse{
		{QuestionType: "multiple-choice", IsCorrect: true},
		{QuestionType: "multiple-choice", IsCorrect: false},
		{QuestionType: "true-false", IsCorrect: true},
	}

	stats := typePerformance(responses)
	require.Len(t, stats, 2)
	assert.Equal(t, "multiple-choice", stats[0].Type)
	assert.InDelta(t, 50.0, stats[0].Accuracy, 0.001)
	assert.Equal(t, "true-false", stats[1].Type)
	assert.InDelta(t, 100.0, stats[1].Accuracy, 0.001)
}

func TestRecentAttemptsNewestFirstAndCapped(t *testing.T) {
	attempts := attemptsWithScores(10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 55, 65)

	recent := recentAttempts(attempts)
	require.Len(t, recent, maxRecentAttempts)
	assert.Equal(t, 65.0, recent[0].Score)
	assert.Equal(t, 30.0, recent[len(recent)-1].Score)
}

func TestEstimatePassingChanceClamped(t *testing.T) {
	assert.LessOrEqual(t, estimatePassingChance(100, 1, "improving"), 100.0)
	assert.GreaterOrEqual(t, estimatePassingChance(0, 0, "declining"), 0.0)

	base := estimatePassingChance(70, 0.5, "stable")
	assert.Greater(t, estimatePassingChance(70, 0.5, "improving"), base)
	assert.Less(t, estimatePassingChance(70, 0.5, "declining"), base)
}
