package usecase

import (
	"sort"
	"time"

	"github.com/passai/passai-be/internal/delivery/http/entity"
	internalEntity "github.com/passai/passai-be/internal/entity"
)

// Aggregation thresholds. The severity and trend cutoffs are deliberate
// product constants, kept named so they can be tuned in one place.
const (
	trendWindow        = 3
	trendDelta         = 5.0
	weakTopicCutoff    = 70.0
	strongTopicCutoff  = 80.0
	topTopicCount      = 5
	severityHighCount  = 5
	severityMedCount   = 3
	maxMistakeExamples = 3
	maxMistakePatterns = 5
	maxRecentAttempts  = 10
)

// buildAnalysis computes the performance snapshot for one subject from its
// persisted attempts and per-question responses. Pure computation, no I/O.
func buildAnalysis(subject string, attempts []internalEntity.QuizAttempt, responses []internalEntity.QuestionResponse) *entity.PerformanceAnalysis {
	analysis := &entity.PerformanceAnalysis{
		Subject:      subject,
		Trend:        "stable",
		WeakTopics:   []entity.TopicMastery{},
		StrongTopics: []entity.TopicMastery{},
		Mistakes:     []entity.MistakePattern{},
		TypeStats:    []entity.TypePerformance{},
		Recent:       []entity.AttemptSummary{},
	}

	analysis.AttemptCount = len(attempts)
	if len(attempts) > 0 {
		sum := 0.0
		passed := 0
		for _, a := range attempts {
			sum += a.Score
			if a.Passed {
				passed++
			}
		}
		analysis.AverageScore = sum / float64(len(attempts))
		analysis.PassingRate = float64(passed) / float64(len(attempts))
	}

	analysis.Trend = classifyTrend(attempts)
	analysis.PassingChance = estimatePassingChance(analysis.AverageScore, analysis.PassingRate, analysis.Trend)
	analysis.WeakTopics, analysis.StrongTopics = topicMastery(responses)
	analysis.Mistakes = mistakePatterns(responses)
	analysis.TypeStats = typePerformance(responses)
	analysis.Recent = recentAttempts(attempts)

	return analysis
}

// classifyTrend compares the mean of the most recent scores against the mean
// of the window before it. Attempts are expected in ascending completion
// order.
func classifyTrend(attempts []internalEntity.QuizAttempt) string {
	if len(attempts) < trendWindow {
		return "stable"
	}

	recent := meanScore(attempts[len(attempts)-trendWindow:])

	olderStart := len(attempts) - 2*trendWindow
	if olderStart < 0 {
		olderStart = 0
	}
	olderWindow := attempts[olderStart : len(attempts)-trendWindow]
	if len(olderWindow) == 0 {
		return "stable"
	}
	older := meanScore(olderWindow)

	switch {
	case recent-older > trendDelta:
		return "improving"
	case recent-older < -trendDelta:
		return "declining"
	default:
		return "stable"
	}
}

func meanScore(attempts []internalEntity.QuizAttempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range attempts {
		sum += a.Score
	}
	return sum / float64(len(attempts))
}

// estimatePassingChance blends the average score with the passing rate and
// nudges the result by the trend direction, clamped to [0,100].
func estimatePassingChance(avgScore, passingRate float64, trend string) float64 {
	chance := avgScore*0.6 + passingRate*100*0.4
	switch trend {
	case "improving":
		chance += 5
	case "declining":
		chance -= 5
	}
	if chance < 0 {
		chance = 0
	}
	if chance > 100 {
		chance = 100
	}
	return chance
}

func topicMastery(responses []internalEntity.QuestionResponse) (weak, strong []entity.TopicMastery) {
	type tally struct {
		total   int
		correct int
	}
	byTopic := make(map[string]*tally)
	for _, r := range responses {
		if r.TopicName == "" {
			continue
		}
		t := byTopic[r.TopicName]
		if t == nil {
			t = &tally{}
			byTopic[r.TopicName] = t
		}
		t.total++
		if r.IsCorrect {
			t.correct++
		}
	}

	all := make([]entity.TopicMastery, 0, len(byTopic))
	for topic, t := range byTopic {
		all = append(all, entity.TopicMastery{
			Topic:    topic,
			Mastery:  float64(t.correct) / float64(t.total) * 100,
			Attempts: t.total,
			Correct:  t.correct,
		})
	}

	weak = []entity.TopicMastery{}
	strong = []entity.TopicMastery{}
	for _, m := range all {
		if m.Mastery < weakTopicCutoff {
			weak = append(weak, m)
		}
		if m.Mastery >= strongTopicCutoff {
			strong = append(strong, m)
		}
	}

	sort.Slice(weak, func(i, j int) bool { return weak[i].Mastery < weak[j].Mastery })
	sort.Slice(strong, func(i, j int) bool { return strong[i].Mastery > strong[j].Mastery })

	if len(weak) > topTopicCount {
		weak = weak[:topTopicCount]
	}
	if len(strong) > topTopicCount {
		strong = strong[:topTopicCount]
	}
	return weak, strong
}

// mistakePatterns groups incorrect responses by topic, keeping a few example
// answers per topic. Sorted by frequency descending, top entries only.
func mistakePatterns(responses []internalEntity.QuestionResponse) []entity.MistakePattern {
	byTopic := make(map[string]*entity.MistakePattern)
	order := []string{}

	for _, r := range responses {
		if r.IsCorrect {
			continue
		}
		concept := r.TopicName
		if concept == "" {
			concept = "General"
		}
		p := byTopic[concept]
		if p == nil {
			p = &entity.MistakePattern{Concept: concept, Examples: []entity.MistakeExample{}}
			byTopic[concept] = p
			order = append(order, concept)
		}
		p.Frequency++
		if len(p.Examples) < maxMistakeExamples {
			p.Examples = append(p.Examples, entity.MistakeExample{
				Question:      r.QuestionText,
				UserAnswer:    r.UserAnswer,
				CorrectAnswer: r.CorrectAnswer,
			})
		}
	}

	patterns := make([]entity.MistakePattern, 0, len(order))
	for _, concept := range order {
		p := byTopic[concept]
		switch {
		case p.Frequency >= severityHighCount:
			p.Severity = "high"
		case p.Frequency >= severityMedCount:
			p.Severity = "medium"
		default:
			p.Severity = "low"
		}
		patterns = append(patterns, *p)
	}

	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].Frequency > patterns[j].Frequency })
	if len(patterns) > maxMistakePatterns {
		patterns = patterns[:maxMistakePatterns]
	}
	return patterns
}

func typePerformance(responses []internalEntity.QuestionResponse) []entity.TypePerformance {
	type tally struct {
		total   int
		correct int
	}
	byType := make(map[string]*tally)
	order := []string{}
	for _, r := range responses {
		if r.QuestionType == "" {
			continue
		}
		t := byType[r.QuestionType]
		if t == nil {
			t = &tally{}
			byType[r.QuestionType] = t
			order = append(order, r.QuestionType)
		}
		t.total++
		if r.IsCorrect {
			t.correct++
		}
	}

	stats := make([]entity.TypePerformance, 0, len(order))
	for _, qType := range order {
		t := byType[qType]
		stats = append(stats, entity.TypePerformance{
			Type:     qType,
			Attempts: t.total,
			Correct:  t.correct,
			Accuracy: float64(t.correct) / float64(t.total) * 100,
		})
	}
	return stats
}

func recentAttempts(attempts []internalEntity.QuizAttempt) []entity.AttemptSummary {
	start := len(attempts) - maxRecentAttempts
	if start < 0 {
		start = 0
	}
	recent := attempts[start:]

	summaries := make([]entity.AttemptSummary, 0, len(recent))
	// Newest first for display.
	for i := len(recent) - 1; i >= 0; i-- {
		a := recent[i]
		summaries = append(summaries, entity.AttemptSummary{
			AttemptID:   a.AttemptID,
			Score:       a.Score,
			Passed:      a.Passed,
			CompletedAt: a.CompletedAt.Format(time.RFC3339),
		})
	}
	return summaries
}
