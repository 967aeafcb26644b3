package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passai/passai-be/internal/delivery/http/entity"
)

func TestCleanOptionPrefix(t *testing.T) {
	cases := map[string]string{
		"A. Paris":     "Paris",
		"b) London":    "London",
		"C)Berlin":     "Berlin",
		"1) Rome":      "Rome",
		"2. Madrid":    "Madrid",
		"Paris":        "Paris",
		"  D. Lisbon ": "Lisbon",
		"Amsterdam. A": "Amsterdam. A",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanOptionPrefix(in), in)
	}
}

func TestExtractQuestionArrayDirectArray(t *testing.T) {
	items, err := extractQuestionArray(`[{"question":"Q1"},{"question":"Q2"}]`)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestExtractQuestionArrayKnownKeys(t *testing.T) {
	for _, key := range []string{"questions", "data", "items", "quiz"} {
		items, err := extractQuestionArray(`{"` + key + `":[{"question":"Q1"}]}`)
		require.NoError(t, err, key)
		assert.Len(t, items, 1, key)
	}
}

func TestExtractQuestionArraySingleQuestionWrap(t *testing.T) {
	items, err := extractQuestionArray(`{"question":"What is 2+2?","type":"multiple-choice"}`)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var raw rawQuestion
	require.NoError(t, json.Unmarshal(items[0], &raw))
	assert.Equal(t, "What is 2+2?", raw.Question)
}

func TestExtractQuestionArrayFirstArrayValue(t *testing.T) {
	items, err := extractQuestionArray(`{"generated":[{"question":"Q1"}],"model":"gpt"}`)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestExtractQuestionArrayNoArray(t *testing.T) {
	_, err := extractQuestionArray(`{"status":"ok","model":"gpt"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no questions array found")
}

func TestExtractQuestionArrayInvalidJSON(t *testing.T) {
	_, err := extractQuestionArray(`here are your questions: [1,2]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid json")
}

func TestExtractQuestionArrayStripsCodeFence(t *testing.T) {
	items, err := extractQuestionArray("```json\n{\"questions\":[{\"question\":\"Q1\"}]}\n```")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestNormalizeQuestionStripsPrefixes(t *testing.T) {
	q, err := normalizeQuestion(rawQuestion{
		Question:      "What is the capital of France?",
		Type:          "multiple-choice",
		Options:       []string{"A. Paris", "B. London", "C. Berlin", "D. Rome"},
		CorrectAnswer: "A. Paris",
		Explanation:   "Paris is the capital.",
		Difficulty:    "easy",
		Points:        "1",
	}, entity.DifficultyMedium)
	require.NoError(t, err)

	assert.Equal(t, "Paris", q.Options[0])
	assert.Equal(t, []string{"Paris", "London", "Berlin", "Rome"}, q.Options)
	assert.Equal(t, "Paris", q.CorrectAnswer)
	assert.Equal(t, 1, q.Points)
}

func TestNormalizeQuestionRejectsEssay(t *testing.T) {
	_, err := normalizeQuestion(rawQuestion{
		Question:      "Explain photosynthesis.",
		Type:          "essay",
		CorrectAnswer: "n/a",
	}, entity.DifficultyMedium)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disallowed question type")
}

func TestNormalizeQuestionDefaults(t *testing.T) {
	q, err := normalizeQuestion(rawQuestion{
		Question:      "Water boils at 100C at sea level.",
		Type:          "true-false",
		CorrectAnswer: "true",
	}, "bogus")
	require.NoError(t, err)

	assert.Equal(t, entity.TypeTrueFalse, q.Type)
	assert.Equal(t, []string{"True", "False"}, q.Options)
	assert.Equal(t, "True", q.CorrectAnswer)
	// Invalid fallback difficulty degrades to medium, which scores 2 points.
	assert.Equal(t, entity.DifficultyMedium, q.Difficulty)
	assert.Equal(t, 2, q.Points)
	assert.Equal(t, "No explanation provided.", q.Explanation)
	assert.Equal(t, []string{}, q.Tags)
}

func TestNormalizeQuestionPointsByDifficulty(t *testing.T) {
	for difficulty, want := range map[entity.Difficulty]int{
		entity.DifficultyEasy:   1,
		entity.DifficultyMedium: 2,
		entity.DifficultyHard:   4,
	} {
		q, err := normalizeQuestion(rawQuestion{
			Question:      "Q",
			Type:          "true-false",
			CorrectAnswer: "False",
			Difficulty:    string(difficulty),
		}, entity.DifficultyMedium)
		require.NoError(t, err)
		assert.Equal(t, want, q.Points, difficulty)
	}
}

func TestNormalizeQuestionEmptyTypeDefaultsToMultipleChoice(t *testing.T) {
	q, err := normalizeQuestion(rawQuestion{
		Question:      "Pick one",
		Options:       []string{"x", "y", "z", "w"},
		CorrectAnswer: "x",
	}, entity.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, entity.TypeMultipleChoice, q.Type)
}

func TestNormalizeQuestionUnknownTypeCoerces(t *testing.T) {
	// Unrecognized labels default to multiple-choice instead of failing
	// the whole batch; only the disallowed types are fatal.
	for _, label := range []string{"mcq", "multiple_choice", "Multiple Choice Question"} {
		q, err := normalizeQuestion(rawQuestion{
			Question:      "Pick one",
			Type:          label,
			Options:       []string{"x", "y", "z", "w"},
			CorrectAnswer: "x",
		}, entity.DifficultyEasy)
		require.NoError(t, err, label)
		assert.Equal(t, entity.TypeMultipleChoice, q.Type, label)
	}

	for _, label := range []string{"short-answer", "essay", "fill-in-blank", "matching"} {
		_, err := normalizeQuestion(rawQuestion{
			Question:      "Q",
			Type:          label,
			CorrectAnswer: "x",
		}, entity.DifficultyEasy)
		require.Error(t, err, label)
	}
}

func TestNormalizeQuestionAnswerMustMatchOption(t *testing.T) {
	_, err := normalizeQuestion(rawQuestion{
		Question:      "Pick one",
		Type:          "multiple-choice",
		Options:       []string{"x", "y", "z", "w"},
		CorrectAnswer: "not-an-option",
	}, entity.DifficultyEasy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not among the options")
}

func TestNormalizeQuestionTooFewOptions(t *testing.T) {
	_, err := normalizeQuestion(rawQuestion{
		Question:      "Pick one",
		Type:          "multiple-choice",
		Options:       []string{"only"},
		CorrectAnswer: "only",
	}, entity.DifficultyEasy)
	require.Error(t, err)
}

func TestNormalizeQuestionAcceptsCamelCaseAnswerKey(t *testing.T) {
	var raw rawQuestion
	require.NoError(t, json.Unmarshal([]byte(`{"question":"Q","type":"true-false","correctAnswer":"True"}`), &raw))

	q, err := normalizeQuestion(raw, entity.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, "True", q.CorrectAnswer)
}

func TestGenerateQuestionIDDeterministic(t *testing.T) {
	a := generateQuestionID("What is gravity?", entity.DifficultyEasy)
	b := generateQuestionID("What is gravity?", entity.DifficultyEasy)
	c := generateQuestionID("What is gravity?", entity.DifficultyHard)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, len(a) > 2 && a[:2] == "q-")
}
