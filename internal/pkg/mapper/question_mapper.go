package mapper

import (
	"encoding/json"

	apiEntity "github.com/passai/passai-be/internal/delivery/http/entity"
	dbEntity "github.com/passai/passai-be/internal/entity"
)

// ConvertToGeneratedQuestion - Convert DB entity to API entity
func ConvertToGeneratedQuestion(q *dbEntity.Question) (apiEntity.GeneratedQuestion, error) {
	options, err := decodeStringList(q.Options)
	if err != nil {
		return apiEntity.GeneratedQuestion{}, err
	}
	tags, err := decodeStringList(q.Tags)
	if err != nil {
		return apiEntity.GeneratedQuestion{}, err
	}

	return apiEntity.GeneratedQuestion{
		ID:            q.QuestionID,
		Question:      q.Text,
		Type:          apiEntity.QuestionType(q.Type),
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    apiEntity.Difficulty(q.Difficulty),
		Tags:          tags,
		Points:        q.Points,
		Topic:         q.TopicName,
	}, nil
}

// ConvertToQuestionRecord - Convert API entity to DB entity for persistence
func ConvertToQuestionRecord(quizID string, q apiEntity.GeneratedQuestion) (dbEntity.Question, error) {
	options, err := encodeStringList(q.Options)
	if err != nil {
		return dbEntity.Question{}, err
	}
	tags, err := encodeStringList(q.Tags)
	if err != nil {
		return dbEntity.Question{}, err
	}

	return dbEntity.Question{
		QuestionID:    q.ID,
		QuizID:        quizID,
		Text:          q.Question,
		Type:          string(q.Type),
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    string(q.Difficulty),
		Tags:          tags,
		Points:        q.Points,
		TopicName:     q.Topic,
		GeneratedBy:   "ai",
	}, nil
}

// ConvertTemplateToGeneratedQuestion - Convert fallback template to API entity
func ConvertTemplateToGeneratedQuestion(t *dbEntity.QuestionTemplate) (apiEntity.GeneratedQuestion, error) {
	options, err := decodeStringList(t.Options)
	if err != nil {
		return apiEntity.GeneratedQuestion{}, err
	}
	tags, err := decodeStringList(t.Tags)
	if err != nil {
		return apiEntity.GeneratedQuestion{}, err
	}

	return apiEntity.GeneratedQuestion{
		ID:            t.TemplateID,
		Question:      t.Text,
		Type:          apiEntity.QuestionType(t.Type),
		Options:       options,
		CorrectAnswer: t.CorrectAnswer,
		Explanation:   t.Explanation,
		Difficulty:    apiEntity.Difficulty(t.Difficulty),
		Tags:          tags,
		Points:        t.Points,
	}, nil
}

func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
