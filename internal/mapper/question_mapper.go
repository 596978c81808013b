package mapper

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}
	return &entity.Question{
		Id:            q.Id,
		Skill:         q.Skill,
		Difficulty:    entity.Difficulty(q.Difficulty),
		Text:          q.Text,
		Options:       fromJSONSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}
	return &model.Question{
		Id:            q.Id,
		Skill:         q.Skill,
		Difficulty:    string(q.Difficulty),
		Text:          q.Text,
		Options:       toJSONSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
