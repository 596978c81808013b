package mapper

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"
)

type SessionMapper struct {
	users *UserMapper
}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{users: NewUserMapper()}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:         s.Id,
		SenderId:   s.SenderId,
		ReceiverId: s.ReceiverId,
		Topic:      s.Topic,
		StartTime:  s.StartTime,
		Duration:   s.Duration,
		Status:     entity.SessionStatus(s.Status),
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Sender:     m.users.ToEntity(s.Sender),
		Receiver:   m.users.ToEntity(s.Receiver),
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:         s.Id,
		SenderId:   s.SenderId,
		ReceiverId: s.ReceiverId,
		Topic:      s.Topic,
		StartTime:  s.StartTime,
		Duration:   s.Duration,
		Status:     string(s.Status),
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
