package mapper

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:          n.Id,
		RecipientId: n.RecipientId,
		SenderId:    n.SenderId,
		Type:        entity.NotificationType(n.Type),
		Message:     n.Message,
		Link:        n.Link,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		Id:          n.Id,
		RecipientId: n.RecipientId,
		SenderId:    n.SenderId,
		Type:        string(n.Type),
		Message:     n.Message,
		Link:        n.Link,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(notifications []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(notifications))
	for i, n := range notifications {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
