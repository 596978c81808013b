package contract

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkAsRead(ctx context.Context, id, recipientId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientId uuid.UUID) (int64, error)
}
