package service

import (
	"context"
	"fmt"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/activity"
	"collabhub-be/pkg/events"
	pktNats "collabhub-be/pkg/nats"
	"collabhub-be/pkg/realtime"

	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time frames to a user's open connections.
// Implemented by realtime.Bus; delivery is fire-and-forget.
type NotificationDelivery interface {
	Push(userID uuid.UUID, frameType string, data interface{})
}

type INotificationService interface {
	List(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, userId, notificationId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) (*dto.MarkAllReadResponse, error)
	Start(ctx context.Context) error
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start subscribes to level-up events and turns them into real-time frames.
// Without a NATS connection there is nothing to listen to.
func (s *NotificationService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Info("NOTIFICATION", "No event bus configured, level-up frames disabled", nil)
		return nil
	}
	if err := s.subscriber.Subscribe(ctx, activity.EventLevelUp, "collabhub-level-up-push", s.handleLevelUp); err != nil {
		return err
	}
	s.logger.Info("NOTIFICATION", "Listening for level-up events", nil)
	return nil
}

func (s *NotificationService) handleLevelUp(ctx context.Context, event events.Event) error {
	userId, err := events.UserID(event)
	if err != nil {
		s.logger.Warn("NOTIFICATION", "Dropping malformed level-up event", map[string]interface{}{"error": err.Error()})
		return nil
	}

	level, _ := events.Int(event, "level")
	xp, _ := events.Int(event, "xp")
	pushFrame(s.delivery, userId, realtime.FrameLevelUp, dto.LevelUpFrame{
		Level:   level,
		XP:      xp,
		Message: fmt.Sprintf("You reached level %d!", level),
	})
	return nil
}

func (s *NotificationService) List(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	items, err := repo.FindAll(ctx,
		specification.ForRecipient{UserID: userId},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}
	total, err := repo.Count(ctx, specification.ForRecipient{UserID: userId})
	if err != nil {
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		Page:          page,
		Limit:         limit,
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.NotificationRepository().Count(ctx,
		specification.ForRecipient{UserID: userId},
		specification.Unread{},
	)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userId, notificationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, notificationId, userId)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) (*dto.MarkAllReadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	updated, err := uow.NotificationRepository().MarkAllAsRead(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

// newNotification builds the stored row; the caller creates it inside its unit of work.
func newNotification(recipientId uuid.UUID, senderId *uuid.UUID, kind entity.NotificationType, link, format string, args ...interface{}) *entity.Notification {
	return &entity.Notification{
		RecipientId: recipientId,
		SenderId:    senderId,
		Type:        kind,
		Message:     fmt.Sprintf(format, args...),
		Link:        link,
	}
}

func pushNotification(delivery NotificationDelivery, n *entity.Notification) {
	pushFrame(delivery, n.RecipientId, realtime.FrameNotification, n)
}

func pushFrame(delivery NotificationDelivery, userId uuid.UUID, frameType string, data interface{}) {
	if delivery == nil {
		return
	}
	delivery.Push(userId, frameType, data)
}
