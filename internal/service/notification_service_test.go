package service

import (
	"context"
	"errors"
	"testing"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/testutil"
	"collabhub-be/pkg/events"
	"collabhub-be/pkg/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, e *env, recipient uuid.UUID, n int) []*entity.Notification {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)
	out := make([]*entity.Notification, n)
	for i := range out {
		out[i] = newNotification(recipient, nil, entity.NotificationTypeSystem, "", "notice %d", i)
		require.NoError(t, uow.NotificationRepository().Create(ctx, out[i]))
	}
	return out
}

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewNotificationService(e.factory, nil, e.delivery, e.log)
	alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
	bob := testutil.CreateUser(t, e.db, "bob", nil, nil)

	rows := seedNotifications(t, e, alice.Id, 5)
	seedNotifications(t, e, bob.Id, 2)

	t.Run("list pages through the recipient's rows", func(t *testing.T) {
		page, err := svc.List(ctx, alice.Id, 1, 3)
		require.NoError(t, err)
		assert.Len(t, page.Notifications, 3)
		assert.Equal(t, int64(5), page.Total)

		page2, err := svc.List(ctx, alice.Id, 2, 3)
		require.NoError(t, err)
		assert.Len(t, page2.Notifications, 2)
	})

	t.Run("bad paging falls back to defaults", func(t *testing.T) {
		page, err := svc.List(ctx, alice.Id, 0, 1000)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.Limit)
	})

	t.Run("mark read", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(ctx, alice.Id, rows[0].Id))

		count, err := svc.UnreadCount(ctx, alice.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count.Count)
	})

	t.Run("cannot mark someone else's notification", func(t *testing.T) {
		err := svc.MarkRead(ctx, bob.Id, rows[1].Id)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("mark all read", func(t *testing.T) {
		res, err := svc.MarkAllRead(ctx, alice.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Updated)

		count, err := svc.UnreadCount(ctx, alice.Id)
		require.NoError(t, err)
		assert.Zero(t, count.Count)

		bobCount, err := svc.UnreadCount(ctx, bob.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(2), bobCount.Count)
	})
}

func TestNotificationService_LevelUpFrames(t *testing.T) {
	e := newEnv(t)
	svc := NewNotificationService(e.factory, nil, e.delivery, e.log)
	userID := uuid.New()

	require.NoError(t, svc.Start(context.Background()))

	err := svc.handleLevelUp(context.Background(), events.BaseEvent{
		Type: "LEVEL_UP",
		Data: map[string]interface{}{"user_id": userID.String(), "level": float64(3), "xp": float64(210)},
	})
	require.NoError(t, err)

	frames := e.delivery.To(userID)
	require.Len(t, frames, 1)
	assert.Equal(t, realtime.FrameLevelUp, frames[0].frameType)
	assert.Equal(t, dto.LevelUpFrame{Level: 3, XP: 210, Message: "You reached level 3!"}, frames[0].data)

	// malformed events are dropped, not retried
	assert.NoError(t, svc.handleLevelUp(context.Background(), events.BaseEvent{Type: "LEVEL_UP", Data: map[string]interface{}{}}))
}
