package service

import (
	"context"
	"errors"
	"testing"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/internal/testutil"
	"collabhub-be/pkg/gamification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingService(e *env) IRatingService {
	return NewRatingService(e.factory, gamification.NewLedger(), e.delivery, e.activity, nil, e.log, e.rules)
}

// failingAwarder refuses awards for one user and passes the rest through.
type failingAwarder struct {
	gamification.Awarder
	failFor uuid.UUID
}

func (f *failingAwarder) AddXP(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int, reason entity.XPReason, relatedId *uuid.UUID) (*gamification.Award, error) {
	if userId == f.failFor {
		return nil, errors.New("ledger unavailable")
	}
	return f.Awarder.AddXP(ctx, uow, userId, amount, reason, relatedId)
}

func TestRatingService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("high score rewards both sides", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
		bob := testutil.CreateUser(t, e.db, "bob", nil, nil)

		rating, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: 5, Review: " great mentor "})
		require.NoError(t, err)
		assert.Equal(t, 5, rating.Score)
		assert.Equal(t, "great mentor", rating.Review)
		assert.Equal(t, alice.Id, rating.Rater.Id)

		assert.Equal(t, 50, testutil.ReloadUser(t, e.db, bob.Id).XP)
		assert.Equal(t, 5, testutil.ReloadUser(t, e.db, alice.Id).XP)

		rows := e.notificationsFor(t, bob.Id)
		require.Len(t, rows, 1)
		assert.Equal(t, entity.NotificationTypeRating, rows[0].Type)
		assert.Len(t, e.delivery.To(bob.Id), 1)
		assert.Equal(t, []int{5}, e.activity.ratings)
	})

	t.Run("failed award keeps the rating and the other award", func(t *testing.T) {
		e := newEnv(t)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
		bob := testutil.CreateUser(t, e.db, "bob", nil, nil)
		awarder := &failingAwarder{Awarder: gamification.NewLedger(), failFor: bob.Id}
		svc := NewRatingService(e.factory, awarder, e.delivery, e.activity, nil, e.log, e.rules)

		rating, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: 5})
		require.NoError(t, err)

		stored, err := e.factory.NewUnitOfWork(ctx).RatingRepository().FindAll(ctx, specification.RatingsFor{UserID: bob.Id})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, rating.Id, stored[0].Id)

		assert.Equal(t, 0, testutil.ReloadUser(t, e.db, bob.Id).XP)
		assert.Equal(t, 5, testutil.ReloadUser(t, e.db, alice.Id).XP)
		assert.Len(t, e.notificationsFor(t, bob.Id), 1)
		assert.Equal(t, []int{5}, e.activity.ratings)
	})

	t.Run("threshold score still rewards the rated user", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
		bob := testutil.CreateUser(t, e.db, "bob", nil, nil)

		_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: 4})
		require.NoError(t, err)
		assert.Equal(t, 50, testutil.ReloadUser(t, e.db, bob.Id).XP)
	})

	t.Run("low score only rewards the rater", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
		bob := testutil.CreateUser(t, e.db, "bob", nil, nil)

		_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: 3})
		require.NoError(t, err)
		assert.Equal(t, 0, testutil.ReloadUser(t, e.db, bob.Id).XP)
		assert.Equal(t, 5, testutil.ReloadUser(t, e.db, alice.Id).XP)
	})

	t.Run("self rating", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)

		_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: alice.Id, Score: 5})
		assert.True(t, errors.Is(err, apperror.ErrSelfRating))
		assert.Equal(t, 0, testutil.ReloadUser(t, e.db, alice.Id).XP)
	})

	t.Run("score out of range", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
		bob := testutil.CreateUser(t, e.db, "bob", nil, nil)

		for _, score := range []int{0, 6, -1} {
			_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: score})
			assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "score %d", score)
		}
	})

	t.Run("unknown rated user", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)

		_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: uuid.New(), Score: 5})
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("second rating for the same pair", func(t *testing.T) {
		e := newEnv(t)
		svc := newRatingService(e)
		alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
		bob := testutil.CreateUser(t, e.db, "bob", nil, nil)

		_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: 5})
		require.NoError(t, err)
		_, err = svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: bob.Id, Score: 1})
		assert.True(t, errors.Is(err, apperror.ErrDuplicateRating))

		assert.Equal(t, 50, testutil.ReloadUser(t, e.db, bob.Id).XP)
		assert.Equal(t, 5, testutil.ReloadUser(t, e.db, alice.Id).XP)

		// the reverse direction is a different pair
		_, err = svc.Submit(ctx, bob.Id, &dto.SubmitRatingRequest{RatedUserId: alice.Id, Score: 2})
		assert.NoError(t, err)
	})
}

func TestRatingService_ListFor(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := newRatingService(e)
	alice := testutil.CreateUser(t, e.db, "alice", nil, nil)
	bob := testutil.CreateUser(t, e.db, "bob", nil, nil)
	carol := testutil.CreateUser(t, e.db, "carol", nil, nil)

	_, err := svc.Submit(ctx, alice.Id, &dto.SubmitRatingRequest{RatedUserId: carol.Id, Score: 5})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, bob.Id, &dto.SubmitRatingRequest{RatedUserId: carol.Id, Score: 2})
	require.NoError(t, err)

	res, err := svc.ListFor(ctx, carol.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Count)
	assert.InDelta(t, 3.5, res.Average, 0.001)
	require.Len(t, res.Ratings, 2)
	assert.NotNil(t, res.Ratings[0].Rater)

	_, err = svc.ListFor(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
