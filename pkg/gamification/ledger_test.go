package gamification_test

import (
	"context"
	"sync"
	"testing"

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

func TestLedger_AddXP(t *testing.T) {
	ctx := context.Background()
	ledger := gamification.NewLedger()

	t.Run("crossing a level boundary", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		user := testutil.CreateUser(t, db, "alice", nil, nil)
		uow := unitofwork.NewUnitOfWork(db)

		award, err := ledger.AddXP(ctx, uow, user.Id, 50, entity.XPReasonSessionCompleted, nil)
		require.NoError(t, err)
		assert.Equal(t, 50, award.XP)
		assert.Equal(t, 1, award.Level)
		assert.False(t, award.LeveledUp)

		award, err = ledger.AddXP(ctx, uow, user.Id, 100, entity.XPReasonSessionCompleted, nil)
		require.NoError(t, err)
		assert.Equal(t, 150, award.XP)
		assert.Equal(t, 2, award.Level)
		assert.True(t, award.LeveledUp)

		stored := testutil.ReloadUser(t, db, user.Id)
		assert.Equal(t, 150, stored.XP)
		assert.Equal(t, 2, stored.Level)
	})

	t.Run("no premature level up", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		user := testutil.CreateUser(t, db, "bob", nil, nil)
		uow := unitofwork.NewUnitOfWork(db)

		for i := 0; i < 2; i++ {
			_, err := ledger.AddXP(ctx, uow, user.Id, 40, entity.XPReasonRatingGiven, nil)
			require.NoError(t, err)
		}

		stored := testutil.ReloadUser(t, db, user.Id)
		assert.Equal(t, 80, stored.XP)
		assert.Equal(t, 1, stored.Level)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		user := testutil.CreateUser(t, db, "carol", nil, nil)
		uow := unitofwork.NewUnitOfWork(db)

		for _, amount := range []int{0, -5} {
			_, err := ledger.AddXP(ctx, uow, user.Id, amount, entity.XPReasonRatingGiven, nil)
			assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
		}
		assert.Equal(t, 0, testutil.ReloadUser(t, db, user.Id).XP)
	})

	t.Run("unknown profile", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		uow := unitofwork.NewUnitOfWork(db)

		_, err := ledger.AddXP(ctx, uow, uuid.New(), 10, entity.XPReasonSessionAccepted, nil)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("records history", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		user := testutil.CreateUser(t, db, "dave", nil, nil)
		uow := unitofwork.NewUnitOfWork(db)
		related := uuid.New()

		_, err := ledger.AddXP(ctx, uow, user.Id, 10, entity.XPReasonSessionAccepted, &related)
		require.NoError(t, err)

		rows, err := uow.XPTransactionRepository().FindAll(ctx, specification.Filter("user_id", user.Id))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 10, rows[0].Amount)
		assert.Equal(t, entity.XPReasonSessionAccepted, rows[0].Reason)
		require.NotNil(t, rows[0].RelatedId)
		assert.Equal(t, related, *rows[0].RelatedId)
	})

	t.Run("concurrent awards are not lost", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		user := testutil.CreateUser(t, db, "erin", nil, nil)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ledger.AddXP(ctx, unitofwork.NewUnitOfWork(db), user.Id, 5, entity.XPReasonRatingGiven, nil)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored := testutil.ReloadUser(t, db, user.Id)
		assert.Equal(t, 100, stored.XP)
		assert.Equal(t, 2, stored.Level)
	})

	t.Run("rolled back with the enclosing transaction", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		user := testutil.CreateUser(t, db, "frank", nil, nil)
		uow := unitofwork.NewUnitOfWork(db)

		require.NoError(t, uow.Begin(ctx))
		_, err := ledger.AddXP(ctx, uow, user.Id, 30, entity.XPReasonSessionAccepted, nil)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback())

		assert.Equal(t, 0, testutil.ReloadUser(t, db, user.Id).XP)
	})
}
