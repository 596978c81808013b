package implementation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepositoriesSQLite(t *testing.T) {
	runRepositorySuite(t, testutil.NewSQLiteDB(t))
}

func TestRepositoriesPostgres(t *testing.T) {
	runRepositorySuite(t, testutil.NewPostgresDB(t).DB)
}

func runRepositorySuite(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	uow := unitofwork.NewUnitOfWork(db)

	t.Run("IncrementXP keeps every concurrent award", func(t *testing.T) {
		user := testutil.CreateUser(t, db, "xp_"+uuid.NewString()[:8], nil, nil)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := unitofwork.NewUnitOfWork(db).UserRepository().IncrementXP(ctx, user.Id, 30)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored := testutil.ReloadUser(t, db, user.Id)
		assert.Equal(t, 300, stored.XP)
		assert.Equal(t, 4, stored.Level)
	})

	t.Run("IncrementXP on unknown user", func(t *testing.T) {
		_, _, err := uow.UserRepository().IncrementXP(ctx, uuid.New(), 10)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("AddVerifiedSkill reports the first verification once", func(t *testing.T) {
		user := testutil.CreateUser(t, db, "vrf_"+uuid.NewString()[:8], []string{"Go"}, nil)

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			added int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := unitofwork.NewUnitOfWork(db).UserRepository().AddVerifiedSkill(ctx, user.Id, "Go")
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					added++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, added)
		assert.Equal(t, []string{"Go"}, testutil.ReloadUser(t, db, user.Id).VerifiedSkills)

		_, err := uow.UserRepository().AddVerifiedSkill(ctx, uuid.New(), "Go")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("skill writers leave other columns alone", func(t *testing.T) {
		user := testutil.CreateUser(t, db, "col_"+uuid.NewString()[:8], []string{"Go"}, []string{"Rust"})
		stale := testutil.ReloadUser(t, db, user.Id)

		added, err := uow.UserRepository().AddVerifiedSkill(ctx, user.Id, "Go")
		require.NoError(t, err)
		require.True(t, added)
		merged, err := uow.UserRepository().AddKnownSkills(ctx, user.Id, []string{"Docker", "go"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "Docker"}, merged)

		stale.Bio = "updated"
		stale.SkillsKnown = []string{"COBOL"}
		require.NoError(t, uow.UserRepository().Update(ctx, stale))
		require.NoError(t, uow.UserRepository().UpdateInterests(ctx, user.Id, nil, []string{"Python"}))

		stored := testutil.ReloadUser(t, db, user.Id)
		assert.Equal(t, "updated", stored.Bio)
		assert.Equal(t, []string{"Go", "Docker"}, stored.SkillsKnown)
		assert.Equal(t, []string{"Python"}, stored.SkillsWanted)
		assert.Equal(t, []string{"Go"}, stored.VerifiedSkills)
	})

	t.Run("TransitionStatus is compare and swap", func(t *testing.T) {
		sender := testutil.CreateUser(t, db, "snd_"+uuid.NewString()[:8], nil, []string{"Go"})
		receiver := testutil.CreateUser(t, db, "rcv_"+uuid.NewString()[:8], []string{"Go"}, nil)

		session := &entity.Session{
			SenderId:   sender.Id,
			ReceiverId: receiver.Id,
			Topic:      "Goroutines",
			StartTime:  time.Now().Add(24 * time.Hour),
			Duration:   60,
			Status:     entity.SessionStatusPending,
		}
		require.NoError(t, uow.SessionRepository().Create(ctx, session))
		require.NotEqual(t, uuid.Nil, session.Id)

		ok, err := uow.SessionRepository().TransitionStatus(ctx, session.Id, entity.SessionStatusPending, entity.SessionStatusAccepted)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = uow.SessionRepository().TransitionStatus(ctx, session.Id, entity.SessionStatusPending, entity.SessionStatusCancelled)
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: session.Id}, specification.WithParticipants{})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, entity.SessionStatusAccepted, stored.Status)
		require.NotNil(t, stored.Sender)
		assert.Equal(t, sender.Username, stored.Sender.Username)

		listed, err := uow.SessionRepository().FindAll(ctx, specification.InvolvingUser{UserID: receiver.Id})
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("completed sessions can be bounded by update time", func(t *testing.T) {
		sender := testutil.CreateUser(t, db, "snd_"+uuid.NewString()[:8], nil, nil)
		receiver := testutil.CreateUser(t, db, "rcv_"+uuid.NewString()[:8], nil, nil)

		ids := make([]uuid.UUID, 2)
		for i := range ids {
			session := &entity.Session{
				SenderId:   sender.Id,
				ReceiverId: receiver.Id,
				Topic:      "Channels",
				StartTime:  time.Now().Add(time.Duration(i+1) * time.Hour),
				Duration:   30,
				Status:     entity.SessionStatusCompleted,
			}
			require.NoError(t, uow.SessionRepository().Create(ctx, session))
			ids[i] = session.Id
		}
		require.NoError(t, db.Model(&model.Session{}).Where("id = ?", ids[0]).
			UpdateColumn("updated_at", time.Now().AddDate(0, 0, -30)).Error)

		specs := []specification.Specification{
			specification.InvolvingUser{UserID: sender.Id},
			specification.ByStatus{Status: string(entity.SessionStatusCompleted)},
		}
		recent, err := uow.SessionRepository().FindAll(ctx,
			append(specs, specification.UpdatedSince{Since: time.Now().AddDate(0, 0, -7)})...)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, ids[1], recent[0].Id)

		total, err := uow.SessionRepository().Count(ctx, specs...)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("sessions list soonest first", func(t *testing.T) {
		sender := testutil.CreateUser(t, db, "snd_"+uuid.NewString()[:8], nil, nil)
		receiver := testutil.CreateUser(t, db, "rcv_"+uuid.NewString()[:8], nil, nil)

		var want []uuid.UUID
		for _, hours := range []int{72, 24, 48} {
			session := &entity.Session{
				SenderId:   sender.Id,
				ReceiverId: receiver.Id,
				Topic:      "Select",
				StartTime:  time.Now().Add(time.Duration(hours) * time.Hour),
				Duration:   30,
				Status:     entity.SessionStatusPending,
			}
			require.NoError(t, uow.SessionRepository().Create(ctx, session))
			want = append(want, session.Id)
		}
		want = []uuid.UUID{want[1], want[2], want[0]}

		listed, err := uow.SessionRepository().FindAll(ctx, specification.InvolvingUser{UserID: sender.Id})
		require.NoError(t, err)
		got := make([]uuid.UUID, 0, len(listed))
		for _, s := range listed {
			got = append(got, s.Id)
		}
		assert.Equal(t, want, got)
	})

	t.Run("ratings reject duplicates and average", func(t *testing.T) {
		rater := testutil.CreateUser(t, db, "rtr_"+uuid.NewString()[:8], nil, nil)
		other := testutil.CreateUser(t, db, "oth_"+uuid.NewString()[:8], nil, nil)
		rated := testutil.CreateUser(t, db, "rtd_"+uuid.NewString()[:8], nil, nil)

		require.NoError(t, uow.RatingRepository().Create(ctx, &entity.Rating{RaterId: rater.Id, RatedUserId: rated.Id, Score: 5}))
		require.NoError(t, uow.RatingRepository().Create(ctx, &entity.Rating{RaterId: other.Id, RatedUserId: rated.Id, Score: 2}))

		err := uow.RatingRepository().Create(ctx, &entity.Rating{RaterId: rater.Id, RatedUserId: rated.Id, Score: 1})
		assert.True(t, errors.Is(err, apperror.ErrDuplicateRating))

		avg, count, err := uow.RatingRepository().AverageFor(ctx, rated.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.InDelta(t, 3.5, avg, 0.001)

		ratings, err := uow.RatingRepository().FindAll(ctx, specification.RatingsFor{UserID: rated.Id}, specification.WithRater{})
		require.NoError(t, err)
		require.Len(t, ratings, 2)
		assert.NotNil(t, ratings[0].Rater)
	})

	t.Run("notifications read state is scoped to the recipient", func(t *testing.T) {
		owner := testutil.CreateUser(t, db, "own_"+uuid.NewString()[:8], nil, nil)
		stranger := testutil.CreateUser(t, db, "str_"+uuid.NewString()[:8], nil, nil)

		first := &entity.Notification{RecipientId: owner.Id, Type: entity.NotificationTypeSystem, Message: "one"}
		require.NoError(t, uow.NotificationRepository().Create(ctx, first))
		require.NoError(t, uow.NotificationRepository().Create(ctx, &entity.Notification{RecipientId: owner.Id, Type: entity.NotificationTypeSystem, Message: "two"}))

		err := uow.NotificationRepository().MarkAsRead(ctx, first.Id, stranger.Id)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))

		require.NoError(t, uow.NotificationRepository().MarkAsRead(ctx, first.Id, owner.Id))

		unread, err := uow.NotificationRepository().Count(ctx, specification.ForRecipient{UserID: owner.Id}, specification.Unread{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), unread)

		updated, err := uow.NotificationRepository().MarkAllAsRead(ctx, owner.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated)
	})

	t.Run("user search matches known skills case-insensitively", func(t *testing.T) {
		tag := uuid.NewString()[:6]
		match := testutil.CreateUser(t, db, "kub_"+tag, []string{"Kubernetes" + tag}, nil)
		testutil.CreateUser(t, db, "nok_"+tag, []string{"Excel"}, nil)

		found, err := uow.UserRepository().FindAll(ctx, specification.UserSearchQuery{Query: "kubernetes" + tag})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, match.Id, found[0].Id)
	})

	t.Run("question bank filters by skill", func(t *testing.T) {
		skill := "Rust" + uuid.NewString()[:6]
		require.NoError(t, uow.QuestionRepository().CreateBulk(ctx, []*entity.Question{
			{Skill: skill, Difficulty: entity.DifficultyBasic, Text: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
			{Skill: skill, Difficulty: entity.DifficultyAdvanced, Text: "q2", Options: []string{"a", "b"}, CorrectAnswer: 0},
		}))

		count, err := uow.QuestionRepository().Count(ctx, specification.QuestionsForSkill{Skill: skill})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		questions, err := uow.QuestionRepository().FindAll(ctx, specification.QuestionsForSkill{Skill: skill})
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Len(t, questions[0].Options, 2)
	})
}
