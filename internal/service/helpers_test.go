package service

import (
	"context"
	"sync"
	"testing"

	"collabhub-be/internal/config"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/internal/testutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pushed struct {
	userID    uuid.UUID
	frameType string
	data      interface{}
}

type recordingDelivery struct {
	mu     sync.Mutex
	frames []pushed
}

func (d *recordingDelivery) Push(userID uuid.UUID, frameType string, data interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, pushed{userID: userID, frameType: frameType, data: data})
}

func (d *recordingDelivery) To(userID uuid.UUID) []pushed {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []pushed
	for _, f := range d.frames {
		if f.userID == userID {
			out = append(out, f)
		}
	}
	return out
}

type levelUp struct {
	userID uuid.UUID
	level  int
}

// recordingActivity keeps the events the services publish.
type recordingActivity struct {
	mu         sync.Mutex
	registered []uuid.UUID
	requested  []uuid.UUID
	transition []entity.SessionStatus
	ratings    []int
	levelUps   []levelUp
	verified   []string
}

func (a *recordingActivity) PublishUserRegistered(_ context.Context, user *entity.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registered = append(a.registered, user.Id)
}

func (a *recordingActivity) PublishSessionRequested(_ context.Context, session *entity.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requested = append(a.requested, session.Id)
}

func (a *recordingActivity) PublishSessionTransition(_ context.Context, session *entity.Session, _ entity.SessionStatus, _ uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transition = append(a.transition, session.Status)
}

func (a *recordingActivity) PublishRatingSubmitted(_ context.Context, rating *entity.Rating) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ratings = append(a.ratings, rating.Score)
}

func (a *recordingActivity) PublishLevelUp(_ context.Context, userId uuid.UUID, level, _ int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.levelUps = append(a.levelUps, levelUp{userID: userId, level: level})
}

func (a *recordingActivity) PublishSkillVerified(_ context.Context, _ uuid.UUID, skill string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.verified = append(a.verified, skill)
}

// env bundles what most service tests need.
type env struct {
	db       *gorm.DB
	factory  unitofwork.RepositoryFactory
	delivery *recordingDelivery
	activity *recordingActivity
	log      logger.ILogger
	rules    config.Rules
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return &env{
		db:       db,
		factory:  unitofwork.NewRepositoryFactory(db),
		delivery: &recordingDelivery{},
		activity: &recordingActivity{},
		log:      logger.NewNopLogger(),
		rules:    config.DefaultRules(),
	}
}

func (e *env) notificationsFor(t *testing.T, userID uuid.UUID) []*entity.Notification {
	t.Helper()
	uow := e.factory.NewUnitOfWork(context.Background())
	rows, err := uow.NotificationRepository().FindAll(context.Background(), specification.ForRecipient{UserID: userID})
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	return rows
}
