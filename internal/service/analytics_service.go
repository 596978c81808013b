package service

import (
	"context"
	"time"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const analyticsWindowDays = 7

type IAnalyticsService interface {
	// Weekly reports XP earned and sessions completed per UTC day for the
	// last seven days, today included.
	Weekly(ctx context.Context, userId uuid.UUID) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (s *analyticsService) Weekly(ctx context.Context, userId uuid.UUID) (*dto.AnalyticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	today := truncateDay(s.now())
	since := today.AddDate(0, 0, -(analyticsWindowDays - 1))

	txs, err := uow.XPTransactionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		// one extra day absorbs timezone skew in stored timestamps; bucketByDay trims it
		specification.CreatedSince{Since: since.AddDate(0, 0, -1)},
	)
	if err != nil {
		return nil, err
	}
	xpByDay := make([]entity.DailyCount, 0, len(txs))
	for _, tx := range txs {
		xpByDay = append(xpByDay, entity.DailyCount{Day: tx.CreatedAt, Total: tx.Amount})
	}

	completedSpecs := []specification.Specification{
		specification.InvolvingUser{UserID: userId},
		specification.ByStatus{Status: string(entity.SessionStatusCompleted)},
	}
	recent, err := uow.SessionRepository().FindAll(ctx,
		append(completedSpecs, specification.UpdatedSince{Since: since.AddDate(0, 0, -1)})...,
	)
	if err != nil {
		return nil, err
	}
	sessionsByDay := make([]entity.DailyCount, 0, len(recent))
	for _, session := range recent {
		sessionsByDay = append(sessionsByDay, entity.DailyCount{Day: session.UpdatedAt, Total: 1})
	}
	completed, err := uow.SessionRepository().Count(ctx, completedSpecs...)
	if err != nil {
		return nil, err
	}

	average, count, err := uow.RatingRepository().AverageFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	xpBuckets := bucketByDay(since, xpByDay)
	sessionBuckets := bucketByDay(since, sessionsByDay)
	days := make([]dto.DailyStat, analyticsWindowDays)
	for i := range days {
		days[i] = dto.DailyStat{
			Date:              since.AddDate(0, 0, i).Format("2006-01-02"),
			XPEarned:          xpBuckets[i],
			SessionsCompleted: sessionBuckets[i],
		}
	}

	return &dto.AnalyticsResponse{
		Days:              days,
		TotalXP:           user.XP,
		Level:             user.Level,
		SessionsCompleted: completed,
		AverageRating:     average,
		RatingCount:       count,
	}, nil
}

// bucketByDay sums counts into analyticsWindowDays daily buckets starting at
// since. Entries outside the window are ignored.
func bucketByDay(since time.Time, counts []entity.DailyCount) []int {
	buckets := make([]int, analyticsWindowDays)
	for _, c := range counts {
		day := int(truncateDay(c.Day).Sub(since).Hours() / 24)
		if day < 0 || day >= analyticsWindowDays {
			continue
		}
		buckets[day] += c.Total
	}
	return buckets
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
