package service

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/activity"
	"collabhub-be/pkg/gamification"
	"collabhub-be/pkg/metrics"

	"github.com/google/uuid"
)

// rewarder wraps the ledger with what happens after an award is durable:
// metrics and the level-up event.
type rewarder struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     gamification.Awarder
	activity   activity.Publisher
	metrics    *metrics.Manager
	logger     logger.ILogger
}

// grant is one award made inside a larger unit of work, announced after commit.
type grant struct {
	reason entity.XPReason
	award  *gamification.Award
}

// awardAlone runs a single award in its own transaction and announces it.
func (r *rewarder) awardAlone(ctx context.Context, userId uuid.UUID, amount int, reason entity.XPReason, relatedId *uuid.UUID) (*gamification.Award, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	award, err := r.ledger.AddXP(ctx, uow, userId, amount, reason, relatedId)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	r.announce(ctx, grant{reason: reason, award: award})
	return award, nil
}

func (r *rewarder) announce(ctx context.Context, grants ...grant) {
	for _, g := range grants {
		r.metrics.RecordXPAward(string(g.reason), g.award.Amount, g.award.LeveledUp)
		if g.award.LeveledUp {
			r.logger.Info("GAMIFICATION", "User leveled up", map[string]interface{}{
				"user_id": g.award.UserId,
				"level":   g.award.Level,
			})
			r.activity.PublishLevelUp(ctx, g.award.UserId, g.award.Level, g.award.XP)
		}
	}
}
