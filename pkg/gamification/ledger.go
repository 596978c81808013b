package gamification

import (
	"context"
	"time"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Award is the state of a profile after an XP award.
type Award struct {
	UserId    uuid.UUID
	Amount    int
	XP        int
	Level     int
	LeveledUp bool
}

// Awarder adds XP inside a unit of work. *Ledger is the production Awarder.
type Awarder interface {
	AddXP(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int, reason entity.XPReason, relatedId *uuid.UUID) (*Award, error)
}

// Ledger is the only writer of xp and level. It does not notify anyone;
// callers decide whether a level-up is user visible.
type Ledger struct {
	now func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// AddXP atomically adds amount to the user's xp inside uow and appends the
// matching history row. Pass a uow with an open transaction to make the award
// part of a larger change.
func (l *Ledger) AddXP(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int, reason entity.XPReason, relatedId *uuid.UUID) (*Award, error) {
	if amount <= 0 {
		return nil, apperror.InvalidArgument("xp amount must be positive, got %d", amount)
	}

	xp, level, err := uow.UserRepository().IncrementXP(ctx, userId, amount)
	if err != nil {
		return nil, err
	}

	err = uow.XPTransactionRepository().Create(ctx, &entity.XPTransaction{
		UserId:    userId,
		Amount:    amount,
		Reason:    reason,
		RelatedId: relatedId,
		CreatedAt: l.now(),
	})
	if err != nil {
		return nil, err
	}

	return &Award{
		UserId:    userId,
		Amount:    amount,
		XP:        xp,
		Level:     level,
		LeveledUp: LevelForXP(xp) > LevelForXP(xp-amount),
	}, nil
}
