package unitofwork

import (
	"context"

	"collabhub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	RatingRepository() contract.RatingRepository
	NotificationRepository() contract.NotificationRepository
	XPTransactionRepository() contract.XPTransactionRepository
	QuestionRepository() contract.QuestionRepository
}
