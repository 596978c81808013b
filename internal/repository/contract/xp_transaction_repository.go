package contract

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"
)

type XPTransactionRepository interface {
	Create(ctx context.Context, tx *entity.XPTransaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.XPTransaction, error)
}
