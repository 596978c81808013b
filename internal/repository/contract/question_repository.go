package contract

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"
)

type QuestionRepository interface {
	CreateBulk(ctx context.Context, questions []*entity.Question) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
