package contract

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RatingRepository interface {
	// Create returns apperror.ErrDuplicateRating when the pair was already rated.
	Create(ctx context.Context, rating *entity.Rating) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error)
	AverageFor(ctx context.Context, userId uuid.UUID) (average float64, count int64, err error)
}
