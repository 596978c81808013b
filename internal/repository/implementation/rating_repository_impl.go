package implementation

import (
	"context"
	"errors"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/mapper"
	"collabhub-be/internal/model"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/repository/contract"
	"collabhub-be/internal/repository/scope"
	"collabhub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RatingMapper
}

func NewRatingRepository(db *gorm.DB) contract.RatingRepository {
	return &RatingRepositoryImpl{
		db:     db,
		mapper: mapper.NewRatingMapper(),
	}
}

// Create relies on idx_ratings_pair; gorm's TranslateError turns the
// violation into gorm.ErrDuplicatedKey.
func (r *RatingRepositoryImpl) Create(ctx context.Context, rating *entity.Rating) error {
	m := r.mapper.ToModel(rating)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.ErrDuplicateRating
		}
		return err
	}
	*rating = *r.mapper.ToEntity(m)
	return nil
}

func (r *RatingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	var models []*model.Rating
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RatingRepositoryImpl) AverageFor(ctx context.Context, userId uuid.UUID) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COALESCE(AVG(CAST(score AS FLOAT)), 0) AS average, COUNT(*) AS total").
		Where("rated_user_id = ?", userId).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Average, row.Total, nil
}
