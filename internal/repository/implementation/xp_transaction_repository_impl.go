package implementation

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/mapper"
	"collabhub-be/internal/model"
	"collabhub-be/internal/repository/contract"
	"collabhub-be/internal/repository/scope"
	"collabhub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type XPTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.XPTransactionMapper
}

func NewXPTransactionRepository(db *gorm.DB) contract.XPTransactionRepository {
	return &XPTransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewXPTransactionMapper(),
	}
}

func (r *XPTransactionRepositoryImpl) Create(ctx context.Context, tx *entity.XPTransaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *XPTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.XPTransaction, error) {
	var models []*model.XPTransaction
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.XPTransaction, len(models))
	for i, m := range models {
		out[i] = r.mapper.ToEntity(m)
	}
	return out, nil
}
