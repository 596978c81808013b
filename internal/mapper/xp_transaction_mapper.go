package mapper

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"
)

type XPTransactionMapper struct{}

func NewXPTransactionMapper() *XPTransactionMapper {
	return &XPTransactionMapper{}
}

func (m *XPTransactionMapper) ToEntity(t *model.XPTransaction) *entity.XPTransaction {
	if t == nil {
		return nil
	}
	return &entity.XPTransaction{
		Id:        t.Id,
		UserId:    t.UserId,
		Amount:    t.Amount,
		Reason:    entity.XPReason(t.Reason),
		RelatedId: t.RelatedId,
		CreatedAt: t.CreatedAt,
	}
}

func (m *XPTransactionMapper) ToModel(t *entity.XPTransaction) *model.XPTransaction {
	if t == nil {
		return nil
	}
	return &model.XPTransaction{
		Id:        t.Id,
		UserId:    t.UserId,
		Amount:    t.Amount,
		Reason:    string(t.Reason),
		RelatedId: t.RelatedId,
		CreatedAt: t.CreatedAt,
	}
}
