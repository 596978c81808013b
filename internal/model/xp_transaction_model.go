package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type XPTransaction struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index:idx_xp_transactions_user_created,priority:1"`
	Amount    int        `gorm:"not null"`
	Reason    string     `gorm:"type:varchar(50);not null"`
	RelatedId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index:idx_xp_transactions_user_created,priority:2"`
}

func (XPTransaction) TableName() string {
	return "xp_transactions"
}

func (t *XPTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.Id == uuid.Nil {
		t.Id = uuid.New()
	}
	return nil
}
