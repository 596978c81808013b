package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForRecipient struct {
	UserID uuid.UUID
}

func (s ForRecipient) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("recipient_id = ?", s.UserID)
}

type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}
