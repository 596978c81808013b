package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification stores the durable inbox; real-time pushes are best-effort copies.
type Notification struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientId uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient_created,priority:1;index:idx_notifications_recipient_unread,priority:1"`
	SenderId    *uuid.UUID `gorm:"type:uuid"`
	Type        string     `gorm:"type:varchar(20);not null;default:'SYSTEM'"`
	Message     string     `gorm:"type:text;not null"`
	Link        string     `gorm:"type:varchar(255)"`
	Read        bool       `gorm:"column:is_read;not null;default:false;index:idx_notifications_recipient_unread,priority:2"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_notifications_recipient_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.Id == uuid.Nil {
		n.Id = uuid.New()
	}
	return nil
}
