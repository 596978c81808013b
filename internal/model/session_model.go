package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderId   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverId uuid.UUID `gorm:"type:uuid;not null;index"`
	Topic      string    `gorm:"type:varchar(255);not null"`
	StartTime  time.Time `gorm:"not null;index"`
	Duration   int       `gorm:"not null;default:60"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Sender   *User `gorm:"foreignKey:SenderId;constraint:OnDelete:CASCADE"`
	Receiver *User `gorm:"foreignKey:ReceiverId;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	return nil
}
