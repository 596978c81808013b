package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvolvingUser keeps sessions where the user is sender or receiver.
type InvolvingUser struct {
	UserID uuid.UUID
}

func (s InvolvingUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id = ? OR receiver_id = ?", s.UserID, s.UserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// WithParticipants preloads sender and receiver profiles.
type WithParticipants struct{}

func (s WithParticipants) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Sender").Preload("Receiver")
}
