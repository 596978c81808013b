package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingsFor struct {
	UserID uuid.UUID
}

func (s RatingsFor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rated_user_id = ?", s.UserID)
}

type WithRater struct{}

func (s WithRater) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Rater")
}
