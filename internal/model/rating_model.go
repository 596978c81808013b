package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating carries a unique index on the ordered (rater, rated user) pair; a
// second insert for the same pair fails at the database.
type Rating struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RaterId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_pair,priority:1"`
	RatedUserId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_pair,priority:2;index"`
	Score       int       `gorm:"not null;check:chk_ratings_score,score >= 1 AND score <= 5"`
	Review      string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Rater *User `gorm:"foreignKey:RaterId;constraint:OnDelete:CASCADE"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}
