package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Username       string                      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email          string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   *string                     `gorm:"type:varchar(255)"`
	FullName       string                      `gorm:"type:varchar(255);not null"`
	Role           string                      `gorm:"type:varchar(50);not null;default:'student'"`
	Bio            string                      `gorm:"type:text"`
	College        string                      `gorm:"type:varchar(255)"`
	AvatarURL      *string                     `gorm:"type:text"`
	SkillsKnown    datatypes.JSONSlice[string] `gorm:"not null"`
	SkillsWanted   datatypes.JSONSlice[string] `gorm:"not null"`
	VerifiedSkills datatypes.JSONSlice[string] `gorm:"not null"`
	XP             int                         `gorm:"column:xp;not null;default:0;index"`
	Level          int                         `gorm:"not null;default:1"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	if u.Level < 1 {
		u.Level = 1
	}
	return nil
}
