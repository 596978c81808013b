package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Skill         string                      `gorm:"type:varchar(100);not null;index:idx_questions_skill_difficulty,priority:1"`
	Difficulty    string                      `gorm:"type:varchar(20);not null;index:idx_questions_skill_difficulty,priority:2"`
	Text          string                      `gorm:"column:question;type:text;not null"`
	Options       datatypes.JSONSlice[string] `gorm:"not null"`
	CorrectAnswer int                         `gorm:"not null"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.Id == uuid.Nil {
		q.Id = uuid.New()
	}
	return nil
}
