package specification

import (
	"strings"

	"gorm.io/gorm"
)

// UserSearchQuery matches users by full name, username or a known skill.
// LOWER/LIKE keeps it portable between Postgres and SQLite; skills are
// matched against the JSON text of the array.
type UserSearchQuery struct {
	Query string
}

func (s UserSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(strings.TrimSpace(s.Query)) + "%"
	return db.Where(
		"LOWER(full_name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(CAST(skills_known AS TEXT)) LIKE ?",
		pattern, pattern, pattern,
	)
}

// QuestionsForSkill filters the quiz bank by skill name (case-insensitive).
type QuestionsForSkill struct {
	Skill string
}

func (s QuestionsForSkill) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(skill) = ?", strings.ToLower(strings.TrimSpace(s.Skill)))
}
