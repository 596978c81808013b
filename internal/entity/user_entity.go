// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleMentor  UserRole = "mentor"
	UserRoleAdmin   UserRole = "admin"
)

// User is the peer-learning profile. XP and Level change only through the ledger.
type User struct {
	Id             uuid.UUID
	Username       string
	Email          string
	PasswordHash   *string
	FullName       string
	Role           UserRole
	Bio            string
	College        string
	AvatarURL      *string
	SkillsKnown    []string
	SkillsWanted   []string
	VerifiedSkills []string
	XP             int
	Level          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasVerified reports whether skill passed the skill quiz (case-insensitive).
func (u *User) HasVerified(skill string) bool {
	for _, s := range u.VerifiedSkills {
		if equalFold(s, skill) {
			return true
		}
	}
	return false
}
