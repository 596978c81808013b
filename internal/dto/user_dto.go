// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Bio            string    `json:"bio"`
	College        string    `json:"college"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	SkillsKnown    []string  `json:"skills_known"`
	SkillsWanted   []string  `json:"skills_wanted"`
	VerifiedSkills []string  `json:"verified_skills"`
	XP             int       `json:"xp"`
	Level          int       `json:"level"`
	XPToNextLevel  int       `json:"xp_to_next_level"`
	CreatedAt      time.Time `json:"created_at"`
}

// MyProfileResponse adds the fields only the owner sees.
type MyProfileResponse struct {
	UserProfileResponse
	Email string `json:"email"`
}

type UpdateProfileRequest struct {
	FullName     *string  `json:"full_name" validate:"omitempty,min=3"`
	Bio          *string  `json:"bio" validate:"omitempty,max=1000"`
	College      *string  `json:"college" validate:"omitempty,max=255"`
	AvatarURL    *string  `json:"avatar_url" validate:"omitempty,url"`
	SkillsKnown  []string `json:"skills_known" validate:"omitempty,max=50,dive,max=50"`
	SkillsWanted []string `json:"skills_wanted" validate:"omitempty,max=50,dive,max=50"`
}

type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	XP       int       `json:"xp"`
	Level    int       `json:"level"`
}
