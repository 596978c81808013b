package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Username     string   `json:"username" validate:"required,min=3,max=50,alphanum"`
	FullName     string   `json:"full_name" validate:"required,min=3"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8"`
	Role         string   `json:"role" validate:"omitempty,oneof=student mentor"`
	College      string   `json:"college" validate:"max=255"`
	SkillsKnown  []string `json:"skills_known" validate:"max=50,dive,max=50"`
	SkillsWanted []string `json:"skills_wanted" validate:"max=50,dive,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}
