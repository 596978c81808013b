package mapper

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:             u.Id,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		FullName:       u.FullName,
		Role:           entity.UserRole(u.Role),
		Bio:            u.Bio,
		College:        u.College,
		AvatarURL:      u.AvatarURL,
		SkillsKnown:    fromJSONSlice(u.SkillsKnown),
		SkillsWanted:   fromJSONSlice(u.SkillsWanted),
		VerifiedSkills: fromJSONSlice(u.VerifiedSkills),
		XP:             u.XP,
		Level:          u.Level,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:             u.Id,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		FullName:       u.FullName,
		Role:           string(u.Role),
		Bio:            u.Bio,
		College:        u.College,
		AvatarURL:      u.AvatarURL,
		SkillsKnown:    toJSONSlice(u.SkillsKnown),
		SkillsWanted:   toJSONSlice(u.SkillsWanted),
		VerifiedSkills: toJSONSlice(u.VerifiedSkills),
		XP:             u.XP,
		Level:          u.Level,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func toJSONSlice(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}

func fromJSONSlice(values datatypes.JSONSlice[string]) []string {
	if values == nil {
		return []string{}
	}
	return []string(values)
}
