// FILE: internal/service/user_service.go
package service

import (
	"context"
	"strings"

	"collabhub-be/internal/config"
	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/gamification"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.MyProfileResponse, error)
	GetById(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.MyProfileResponse, error)
	GetAll(ctx context.Context, viewerId uuid.UUID) ([]*dto.UserProfileResponse, error)
	Search(ctx context.Context, viewerId uuid.UUID, query string) ([]*dto.UserProfileResponse, error)
	Leaderboard(ctx context.Context) ([]*dto.LeaderboardEntry, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	matchCache *memory.MatchCache
	rules      config.Rules
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, matchCache *memory.MatchCache, rules config.Rules) IUserService {
	return &userService{
		uowFactory: uowFactory,
		matchCache: matchCache,
		rules:      rules,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.MyProfileResponse, error) {
	user, err := findUser(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}
	return toMyProfile(user), nil
}

func (s *userService) GetById(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := findUser(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.MyProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, apperror.InvalidArgument("full name cannot be empty")
		}
		user.FullName = name
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.College != nil {
		user.College = strings.TrimSpace(*req.College)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	var known, wanted []string
	if req.SkillsKnown != nil {
		known = entity.NormalizeSkills(req.SkillsKnown)
		user.SkillsKnown = known
	}
	if req.SkillsWanted != nil {
		wanted = entity.NormalizeSkills(req.SkillsWanted)
		user.SkillsWanted = wanted
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	if known != nil || wanted != nil {
		if err := uow.UserRepository().UpdateInterests(ctx, userId, known, wanted); err != nil {
			return nil, err
		}
		if s.matchCache != nil {
			s.matchCache.Invalidate(userId)
		}
	}

	return toMyProfile(user), nil
}

// GetAll is the explore list: everyone except the viewer, newest first.
func (s *userService) GetAll(ctx context.Context, viewerId uuid.UUID) ([]*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.ExcludeID{ID: viewerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toUserProfiles(users), nil
}

func (s *userService) Search(ctx context.Context, viewerId uuid.UUID, query string) ([]*dto.UserProfileResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidArgument("search query is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.UserSearchQuery{Query: query},
		specification.ExcludeID{ID: viewerId},
		specification.OrderBy{Field: "xp", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toUserProfiles(users), nil
}

func (s *userService) Leaderboard(ctx context.Context) ([]*dto.LeaderboardEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.TopByXP{Limit: s.rules.LeaderboardSize})
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = &dto.LeaderboardEntry{
			Rank:     i + 1,
			Id:       u.Id,
			Username: u.Username,
			FullName: u.FullName,
			XP:       u.XP,
			Level:    u.Level,
		}
	}
	return entries, nil
}

func findUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func toUserProfile(u *entity.User) *dto.UserProfileResponse {
	_, remaining := gamification.ProgressInLevel(u.XP)
	res := &dto.UserProfileResponse{
		Id:             u.Id,
		Username:       u.Username,
		FullName:       u.FullName,
		Role:           string(u.Role),
		Bio:            u.Bio,
		College:        u.College,
		SkillsKnown:    nonNil(u.SkillsKnown),
		SkillsWanted:   nonNil(u.SkillsWanted),
		VerifiedSkills: nonNil(u.VerifiedSkills),
		XP:             u.XP,
		Level:          u.Level,
		XPToNextLevel:  remaining,
		CreatedAt:      u.CreatedAt,
	}
	if u.AvatarURL != nil {
		res.AvatarURL = *u.AvatarURL
	}
	return res
}

func toMyProfile(u *entity.User) *dto.MyProfileResponse {
	return &dto.MyProfileResponse{
		UserProfileResponse: *toUserProfile(u),
		Email:               u.Email,
	}
}

func toUserProfiles(users []*entity.User) []*dto.UserProfileResponse {
	out := make([]*dto.UserProfileResponse, len(users))
	for i, u := range users {
		out[i] = toUserProfile(u)
	}
	return out
}

func toParticipant(u *entity.User) *dto.SessionParticipant {
	if u == nil {
		return nil
	}
	return &dto.SessionParticipant{
		Id:       u.Id,
		Username: u.Username,
		FullName: u.FullName,
		Level:    u.Level,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
