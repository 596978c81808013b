// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"strings"
	"time"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/activity"

	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	activity   activity.Publisher
	jwtSecret  string
	jwtTTL     time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, publisher activity.Publisher, jwtSecret string, jwtTTL time.Duration) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		activity:   publisher,
		jwtSecret:  jwtSecret,
		jwtTTL:     jwtTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Check for existing accounts
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}
	existing, err = uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("username already taken")
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	role := entity.UserRoleStudent
	if req.Role == string(entity.UserRoleMentor) {
		role = entity.UserRoleMentor
	}

	// 3. Create profile at xp 0, level 1
	user := &entity.User{
		Username:       req.Username,
		Email:          email,
		PasswordHash:   &hashStr,
		FullName:       strings.TrimSpace(req.FullName),
		Role:           role,
		College:        strings.TrimSpace(req.College),
		SkillsKnown:    entity.NormalizeSkills(req.SkillsKnown),
		SkillsWanted:   entity.NormalizeSkills(req.SkillsWanted),
		VerifiedSkills: []string{},
		XP:             0,
		Level:          1,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.activity.PublishUserRegistered(ctx, user)

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	return s.issue(user)
}

func (s *authService) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := serverutils.IssueToken(s.jwtSecret, user.Id, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		User: dto.UserDTO{
			Id:       user.Id,
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}
