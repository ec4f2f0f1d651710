package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/mapper"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
)

// UserService handles accounts and authentication
type UserService struct {
	users  *repository.UserRepository
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

func NewUserService(users *repository.UserRepository, issuer *auth.TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{users: users, issuer: issuer, logger: logger}
}

// Register creates an account. Admin only; self-registration is not offered.
func (s *UserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserDTO, error) {
	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// Login verifies credentials and issues a token
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("updating last login failed", zap.Error(err))
	}
	user.LastLoginAt = &now

	return &domain.LoginResponse{
		Token: token,
		User:  mapper.ToUserDTO(user),
	}, nil
}

// Me returns the calling user's account
func (s *UserService) Me(ctx context.Context) (*domain.UserDTO, error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.users.GetByID(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	dto := mapper.ToUserDTO(account)
	return &dto, nil
}

// List returns accounts, optionally filtered by role
func (s *UserService) List(ctx context.Context, role *domain.Role) ([]domain.UserDTO, error) {
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	dtos := make([]domain.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, mapper.ToUserDTO(&users[i]))
	}
	return dtos, nil
}
