package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/testutil"
)

func newUserService(db *gorm.DB) *service.UserService {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return service.NewUserService(repository.NewUserRepository(db), issuer, zap.NewNop())
}

func TestUserService_Register(t *testing.T) {
	t.Run("registers an account with a hashed password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		dto, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Name:     "Jordan Lee",
			Email:    "jordan@example.com",
			Password: "supersecret",
			Role:     domain.RoleTeamLead,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RoleTeamLead, dto.Role)
		assert.True(t, dto.IsActive)

		var stored domain.User
		require.NoError(t, db.First(&stored, "email = ?", "jordan@example.com").Error)
		assert.NotEqual(t, "supersecret", stored.PasswordHash)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Name:     "Jordan Lee",
			Email:    "jordan@example.com",
			Password: "supersecret",
			Role:     domain.Role("superuser"),
		})
		assert.ErrorIs(t, err, service.ErrInvalidRole)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		req := &domain.RegisterRequest{
			Name:     "Jordan Lee",
			Email:    "jordan@example.com",
			Password: "supersecret",
			Role:     domain.RoleEmployee,
		}
		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	t.Run("valid credentials issue a parseable token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Name:     "Jordan Lee",
			Email:    "jordan@example.com",
			Password: "supersecret",
			Role:     domain.RoleAdmin,
		})
		require.NoError(t, err)

		resp, err := svc.Login(context.Background(), &domain.LoginRequest{
			Email:    "jordan@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, domain.RoleAdmin, resp.User.Role)

		claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Name:     "Jordan Lee",
			Email:    "jordan@example.com",
			Password: "supersecret",
			Role:     domain.RoleEmployee,
		})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &domain.LoginRequest{
			Email:    "jordan@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		_, err := svc.Login(context.Background(), &domain.LoginRequest{
			Email:    "nobody@example.com",
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newUserService(db)

		dto, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Name:     "Jordan Lee",
			Email:    "jordan@example.com",
			Password: "supersecret",
			Role:     domain.RoleEmployee,
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&domain.User{}).Where("id = ?", dto.ID).Update("is_active", false).Error)

		_, err = svc.Login(context.Background(), &domain.LoginRequest{
			Email:    "jordan@example.com",
			Password: "supersecret",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
