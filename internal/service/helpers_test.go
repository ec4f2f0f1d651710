package service_test

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

var pickableStatuses = []domain.ProjectStatus{
	domain.ProjectStatusPending,
	domain.ProjectStatusActive,
	domain.ProjectStatusInProgress,
}

func testContext(userID uuid.UUID, role domain.Role) context.Context {
	userCtx := &auth.UserContext{
		UserID: userID,
		Name:   "Test User",
		Email:  "test@example.com",
		Role:   role,
	}
	return auth.WithUserContext(context.Background(), userCtx)
}

func adminContext() context.Context {
	return testContext(uuid.New(), domain.RoleAdmin)
}

func newProjectService(db *gorm.DB) *service.ProjectService {
	return service.NewProjectService(repository.NewProjectRepository(db), db, zap.NewNop(), pickableStatuses)
}

func newAssignmentService(db *gorm.DB, maxConcurrent int) *service.AssignmentService {
	users := repository.NewUserRepository(db)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), users, zap.NewNop())
	return service.NewAssignmentService(
		repository.NewProjectRepository(db),
		users,
		notifications,
		db,
		zap.NewNop(),
		maxConcurrent,
		pickableStatuses,
	)
}
