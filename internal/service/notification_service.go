package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/mapper"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
)

// NotificationService manages user notifications
type NotificationService struct {
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
	logger        *zap.Logger
}

func NewNotificationService(notifications *repository.NotificationRepository, users *repository.UserRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		logger:        logger,
	}
}

// NotifyProjectAssigned tells a team lead a project is now theirs. Failures
// are logged, never propagated; notifications ride along with the mutation.
func (s *NotificationService) NotifyProjectAssigned(ctx context.Context, leadID uuid.UUID, project *domain.Project) {
	entityID := project.ID
	notification := &domain.Notification{
		UserID:     leadID,
		Type:       string(domain.NotificationTypeProjectAssigned),
		Title:      "Project assigned",
		Message:    fmt.Sprintf("You are now the team lead for %q", project.ProjectName),
		EntityID:   &entityID,
		EntityType: "project",
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("notification create failed",
			zap.String("type", notification.Type),
			zap.Error(err))
	}
}

// NotifyProjectReleased tells every admin a project went back to the pool
func (s *NotificationService) NotifyProjectReleased(ctx context.Context, project *domain.Project, leadName, reason string) {
	admin := domain.RoleAdmin
	admins, err := s.users.List(ctx, &admin)
	if err != nil {
		s.logger.Warn("listing admins for notification failed", zap.Error(err))
		return
	}

	message := fmt.Sprintf("%s released %q back to the pool", leadName, project.ProjectName)
	if reason != "" {
		message += ": " + reason
	}

	for _, a := range admins {
		entityID := project.ID
		notification := &domain.Notification{
			UserID:     a.ID,
			Type:       string(domain.NotificationTypeProjectReleased),
			Title:      "Project released",
			Message:    message,
			EntityID:   &entityID,
			EntityType: "project",
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			s.logger.Warn("notification create failed",
				zap.String("type", notification.Type),
				zap.Error(err))
		}
	}
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, page, pageSize int, unreadOnly bool) ([]domain.NotificationDTO, int64, error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.notifications.ListByUser(ctx, user.UserID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("listing notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		dtos = append(dtos, mapper.ToNotificationDTO(&notifications[i]))
	}
	return dtos, total, nil
}

// MarkAsRead marks one of the caller's notifications as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	user, err := caller(ctx)
	if err != nil {
		return err
	}

	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("loading notification: %w", err)
	}
	if notification.UserID != user.UserID {
		return ErrNotificationNotFound
	}

	return s.notifications.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every unread notification of the caller as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	user, err := caller(ctx)
	if err != nil {
		return err
	}
	return s.notifications.MarkAllAsRead(ctx, user.UserID)
}

// CountUnread returns the caller's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context) (int, error) {
	user, err := caller(ctx)
	if err != nil {
		return 0, err
	}
	return s.notifications.CountUnread(ctx, user.UserID)
}
