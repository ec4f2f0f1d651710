package mapper

import (
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

// ToProjectView converts a Project to its outward view, applying the role
// based visibility filter. Non-admin callers never see financial fields
// (fixedAmount, hourlyRate, totalAmount, paidAmount, pendingAmount) or the
// payment ledger. Milestones and time entries remain visible to everyone.
// This is the single place redaction happens; every read and mutation
// response flows through it.
func ToProjectView(project *domain.Project, role domain.Role) domain.ProjectView {
	view := domain.ProjectView{
		ID:                 project.ID,
		ProjectName:        project.ProjectName,
		ClientName:         project.ClientName,
		Description:        project.Description,
		Deadline:           project.Deadline,
		Category:           project.Category,
		ActualHours:        project.ActualHours,
		Status:             project.Status,
		ClientStatus:       project.ClientStatus,
		TeamLeadID:         project.TeamLeadID,
		Employees:          project.Employees,
		VisibleToTeamLeads: project.VisibleToTeamLeads,
		Milestones:         make([]domain.MilestoneView, 0, len(project.Milestones)),
		TimeEntries:        make([]domain.TimeEntryView, 0, len(project.TimeEntries)),
		CreatedAt:          project.CreatedAt,
		UpdatedAt:          project.UpdatedAt,
	}
	if view.Employees == nil {
		view.Employees = []string{}
	}

	for i := range project.Milestones {
		view.Milestones = append(view.Milestones, ToMilestoneView(&project.Milestones[i]))
	}
	for i := range project.TimeEntries {
		view.TimeEntries = append(view.TimeEntries, ToTimeEntryView(&project.TimeEntries[i]))
	}

	if role == domain.RoleAdmin {
		fixedAmount := project.FixedAmount
		hourlyRate := project.HourlyRate
		totalAmount := project.TotalAmount
		paidAmount := project.PaidAmount
		pendingAmount := project.PendingAmount
		view.FixedAmount = &fixedAmount
		view.HourlyRate = &hourlyRate
		view.TotalAmount = &totalAmount
		view.PaidAmount = &paidAmount
		view.PendingAmount = &pendingAmount

		view.Payments = make([]domain.PaymentView, 0, len(project.Payments))
		for i := range project.Payments {
			view.Payments = append(view.Payments, ToPaymentView(&project.Payments[i]))
		}
	}

	return view
}

// ToProjectViews converts a slice of projects with the same visibility filter
func ToProjectViews(projects []domain.Project, role domain.Role) []domain.ProjectView {
	views := make([]domain.ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, ToProjectView(&projects[i], role))
	}
	return views
}

// ToPaymentView converts a Payment to PaymentView
func ToPaymentView(payment *domain.Payment) domain.PaymentView {
	return domain.PaymentView{
		ID:            payment.ID,
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		Notes:         payment.Notes,
		MilestoneID:   payment.MilestoneID,
		AddedBy:       payment.AddedBy,
		PaymentDate:   payment.PaymentDate,
	}
}

// ToMilestoneView converts a Milestone to MilestoneView
func ToMilestoneView(milestone *domain.Milestone) domain.MilestoneView {
	deliverables := milestone.Deliverables
	if deliverables == nil {
		deliverables = []string{}
	}
	return domain.MilestoneView{
		ID:           milestone.ID,
		Title:        milestone.Title,
		Amount:       milestone.Amount,
		DueDate:      milestone.DueDate,
		Deliverables: deliverables,
		Order:        milestone.Order,
		Status:       milestone.Status,
	}
}

// ToTimeEntryView converts a TimeEntry to TimeEntryView
func ToTimeEntryView(entry *domain.TimeEntry) domain.TimeEntryView {
	return domain.TimeEntryView{
		ID:          entry.ID,
		Date:        entry.Date,
		Hours:       entry.Hours,
		Description: entry.Description,
		TaskType:    entry.TaskType,
		AddedBy:     entry.AddedBy,
	}
}

// ToUserDTO converts a User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ToNotificationDTO converts a Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         notification.ID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Read:       notification.Read,
		ReadAt:     notification.ReadAt,
		EntityID:   notification.EntityID,
		EntityType: notification.EntityType,
		CreatedAt:  notification.CreatedAt,
	}
}
