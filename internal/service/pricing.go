package service

import (
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

// RecomputeTotals recalculates every derived field on the project from its
// loaded ledgers. It is pure and idempotent: running it twice on the same
// ledgers produces identical results. Callers must invoke it as the last
// step of every ledger mutation, before persisting the project totals.
//
// Rules per category:
//   - fixed:     totalAmount = fixedAmount
//   - hourly:    totalAmount = hourlyRate * actualHours
//   - milestone: totalAmount = sum of milestone amounts
//
// actualHours is always the sum of time entry hours, paidAmount the sum of
// payment amounts, and pendingAmount = totalAmount - paidAmount. Pending may
// go negative on overpayment; it is intentionally not clamped.
func RecomputeTotals(p *domain.Project) {
	var hours float64
	for _, entry := range p.TimeEntries {
		hours += entry.Hours
	}
	p.ActualHours = hours

	switch p.Category {
	case domain.CategoryFixed:
		p.TotalAmount = p.FixedAmount
	case domain.CategoryHourly:
		p.TotalAmount = p.HourlyRate * hours
	case domain.CategoryMilestone:
		var total float64
		for _, m := range p.Milestones {
			total += m.Amount
		}
		p.TotalAmount = total
	}

	var paid float64
	for _, payment := range p.Payments {
		paid += payment.Amount
	}
	p.PaidAmount = paid
	p.PendingAmount = p.TotalAmount - p.PaidAmount
}
