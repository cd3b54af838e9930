package pregnancy

import (
	"time"

	"github.com/google/uuid"
)

const (
	fullTermDays  = 280
	fullTermWeeks = 40
)

// Info is the single pregnancy record kept per user.
type Info struct {
	OwnerID        uuid.UUID  `json:"owner_id"`
	PartnerName    *string    `json:"partner_name,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	LastPeriodDate *time.Time `json:"last_period_date,omitempty"`
	DoctorName     *string    `json:"doctor_name,omitempty"`
	Hospital       *string    `json:"hospital,omitempty"`
	BloodType      *string    `json:"blood_type,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// WeeksPregnant derives the current gestational week from the due date,
// clamped to [0, 40]. Zero when no due date is set.
func (i Info) WeeksPregnant(now time.Time) int {
	if i.DueDate == nil {
		return 0
	}
	daysLeft := int(i.DueDate.Sub(now).Hours() / 24)
	weeks := (fullTermDays - daysLeft) / 7
	if weeks < 0 {
		return 0
	}
	if weeks > fullTermWeeks {
		return fullTermWeeks
	}
	return weeks
}

// DaysRemaining derives the days until the due date, never negative.
// Zero when no due date is set.
func (i Info) DaysRemaining(now time.Time) int {
	if i.DueDate == nil {
		return 0
	}
	days := int(i.DueDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
