package appointment

import "errors"

var (
	// ErrAppointmentNotFound signals a missing or foreign-owned appointment.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrTitleRequired rejects an appointment without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrDateRequired rejects an appointment without a date.
	ErrDateRequired = errors.New("appointment date is required")
)
