package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is one scheduled medical visit.
type Appointment struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`
	Location        *string   `json:"location,omitempty"`
	DoctorName      *string   `json:"doctor_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
