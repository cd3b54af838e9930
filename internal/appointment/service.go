package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type appointmentStore interface {
	Insert(ctx context.Context, a Appointment) (Appointment, error)
	Update(ctx context.Context, a Appointment) (Appointment, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Appointment, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Service manages appointment lifecycle.
type Service struct {
	repo appointmentStore
}

// NewService constructs an appointment service.
func NewService(repo appointmentStore) *Service {
	return &Service{repo: repo}
}

// Input carries the user-editable fields of an appointment.
type Input struct {
	Title           string
	Description     *string
	AppointmentDate time.Time
	Location        *string
	DoctorName      *string
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if in.AppointmentDate.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// Create validates and stores a new appointment.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input Input) (Appointment, error) {
	if err := input.validate(); err != nil {
		return Appointment{}, err
	}

	return s.repo.Insert(ctx, Appointment{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		AppointmentDate: input.AppointmentDate,
		Location:        input.Location,
		DoctorName:      input.DoctorName,
	})
}

// Update mutates an existing appointment owned by the caller.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, input Input) (Appointment, error) {
	if err := input.validate(); err != nil {
		return Appointment{}, err
	}

	return s.repo.Update(ctx, Appointment{
		ID:              id,
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		AppointmentDate: input.AppointmentDate,
		Location:        input.Location,
		DoctorName:      input.DoctorName,
	})
}

// List returns the owner's appointments in chronological order. Day
// bucketing for the calendar view stays client-side.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes an appointment owned by the caller.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
