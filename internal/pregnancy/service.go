package pregnancy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type infoStore interface {
	Get(ctx context.Context, ownerID uuid.UUID) (Info, error)
	Upsert(ctx context.Context, info Info) (Info, error)
}

// Service manages the per-user pregnancy record.
type Service struct {
	repo    infoStore
	nowFunc func() time.Time
}

// NewService constructs a pregnancy info service.
func NewService(repo infoStore) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

// Overview decorates Info with values derived from the due date.
type Overview struct {
	Info
	WeeksPregnant int `json:"weeks_pregnant"`
	DaysRemaining int `json:"days_remaining"`
}

// Get returns the owner's pregnancy overview.
func (s *Service) Get(ctx context.Context, ownerID uuid.UUID) (Overview, error) {
	info, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return Overview{}, err
	}
	return s.overview(info), nil
}

// UpsertInput carries the editable pregnancy fields.
type UpsertInput struct {
	PartnerName    *string
	DueDate        *time.Time
	LastPeriodDate *time.Time
	DoctorName     *string
	Hospital       *string
	BloodType      *string
}

// Upsert creates or replaces the owner's pregnancy info.
func (s *Service) Upsert(ctx context.Context, ownerID uuid.UUID, input UpsertInput) (Overview, error) {
	stored, err := s.repo.Upsert(ctx, Info{
		OwnerID:        ownerID,
		PartnerName:    input.PartnerName,
		DueDate:        input.DueDate,
		LastPeriodDate: input.LastPeriodDate,
		DoctorName:     input.DoctorName,
		Hospital:       input.Hospital,
		BloodType:      input.BloodType,
	})
	if err != nil {
		return Overview{}, err
	}
	return s.overview(stored), nil
}

func (s *Service) overview(info Info) Overview {
	now := s.nowFunc()
	return Overview{
		Info:          info,
		WeeksPregnant: info.WeeksPregnant(now),
		DaysRemaining: info.DaysRemaining(now),
	}
}
