package note

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type noteStore interface {
	Insert(ctx context.Context, n Note) (Note, error)
	Update(ctx context.Context, n Note) (Note, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Note, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Service manages daily note lifecycle.
type Service struct {
	repo noteStore
}

// NewService constructs a note service.
func NewService(repo noteStore) *Service {
	return &Service{repo: repo}
}

// CreateInput carries fields for a new note.
type CreateInput struct {
	NoteDate time.Time
	Symptoms string
	Mood     string
	Weight   *float64
	Notes    string
}

// Create validates and stores a new note.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (Note, error) {
	if input.NoteDate.IsZero() {
		return Note{}, ErrDateRequired
	}

	return s.repo.Insert(ctx, Note{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		NoteDate: input.NoteDate,
		Symptoms: input.Symptoms,
		Mood:     input.Mood,
		Weight:   input.Weight,
		Notes:    input.Notes,
	})
}

// UpdateInput carries the mutable fields of a note. NoteDate is fixed
// at creation, matching one entry per calendar day.
type UpdateInput struct {
	Symptoms string
	Mood     string
	Weight   *float64
	Notes    string
}

// Update mutates an existing note owned by the caller.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateInput) (Note, error) {
	return s.repo.Update(ctx, Note{
		ID:       id,
		OwnerID:  ownerID,
		Symptoms: input.Symptoms,
		Mood:     input.Mood,
		Weight:   input.Weight,
		Notes:    input.Notes,
	})
}

// List returns the owner's notes, newest date first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Note, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes a note owned by the caller.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
