package note

import (
	"time"

	"github.com/google/uuid"
)

// Note is one daily journal entry.
type Note struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	NoteDate  time.Time `json:"note_date"`
	Symptoms  string    `json:"symptoms"`
	Mood      string    `json:"mood"`
	Weight    *float64  `json:"weight,omitempty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
