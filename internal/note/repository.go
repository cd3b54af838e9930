package note

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// Repository provides access to daily note storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new note repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a new note.
func (r *Repository) Insert(ctx context.Context, n Note) (Note, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO daily_notes (id, owner_id, note_date, symptoms, mood, weight, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, owner_id, note_date, symptoms, mood, weight, notes, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, n.ID, n.OwnerID, n.NoteDate, n.Symptoms, n.Mood, n.Weight, n.Notes)

	var stored Note
	if err := scanNote(row, &stored); err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	return stored, nil
}

// Update mutates an existing note ensuring ownership.
func (r *Repository) Update(ctx context.Context, n Note) (Note, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE daily_notes
SET symptoms = $3, mood = $4, weight = $5, notes = $6, updated_at = NOW()
WHERE id = $1 AND owner_id = $2
RETURNING id, owner_id, note_date, symptoms, mood, weight, notes, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, n.ID, n.OwnerID, n.Symptoms, n.Mood, n.Weight, n.Notes)

	var stored Note
	if err := scanNote(row, &stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Note{}, ErrNoteNotFound
		}
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	return stored, nil
}

// ListByOwner returns the owner's notes, newest date first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Note, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, owner_id, note_date, symptoms, mood, weight, notes, created_at, updated_at
FROM daily_notes
WHERE owner_id = $1
ORDER BY note_date DESC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := scanNote(rows, &n); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// Delete removes a note ensuring ownership.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `DELETE FROM daily_notes WHERE id = $1 AND owner_id = $2;`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func scanNote(row pgx.Row, n *Note) error {
	return row.Scan(
		&n.ID,
		&n.OwnerID,
		&n.NoteDate,
		&n.Symptoms,
		&n.Mood,
		&n.Weight,
		&n.Notes,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
}
