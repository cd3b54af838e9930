package document

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

// Repository provides access to document metadata storage. Every query
// is scoped by owner; a record never surfaces to another user.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new document repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists metadata for a freshly uploaded document.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO medical_documents (id, owner_id, title, description, storage_key, media_kind, category, file_size, document_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, owner_id, title, description, storage_key, media_kind, category, file_size, document_date, uploaded_at;`

	row := r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.OwnerID,
		rec.Title,
		rec.Description,
		rec.StorageKey,
		rec.MediaKind,
		rec.Category,
		rec.FileSize,
		rec.DocumentDate,
	)

	var stored Record
	if err := scanRecord(row, &stored); err != nil {
		return Record{}, fmt.Errorf("insert document metadata: %w", err)
	}
	return stored, nil
}

// Get fetches a single document ensuring ownership.
func (r *Repository) Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, owner_id, title, description, storage_key, media_kind, category, file_size, document_date, uploaded_at
FROM medical_documents
WHERE id = $1 AND owner_id = $2;`

	var rec Record
	err := scanRecord(r.pool.QueryRow(ctx, query, id, ownerID), &rec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrDocumentNotFound
		}
		return Record{}, fmt.Errorf("get document metadata: %w", err)
	}
	return rec, nil
}

// ListByOwner returns the owner's documents, newest upload first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, owner_id, title, description, storage_key, media_kind, category, file_size, document_date, uploaded_at
FROM medical_documents
WHERE owner_id = $1
ORDER BY uploaded_at DESC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan document metadata: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return records, nil
}

// Delete removes a document's metadata row ensuring ownership.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `DELETE FROM medical_documents WHERE id = $1 AND owner_id = $2;`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete document metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func scanRecord(row pgx.Row, rec *Record) error {
	return row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Title,
		&rec.Description,
		&rec.StorageKey,
		&rec.MediaKind,
		&rec.Category,
		&rec.FileSize,
		&rec.DocumentDate,
		&rec.UploadedAt,
	)
}
