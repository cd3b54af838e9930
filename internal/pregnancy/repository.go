package pregnancy

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

// Repository provides access to pregnancy info storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new pregnancy info repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches the owner's pregnancy info.
func (r *Repository) Get(ctx context.Context, ownerID uuid.UUID) (Info, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT owner_id, partner_name, due_date, last_period_date, doctor_name, hospital, blood_type, updated_at
FROM pregnancy_info
WHERE owner_id = $1;`

	var info Info
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&info.OwnerID,
		&info.PartnerName,
		&info.DueDate,
		&info.LastPeriodDate,
		&info.DoctorName,
		&info.Hospital,
		&info.BloodType,
		&info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Info{}, ErrInfoNotFound
		}
		return Info{}, fmt.Errorf("get pregnancy info: %w", err)
	}
	return info, nil
}

// Upsert creates or replaces the owner's pregnancy info.
func (r *Repository) Upsert(ctx context.Context, info Info) (Info, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO pregnancy_info (owner_id, partner_name, due_date, last_period_date, doctor_name, hospital, blood_type)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (owner_id)
DO UPDATE SET partner_name = EXCLUDED.partner_name,
              due_date = EXCLUDED.due_date,
              last_period_date = EXCLUDED.last_period_date,
              doctor_name = EXCLUDED.doctor_name,
              hospital = EXCLUDED.hospital,
              blood_type = EXCLUDED.blood_type,
              updated_at = NOW()
RETURNING owner_id, partner_name, due_date, last_period_date, doctor_name, hospital, blood_type, updated_at;`

	var stored Info
	err := r.pool.QueryRow(ctx, query,
		info.OwnerID,
		info.PartnerName,
		info.DueDate,
		info.LastPeriodDate,
		info.DoctorName,
		info.Hospital,
		info.BloodType,
	).Scan(
		&stored.OwnerID,
		&stored.PartnerName,
		&stored.DueDate,
		&stored.LastPeriodDate,
		&stored.DoctorName,
		&stored.Hospital,
		&stored.BloodType,
		&stored.UpdatedAt,
	)
	if err != nil {
		return Info{}, fmt.Errorf("upsert pregnancy info: %w", err)
	}
	return stored, nil
}
