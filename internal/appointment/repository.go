package appointment

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

// Repository provides access to appointment storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new appointment repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a new appointment.
func (r *Repository) Insert(ctx context.Context, a Appointment) (Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO medical_appointments (id, owner_id, title, description, appointment_date, location, doctor_name)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, owner_id, title, description, appointment_date, location, doctor_name, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, a.ID, a.OwnerID, a.Title, a.Description, a.AppointmentDate, a.Location, a.DoctorName)

	var stored Appointment
	if err := scanAppointment(row, &stored); err != nil {
		return Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	return stored, nil
}

// Update mutates an existing appointment ensuring ownership.
func (r *Repository) Update(ctx context.Context, a Appointment) (Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE medical_appointments
SET title = $3, description = $4, appointment_date = $5, location = $6, doctor_name = $7, updated_at = NOW()
WHERE id = $1 AND owner_id = $2
RETURNING id, owner_id, title, description, appointment_date, location, doctor_name, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, a.ID, a.OwnerID, a.Title, a.Description, a.AppointmentDate, a.Location, a.DoctorName)

	var stored Appointment
	if err := scanAppointment(row, &stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appointment{}, ErrAppointmentNotFound
		}
		return Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	return stored, nil
}

// ListByOwner returns the owner's appointments in chronological order.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, owner_id, title, description, appointment_date, location, doctor_name, created_at, updated_at
FROM medical_appointments
WHERE owner_id = $1
ORDER BY appointment_date ASC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}

// Delete removes an appointment ensuring ownership.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `DELETE FROM medical_appointments WHERE id = $1 AND owner_id = $2;`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row, a *Appointment) error {
	return row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Title,
		&a.Description,
		&a.AppointmentDate,
		&a.Location,
		&a.DoctorName,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}
