package appointment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateValidatesInput(t *testing.T) {
	service := NewService(newFakeStore())
	ownerID := uuid.New()

	_, err := service.Create(context.Background(), ownerID, Input{
		AppointmentDate: time.Now(),
	})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = service.Create(context.Background(), ownerID, Input{Title: "Checkup"})
	require.ErrorIs(t, err, ErrDateRequired)
}

func TestListChronologicalOrder(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	ownerID := uuid.New()

	later := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	sooner := time.Date(2025, 5, 2, 14, 30, 0, 0, time.UTC)

	_, err := service.Create(context.Background(), ownerID, Input{Title: "Glucose test", AppointmentDate: later})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), ownerID, Input{Title: "Checkup", AppointmentDate: sooner})
	require.NoError(t, err)

	appointments, err := service.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	require.Equal(t, "Checkup", appointments[0].Title)
	require.Equal(t, "Glucose test", appointments[1].Title)
}

func TestUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	ownerID := uuid.New()

	a, err := service.Create(context.Background(), ownerID, Input{
		Title:           "Checkup",
		AppointmentDate: time.Date(2025, 5, 2, 14, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), uuid.New(), a.ID, Input{
		Title:           "Moved",
		AppointmentDate: a.AppointmentDate,
	})
	require.ErrorIs(t, err, ErrAppointmentNotFound)

	require.ErrorIs(t, service.Delete(context.Background(), uuid.New(), a.ID), ErrAppointmentNotFound)
	require.NoError(t, service.Delete(context.Background(), ownerID, a.ID))
}

// --- fake store ---

type fakeStore struct {
	appointments map[uuid.UUID]Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{appointments: make(map[uuid.UUID]Appointment)}
}

func (f *fakeStore) Insert(ctx context.Context, a Appointment) (Appointment, error) {
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.appointments[a.ID] = a
	return a, nil
}

func (f *fakeStore) Update(ctx context.Context, a Appointment) (Appointment, error) {
	existing, ok := f.appointments[a.ID]
	if !ok || existing.OwnerID != a.OwnerID {
		return Appointment{}, ErrAppointmentNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	f.appointments[a.ID] = a
	return a, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Appointment, error) {
	var list []Appointment
	for _, a := range f.appointments {
		if a.OwnerID == ownerID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].AppointmentDate.Before(list[j].AppointmentDate)
	})
	return list, nil
}

func (f *fakeStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	a, ok := f.appointments[id]
	if !ok || a.OwnerID != ownerID {
		return ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	return nil
}
