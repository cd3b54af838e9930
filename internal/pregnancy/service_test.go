package pregnancy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWeeksPregnantDerivation(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		dueIn     time.Duration
		wantWeeks int
	}{
		{name: "twelve weeks in", dueIn: 196 * 24 * time.Hour, wantWeeks: 12},
		{name: "due today", dueIn: 0, wantWeeks: 40},
		{name: "overdue clamps at forty", dueIn: -14 * 24 * time.Hour, wantWeeks: 40},
		{name: "far future clamps at zero", dueIn: 300 * 24 * time.Hour, wantWeeks: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			due := now.Add(tc.dueIn)
			info := Info{DueDate: &due}
			require.Equal(t, tc.wantWeeks, info.WeeksPregnant(now))
		})
	}

	require.Equal(t, 0, Info{}.WeeksPregnant(now))
}

func TestDaysRemainingNeverNegative(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	due := now.Add(10 * 24 * time.Hour)
	require.Equal(t, 10, Info{DueDate: &due}.DaysRemaining(now))

	past := now.Add(-5 * 24 * time.Hour)
	require.Equal(t, 0, Info{DueDate: &past}.DaysRemaining(now))
	require.Equal(t, 0, Info{}.DaysRemaining(now))
}

func TestUpsertThenGetRoundTrips(t *testing.T) {
	store := &fakeStore{infos: make(map[uuid.UUID]Info)}
	service := NewService(store)
	service.nowFunc = func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}

	ownerID := uuid.New()
	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	partner := "Sam"

	saved, err := service.Upsert(context.Background(), ownerID, UpsertInput{
		PartnerName: &partner,
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.Positive(t, saved.WeeksPregnant)

	got, err := service.Get(context.Background(), ownerID)
	require.NoError(t, err)
	require.Equal(t, saved.WeeksPregnant, got.WeeksPregnant)
	require.Equal(t, &partner, got.PartnerName)
}

func TestGetWithoutSetup(t *testing.T) {
	service := NewService(&fakeStore{infos: make(map[uuid.UUID]Info)})

	_, err := service.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrInfoNotFound)
}

// --- fake store ---

type fakeStore struct {
	infos map[uuid.UUID]Info
}

func (f *fakeStore) Get(ctx context.Context, ownerID uuid.UUID) (Info, error) {
	info, ok := f.infos[ownerID]
	if !ok {
		return Info{}, ErrInfoNotFound
	}
	return info, nil
}

func (f *fakeStore) Upsert(ctx context.Context, info Info) (Info, error) {
	info.UpdatedAt = time.Now()
	f.infos[info.OwnerID] = info
	return info, nil
}
