package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// conflictRepo implementa apenas a busca de conflito; o resto não é usado aqui.
type conflictRepo struct {
	Repository
	existing []models.Appointment
	err      error
}

func (r conflictRepo) FindConflictingAppointment(_ context.Context, slot Slot, mode ConflictMode) (*models.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.existing {
		if mode.Conflicts(slot, &r.existing[i]) {
			return &r.existing[i], nil
		}
	}
	return nil, nil
}

var base = time.Date(2030, 10, 25, 20, 30, 0, 0, time.UTC)

func booked(id, provider uint, start time.Time, d time.Duration) models.Appointment {
	return models.Appointment{ID: id, ProviderID: provider, DateTime: start, EndsAt: start.Add(d)}
}

func TestParseConflictMode(t *testing.T) {
	m, err := ParseConflictMode("")
	require.NoError(t, err)
	assert.Equal(t, ConflictExact, m)

	m, err = ParseConflictMode(" OVERLAP ")
	require.NoError(t, err)
	assert.Equal(t, ConflictOverlap, m)

	_, err = ParseConflictMode("fuzzy")
	assert.Error(t, err)
}

func TestExactModeOnlyMatchesSameInstant(t *testing.T) {
	ap := booked(1, 7, base, time.Hour)

	assert.True(t, ConflictExact.Conflicts(NewSlot(7, base, time.Hour), &ap))
	assert.False(t, ConflictExact.Conflicts(NewSlot(7, base.Add(30*time.Minute), time.Hour), &ap))
	assert.False(t, ConflictExact.Conflicts(NewSlot(8, base, time.Hour), &ap))
}

func TestOverlapModeUsesHalfOpenIntervals(t *testing.T) {
	ap := booked(1, 7, base, time.Hour)

	assert.True(t, ConflictOverlap.Conflicts(NewSlot(7, base.Add(30*time.Minute), time.Hour), &ap))
	assert.True(t, ConflictOverlap.Conflicts(NewSlot(7, base.Add(-30*time.Minute), time.Hour), &ap))
	assert.False(t, ConflictOverlap.Conflicts(NewSlot(7, base.Add(time.Hour), time.Hour), &ap))
	assert.False(t, ConflictOverlap.Conflicts(NewSlot(7, base.Add(-time.Hour), time.Hour), &ap))
}

func TestConflictIgnoresExcludedAppointment(t *testing.T) {
	ap := booked(3, 7, base, time.Hour)

	slot := NewSlot(7, base, time.Hour).Excluding(3)
	assert.False(t, ConflictExact.Conflicts(slot, &ap))
	assert.False(t, ConflictOverlap.Conflicts(slot, &ap))
}

func TestCheckerAssert(t *testing.T) {
	repo := conflictRepo{existing: []models.Appointment{booked(9, 7, base, time.Hour)}}
	checker := NewConflictChecker("")

	err := checker.Assert(context.Background(), repo, NewSlot(7, base, time.Hour))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Contains(t, err.Error(), "9")

	assert.NoError(t, checker.Assert(context.Background(), repo, NewSlot(7, base.Add(time.Minute), time.Hour)))
}

func TestCheckerWrapsStoreFailure(t *testing.T) {
	repo := conflictRepo{err: errors.New("connection reset")}

	err := NewConflictChecker(ConflictExact).Assert(context.Background(), repo, NewSlot(7, base, time.Hour))
	assert.ErrorIs(t, err, ErrPersistence)
}
