package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
)

func saoPaulo() *time.Location {
	return timezone.Location(timezone.DefaultTimezone)
}

func TestParseDateTimeInterpretsCivilTime(t *testing.T) {
	got, err := ParseDateTime("25/10/2030:17:30", saoPaulo())
	require.NoError(t, err)

	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(time.Date(2030, 10, 25, 20, 30, 0, 0, time.UTC)))
	assert.Equal(t, "25/10/2030:17:30", FormatDateTime(got, saoPaulo()))
}

func TestParseDateTimeRejectsOtherFormats(t *testing.T) {
	inputs := []string{
		"",
		"2030-10-25T17:30",
		"2030-10-25T17:30:00Z",
		"5/10/2030:17:30",
		"25/10/2030 17:30",
		"25/10/2030:17:30:00",
		"25/10/2030:17:30x",
		"31/02/2030:10:00",
		"25/13/2030:10:00",
		"25/10/2030:24:00",
		"amanhã às 10h",
	}

	for _, in := range inputs {
		_, err := ParseDateTime(in, saoPaulo())
		assert.Truef(t, errors.Is(err, ErrInvalidFormat), "input %q", in)
	}
}

func TestEnsureFuture(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, EnsureFuture(now.Add(time.Minute), now))
	assert.ErrorIs(t, EnsureFuture(now, now), ErrPastDateTime)
	assert.ErrorIs(t, EnsureFuture(now.Add(-time.Minute), now), ErrPastDateTime)
}

func TestValidateDateTime(t *testing.T) {
	clock := timezone.FixedClock{
		At:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Loc: saoPaulo(),
	}

	_, err := ValidateDateTime("01/01/2000:10:00", clock)
	assert.ErrorIs(t, err, ErrPastDateTime)

	_, err = ValidateDateTime("2030-10-25", clock)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	got, err := ValidateDateTime("25/10/2030:17:30", clock)
	require.NoError(t, err)
	assert.True(t, got.After(clock.Now()))
}
