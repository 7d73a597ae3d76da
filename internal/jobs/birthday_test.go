package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
)

type fakeSource struct {
	ClientsFn   func(month time.Month, day int) ([]models.Person, error)
	ProvidersFn func(clientID uint) ([]uint, error)
}

func (f fakeSource) ClientsWithBirthday(_ context.Context, month time.Month, day int) ([]models.Person, error) {
	return f.ClientsFn(month, day)
}

func (f fakeSource) ProvidersServing(_ context.Context, clientID uint) ([]uint, error) {
	return f.ProvidersFn(clientID)
}

type sinkFn func(n *models.Notification) error

func (f sinkFn) Create(_ context.Context, n *models.Notification) error { return f(n) }

func TestBirthdayReminderUsesCivilDate(t *testing.T) {
	// 02:00 UTC de 20/10 ainda é 19/10 em São Paulo
	clock := timezone.FixedClock{
		At:  time.Date(2026, 10, 20, 2, 0, 0, 0, time.UTC),
		Loc: timezone.Location(timezone.DefaultTimezone),
	}

	var gotMonth time.Month
	var gotDay int
	src := fakeSource{
		ClientsFn: func(m time.Month, d int) ([]models.Person, error) {
			gotMonth, gotDay = m, d
			return nil, nil
		},
	}

	n, err := NewBirthdayReminder(src, sinkFn(func(*models.Notification) error { return nil }), clock, zap.NewNop(), nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, time.October, gotMonth)
	assert.Equal(t, 19, gotDay)
}

func TestBirthdayReminderNotifiesDistinctProviders(t *testing.T) {
	clock := timezone.FixedClock{At: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), Loc: time.UTC}

	src := fakeSource{
		ClientsFn: func(time.Month, int) ([]models.Person, error) {
			return []models.Person{{ID: 1, Name: "Maria"}, {ID: 2, Name: "José"}}, nil
		},
		ProvidersFn: func(clientID uint) ([]uint, error) {
			if clientID == 1 {
				return []uint{10, 11, 10}, nil
			}
			return nil, errors.New("timeout")
		},
	}

	var sent []models.Notification
	sink := sinkFn(func(n *models.Notification) error {
		sent = append(sent, *n)
		return nil
	})

	n, err := NewBirthdayReminder(src, sink, clock, nil, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	require.Len(t, sent, 2)
	assert.Equal(t, uint(10), sent[0].RecipientID)
	assert.Equal(t, uint(11), sent[1].RecipientID)
	assert.Equal(t, models.NotificationBirthday, sent[0].Type)
	assert.Contains(t, sent[0].Message, "Maria")
}

func TestBirthdayReminderPropagatesListingFailure(t *testing.T) {
	src := fakeSource{
		ClientsFn: func(time.Month, int) ([]models.Person, error) { return nil, errors.New("db down") },
	}

	_, err := NewBirthdayReminder(src, nil, timezone.NewClock("UTC"), nil, nil).Run(context.Background())
	assert.Error(t, err)
}

func TestScheduleRejectsInvalidSpec(t *testing.T) {
	job := NewBirthdayReminder(fakeSource{}, nil, timezone.NewClock("UTC"), nil, nil)

	_, err := Schedule("not a cron", time.UTC, job, zap.NewNop())
	assert.Error(t, err)

	c, err := Schedule("0 8 * * *", time.UTC, job, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
