package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

type fakeSink struct {
	mu      sync.Mutex
	created []models.Notification
	block   chan struct{}
	err     error
}

func (s *fakeSink) Create(_ context.Context, n *models.Notification) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, *n)
	return nil
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sink := &fakeSink{}
	d := NewDispatcher(sink, zap.NewNop(), nil, 10)

	for i := 0; i < 5; i++ {
		assert.True(t, d.Dispatch(models.Notification{RecipientID: uint(i + 1)}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, 5, sink.count())
	assert.False(t, d.Dispatch(models.Notification{RecipientID: 9}))
}

func TestDispatcherDropsWhenQueueIsFull(t *testing.T) {
	sink := &fakeSink{block: make(chan struct{})}
	m := metrics.NewCollector(prometheus.NewRegistry())
	d := NewDispatcher(sink, zap.NewNop(), m, 1)

	// o worker retira no máximo uma e fica bloqueado; a fila comporta mais uma
	accepted := 0
	for i := 0; i < 5; i++ {
		if d.Dispatch(models.Notification{RecipientID: 1}) {
			accepted++
		}
	}
	assert.LessOrEqual(t, accepted, 2)
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.NotificationsDropped), 3.0)

	close(sink.block)
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &fakeSink{err: errors.New("db down")}
	d := NewDispatcher(sink, zap.NewNop(), nil, 0)

	d.Dispatch(models.Notification{RecipientID: 1})
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 0, sink.count())
}

func TestMessages(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ap := &models.Appointment{
		ID:         3,
		ClientID:   50,
		ProviderID: 10,
		DateTime:   time.Date(2030, 10, 25, 20, 30, 0, 0, time.UTC),
	}

	n := AppointmentCreated(ap, &models.Person{Name: "João"}, &models.Service{Name: "Corte"}, loc)
	assert.Equal(t, uint(10), n.RecipientID)
	assert.Equal(t, uint(50), *n.SenderID)
	assert.Equal(t, uint(3), *n.AppointmentID)
	assert.Equal(t, models.NotificationAppointmentCreated, n.Type)
	assert.Contains(t, n.Message, "25/10/2030 às 17:30")
	assert.Contains(t, n.Message, "João")

	b := BirthdayReminder(10, models.Person{ID: 50, Name: "Maria"})
	assert.Equal(t, models.NotificationBirthday, b.Type)
	assert.Equal(t, "Lembrete: Hoje é aniversário de seu cliente Maria! Que tal enviar uma felicitação?", b.Message)
}
