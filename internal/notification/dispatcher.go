package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

const DefaultQueueSize = 100

type Dispatcher struct {
	sink    Sink
	log     *zap.Logger
	metrics *metrics.Collector

	mu     sync.RWMutex
	closed bool
	queue  chan models.Notification
	done   chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger, m *metrics.Collector, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:    sink,
		log:     log,
		metrics: m,
		queue:   make(chan models.Notification, size),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.sink.Create(ctx, &n)
		cancel()

		if err != nil {
			d.log.Error("notification write failed",
				zap.Uint("recipient_id", n.RecipientID),
				zap.String("type", string(n.Type)),
				zap.Error(err),
			)
			continue
		}
		if d.metrics != nil {
			d.metrics.NotificationsSent.Inc()
		}
	}
}

// Dispatch enfileira sem bloquear. Fila cheia ou dispatcher fechado descartam
// a notificação; nunca quebra a requisição que a originou.
func (d *Dispatcher) Dispatch(n models.Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		d.log.Warn("notification queue full, dropping",
			zap.Uint("recipient_id", n.RecipientID),
			zap.String("type", string(n.Type)),
		)
		if d.metrics != nil {
			d.metrics.NotificationsDropped.Inc()
		}
		return false
	}
}

// Close para de aceitar notificações e espera a fila esvaziar.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
