package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
)

// BirthdaySource encontra aniversariantes e os prestadores que os atenderam.
type BirthdaySource interface {
	ClientsWithBirthday(ctx context.Context, month time.Month, day int) ([]models.Person, error)
	ProvidersServing(ctx context.Context, clientID uint) ([]uint, error)
}

type GormBirthdaySource struct {
	db *gorm.DB
}

func NewGormBirthdaySource(db *gorm.DB) *GormBirthdaySource {
	return &GormBirthdaySource{db: db}
}

func (s *GormBirthdaySource) ClientsWithBirthday(ctx context.Context, month time.Month, day int) ([]models.Person, error) {
	var people []models.Person
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleClient).
		Where("data_nascimento IS NOT NULL").
		Where("EXTRACT(MONTH FROM data_nascimento) = ? AND EXTRACT(DAY FROM data_nascimento) = ?", int(month), day).
		Find(&people).Error
	return people, err
}

func (s *GormBirthdaySource) ProvidersServing(ctx context.Context, clientID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("prestador_id").
		Where("cliente_id = ?", clientID).
		Pluck("prestador_id", &ids).Error
	return ids, err
}

// ======================================================
// Job
// ======================================================

type BirthdayReminder struct {
	source  BirthdaySource
	sink    notification.Sink
	clock   timezone.Clock
	log     *zap.Logger
	metrics *metrics.Collector
}

func NewBirthdayReminder(
	source BirthdaySource,
	sink notification.Sink,
	clock timezone.Clock,
	log *zap.Logger,
	m *metrics.Collector,
) *BirthdayReminder {
	if log == nil {
		log = zap.NewNop()
	}
	return &BirthdayReminder{source: source, sink: sink, clock: clock, log: log, metrics: m}
}

// Run notifica cada prestador distinto que já atendeu um aniversariante do dia.
// O dia é avaliado no fuso civil; o ano de nascimento é ignorado.
func (j *BirthdayReminder) Run(ctx context.Context) (int, error) {
	today := j.clock.Now().In(j.clock.Location())

	clients, err := j.source.ClientsWithBirthday(ctx, today.Month(), today.Day())
	if err != nil {
		j.count("failed")
		return 0, fmt.Errorf("listing birthdays: %w", err)
	}

	sent := 0
	for _, client := range clients {
		providers, err := j.source.ProvidersServing(ctx, client.ID)
		if err != nil {
			j.log.Error("birthday: listing providers failed", zap.Uint("client_id", client.ID), zap.Error(err))
			continue
		}

		seen := map[uint]bool{}
		for _, providerID := range providers {
			if seen[providerID] {
				continue
			}
			seen[providerID] = true

			n := notification.BirthdayReminder(providerID, client)
			if err := j.sink.Create(ctx, &n); err != nil {
				j.log.Error("birthday: notification failed",
					zap.Uint("client_id", client.ID),
					zap.Uint("provider_id", providerID),
					zap.Error(err),
				)
				continue
			}
			sent++
		}
	}

	j.count("ok")
	j.log.Info("birthday reminders sent",
		zap.Int("clients", len(clients)),
		zap.Int("notifications", sent),
	)
	return sent, nil
}

func (j *BirthdayReminder) count(result string) {
	if j.metrics != nil {
		j.metrics.BirthdayRuns.WithLabelValues(result).Inc()
	}
}

// Schedule agenda o job com a expressão cron no fuso informado. O chamador
// deve chamar Stop no *cron.Cron devolvido.
func Schedule(spec string, loc *time.Location, job *BirthdayReminder, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := job.Run(ctx); err != nil {
			log.Error("birthday job failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
