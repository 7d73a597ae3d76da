package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

type ListFilter struct {
	ClientID   *uint
	ServiceID  *uint
	ProviderID *uint
	From       *time.Time
	To         *time.Time
	Available  *bool
}

type Repository interface {
	// -------- Pessoas / Serviços --------
	FindPerson(
		ctx context.Context,
		id uint,
	) (*models.Person, error)

	FindService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	FindProviderForService(
		ctx context.Context,
		serviceID uint,
	) (*models.Person, error)

	// -------- Conflito --------
	// FindConflictingAppointment devolve nil, nil quando não há conflito.
	FindConflictingAppointment(
		ctx context.Context,
		slot Slot,
		mode ConflictMode,
	) (*models.Appointment, error)

	// -------- Agendamentos --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// WithProviderLock executa fn numa única transação que serializa
	// as escritas do prestador. fn recebe o repositório da transação.
	WithProviderLock(
		ctx context.Context,
		providerID uint,
		fn func(tx Repository) error,
	) error
}
