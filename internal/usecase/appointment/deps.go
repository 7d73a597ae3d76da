package appointment

import (
	"errors"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
)

// Notifier recebe as notificações geradas após escritas bem-sucedidas.
type Notifier interface {
	Dispatch(n models.Notification) bool
}

type noopNotifier struct{}

func (noopNotifier) Dispatch(models.Notification) bool { return false }

// Deps agrupa os colaboradores compartilhados pelos casos de uso.
type Deps struct {
	Repo         domain.Repository
	Checker      domain.ConflictChecker
	Policy       domain.Policy
	DeletePolicy domain.DeletePolicy
	Clock        timezone.Clock
	Notifier     Notifier
	Log          *zap.Logger
	Metrics      *metrics.Collector
}

func (d Deps) withDefaults() Deps {
	if d.Checker.Mode == "" {
		d.Checker = domain.NewConflictChecker(domain.ConflictExact)
	}
	if d.Policy == nil {
		d.Policy = domain.RolePolicy{}
	}
	if d.Clock == nil {
		d.Clock = timezone.NewClock(timezone.DefaultTimezone)
	}
	if d.Notifier == nil {
		d.Notifier = noopNotifier{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

// ======================================================
// Classificação de erros
// ======================================================

// lookup traduz o resultado de uma busca por id.
func lookup(err error, notFound error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return notFound
	}
	return domain.Persistence(err)
}

// classifyWrite traduz falhas da transação de escrita.
func classifyWrite(err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		return domain.ErrSlotConflict.Wrap(err)
	case errors.Is(err, domain.ErrRecordNotFound):
		return domain.ErrNotFound
	}
	if _, ok := httperr.CodeOf(err); ok {
		return err
	}
	return domain.Persistence(err)
}

func (d Deps) record(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op))

	switch {
	case err == nil:
		return
	case errors.Is(err, domain.ErrSlotConflict):
		d.Metrics.Appointment(metrics.OutcomeConflict)
		d.Log.Info("appointment slot conflict", append(fields, zap.Error(err))...)
	case errors.Is(err, domain.ErrPersistence):
		d.Metrics.Appointment(metrics.OutcomeFailed)
		d.Log.Error("appointment persistence failure", append(fields, zap.Error(err))...)
	default:
		d.Metrics.Appointment(metrics.OutcomeRejected)
		d.Log.Debug("appointment rejected", append(fields, zap.Error(err))...)
	}
}

// Services expõe todos os casos de uso montados sobre as mesmas dependências.
type Services struct {
	Create *CreateAppointment
	Update *UpdateAppointment
	Delete *DeleteAppointment
	Get    *GetAppointment
	List   *ListAppointments
}

func NewServices(d Deps) *Services {
	d = d.withDefaults()
	return &Services{
		Create: &CreateAppointment{d: d},
		Update: &UpdateAppointment{d: d},
		Delete: &DeleteAppointment{d: d},
		Get:    &GetAppointment{d: d},
		List:   &ListAppointments{d: d},
	}
}
