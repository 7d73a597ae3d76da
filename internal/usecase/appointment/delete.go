package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
)

type DeleteAppointment struct {
	d Deps
}

func NewDeleteAppointment(d Deps) *DeleteAppointment {
	return &DeleteAppointment{d: d.withDefaults()}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) (err error) {

	defer func() {
		uc.d.record("delete", err, zap.Uint("appointment_id", id))
	}()

	ap, err := uc.d.Repo.GetAppointment(ctx, id)
	if err != nil {
		return lookup(err, domain.ErrNotFound)
	}

	if err := uc.d.Policy.CanAccess(actor, ap); err != nil {
		return err
	}

	if err := uc.d.DeletePolicy.Check(ap, uc.d.Clock.Now()); err != nil {
		return err
	}

	if err := uc.d.Repo.DeleteAppointment(ctx, id); err != nil {
		return classifyWrite(err)
	}

	uc.d.Metrics.Appointment(metrics.OutcomeDeleted)
	uc.d.Notifier.Dispatch(notification.AppointmentCancelled(ap, ap.Client, ap.Service, uc.d.Clock.Location()))
	uc.d.Log.Info("appointment deleted", zap.Uint("appointment_id", id))

	return nil
}
