package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
)

// UpdateInput: campos nil (ou ids zero) mantêm o valor atual.
type UpdateInput struct {
	Actor     domain.Actor
	ID        uint
	DateTime  *string
	ClientID  *uint
	ServiceID *uint
	Available *bool
}

type UpdateAppointment struct {
	d Deps
}

func NewUpdateAppointment(d Deps) *UpdateAppointment {
	return &UpdateAppointment{d: d.withDefaults()}
}

func present(id *uint) bool {
	return id != nil && *id != 0
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateInput,
) (ap *models.Appointment, err error) {

	defer func() {
		uc.d.record("update", err, zap.Uint("appointment_id", in.ID))
	}()

	ap, err = uc.d.Repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, lookup(err, domain.ErrNotFound)
	}

	if err := uc.d.Policy.CanAccess(in.Actor, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Cliente
	// --------------------------------------------------
	clientID := ap.ClientID
	client := ap.Client
	if present(in.ClientID) && *in.ClientID != ap.ClientID {
		client, err = uc.d.Repo.FindPerson(ctx, *in.ClientID)
		if err != nil {
			return nil, lookup(err, domain.ErrClientNotFound)
		}
		clientID = client.ID
	}

	// --------------------------------------------------
	// Serviço / prestador
	// --------------------------------------------------
	serviceID := ap.ServiceID
	if present(in.ServiceID) {
		serviceID = *in.ServiceID
	}

	svc, err := uc.d.Repo.FindService(ctx, serviceID)
	if err != nil {
		return nil, lookup(err, domain.ErrServiceNotFound)
	}
	if serviceID != ap.ServiceID {
		if _, err := uc.d.Repo.FindProviderForService(ctx, svc.ID); err != nil {
			return nil, lookup(err, domain.ErrProviderNotFound)
		}
	}

	if clientID != ap.ClientID || svc.ID != ap.ServiceID {
		if err := uc.d.Policy.CanBook(in.Actor, clientID, svc); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Data / hora (só revalida se enviada)
	// --------------------------------------------------
	start := ap.DateTime
	if in.DateTime != nil {
		start, err = domain.ValidateDateTime(*in.DateTime, uc.d.Clock)
		if err != nil {
			return nil, err
		}
	}

	slot := domain.NewSlot(svc.ProviderID, start, svc.Duration()).Excluding(ap.ID)
	recheck := !start.Equal(ap.DateTime) || svc.ProviderID != ap.ProviderID
	if uc.d.Checker.Mode == domain.ConflictOverlap && !slot.End.Equal(ap.EndsAt) {
		recheck = true
	}

	ap.ClientID = clientID
	domain.Reschedule(ap, svc, start)
	if in.Available != nil {
		ap.Available = *in.Available
	}

	// --------------------------------------------------
	// Persistência
	// --------------------------------------------------
	if recheck {
		err = uc.d.Repo.WithProviderLock(ctx, svc.ProviderID, func(tx domain.Repository) error {
			if err := uc.d.Checker.Assert(ctx, tx, slot); err != nil {
				return err
			}
			return tx.UpdateAppointment(ctx, ap)
		})
	} else {
		err = uc.d.Repo.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		return nil, classifyWrite(err)
	}

	ap.Client = client
	ap.Service = svc

	uc.d.Metrics.Appointment(metrics.OutcomeUpdated)
	uc.d.Notifier.Dispatch(notification.AppointmentUpdated(ap, client, svc, uc.d.Clock.Location()))
	uc.d.Log.Info("appointment updated",
		zap.Uint("appointment_id", ap.ID),
		zap.Bool("rescheduled", recheck),
	)

	return ap, nil
}
