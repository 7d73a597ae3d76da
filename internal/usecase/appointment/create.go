package appointment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Actor     domain.Actor
	DateTime  string
	ClientID  uint
	ServiceID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	d Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{d: d.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (ap *models.Appointment, err error) {

	defer func() {
		uc.d.record("create", err,
			zap.Uint("client_id", in.ClientID),
			zap.Uint("service_id", in.ServiceID),
			zap.String("date_time", in.DateTime),
		)
	}()

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	if strings.TrimSpace(in.DateTime) == "" || in.ClientID == 0 || in.ServiceID == 0 {
		return nil, domain.ErrMissingField
	}

	// --------------------------------------------------
	// 2️⃣ Cliente, serviço e prestador
	// --------------------------------------------------
	client, err := uc.d.Repo.FindPerson(ctx, in.ClientID)
	if err != nil {
		return nil, lookup(err, domain.ErrClientNotFound)
	}

	svc, err := uc.d.Repo.FindService(ctx, in.ServiceID)
	if err != nil {
		return nil, lookup(err, domain.ErrServiceNotFound)
	}

	if _, err := uc.d.Repo.FindProviderForService(ctx, svc.ID); err != nil {
		return nil, lookup(err, domain.ErrProviderNotFound)
	}

	// --------------------------------------------------
	// 3️⃣ Autorização
	// --------------------------------------------------
	if err := uc.d.Policy.CanBook(in.Actor, client.ID, svc); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Data / hora no fuso civil
	// --------------------------------------------------
	start, err := domain.ValidateDateTime(in.DateTime, uc.d.Clock)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Conflito + inserção sob o lock do prestador
	// --------------------------------------------------
	ap = domain.New(client.ID, svc, start)

	err = uc.d.Repo.WithProviderLock(ctx, svc.ProviderID, func(tx domain.Repository) error {
		if err := uc.d.Checker.Assert(ctx, tx, domain.NewSlot(svc.ProviderID, start, svc.Duration())); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, classifyWrite(err)
	}

	ap.Client = client
	ap.Service = svc

	// --------------------------------------------------
	// 6️⃣ Efeitos colaterais
	// --------------------------------------------------
	uc.d.Metrics.Appointment(metrics.OutcomeCreated)
	uc.d.Notifier.Dispatch(notification.AppointmentCreated(ap, client, svc, uc.d.Clock.Location()))
	uc.d.Log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("provider_id", ap.ProviderID),
		zap.Time("date_time", ap.DateTime),
	)

	return ap, nil
}
