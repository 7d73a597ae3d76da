package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

type GetAppointment struct {
	d Deps
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.d.Repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, lookup(err, domain.ErrNotFound)
	}

	if err := uc.d.Policy.CanAccess(actor, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

type ListAppointments struct {
	d Deps
}

// Execute aplica o escopo do usuário sobre o filtro recebido.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domain.Actor,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	apps, err := uc.d.Repo.ListAppointments(ctx, uc.d.Policy.Scope(actor, filter))
	if err != nil {
		return nil, domain.Persistence(err)
	}
	return apps, nil
}
