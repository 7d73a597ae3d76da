package appointment

import (
	"time"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// Actor é o usuário autenticado que dispara a operação.
type Actor struct {
	ID   uint
	Role models.Role
}

type Policy interface {
	CanBook(actor Actor, clientID uint, svc *models.Service) error
	CanAccess(actor Actor, ap *models.Appointment) error
	Scope(actor Actor, filter ListFilter) ListFilter
}

// ===============================
// RolePolicy
// ===============================

// RolePolicy: ADMIN tudo; PRESTADOR os agendamentos dos seus serviços;
// CLIENTE e USER apenas os próprios.
type RolePolicy struct{}

func (RolePolicy) CanBook(actor Actor, clientID uint, svc *models.Service) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleProvider:
		if svc.ProviderID == actor.ID || clientID == actor.ID {
			return nil
		}
	default:
		if clientID == actor.ID {
			return nil
		}
	}
	return ErrForbidden
}

func (RolePolicy) CanAccess(actor Actor, ap *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleProvider:
		if ap.ProviderID == actor.ID || ap.ClientID == actor.ID {
			return nil
		}
	default:
		if ap.ClientID == actor.ID {
			return nil
		}
	}
	return ErrForbidden
}

func (RolePolicy) Scope(actor Actor, f ListFilter) ListFilter {
	id := actor.ID
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleProvider:
		f.ProviderID = &id
	default:
		f.ClientID = &id
	}
	return f
}

// AllowAll é usado por chamadas internas (jobs, seeds).
type AllowAll struct{}

func (AllowAll) CanBook(Actor, uint, *models.Service) error { return nil }
func (AllowAll) CanAccess(Actor, *models.Appointment) error { return nil }
func (AllowAll) Scope(_ Actor, f ListFilter) ListFilter { return f }

// ===============================
// Remoção de agendamentos passados
// ===============================

type DeletePolicy struct {
	AllowPast bool
}

func (p DeletePolicy) Check(ap *models.Appointment, now time.Time) error {
	if p.AllowPast {
		return nil
	}
	if !ap.DateTime.After(now) {
		return ErrPastAppointment
	}
	return nil
}
