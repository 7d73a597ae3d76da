package appointment

import (
	"time"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// New monta um agendamento ainda não persistido. Novos horários nascem indisponíveis.
func New(clientID uint, svc *models.Service, start time.Time) *models.Appointment {
	return &models.Appointment{
		DateTime:   start,
		EndsAt:     start.Add(svc.Duration()),
		Available:  false,
		ClientID:   clientID,
		ServiceID:  svc.ID,
		ProviderID: svc.ProviderID,
	}
}

// Reschedule aplica serviço e início ao agendamento, recalculando o fim e o prestador.
func Reschedule(ap *models.Appointment, svc *models.Service, start time.Time) {
	ap.ServiceID = svc.ID
	ap.ProviderID = svc.ProviderID
	ap.DateTime = start
	ap.EndsAt = start.Add(svc.Duration())
}

// SlotOf devolve o horário ocupado por ap, excluindo o próprio id.
func SlotOf(ap *models.Appointment) Slot {
	return Slot{
		ProviderID: ap.ProviderID,
		Start:      ap.DateTime,
		End:        ap.EndsAt,
		ExcludeID:  &ap.ID,
	}
}
