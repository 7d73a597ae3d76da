package notification

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

func when(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006 às 15:04")
}

func nameOf(p *models.Person, fallback string) string {
	if p == nil || p.Name == "" {
		return fallback
	}
	return p.Name
}

func appointmentNotice(
	kind models.NotificationType,
	ap *models.Appointment,
	client *models.Person,
	svc *models.Service,
	loc *time.Location,
) models.Notification {

	clientName := nameOf(client, "Um cliente")
	svcName := "serviço"
	if svc != nil && svc.Name != "" {
		svcName = svc.Name
	}

	var msg string
	switch kind {
	case models.NotificationAppointmentCreated:
		msg = fmt.Sprintf("Novo agendamento: %s marcou %s para %s.", clientName, svcName, when(ap.DateTime, loc))
	case models.NotificationAppointmentUpdated:
		msg = fmt.Sprintf("Agendamento alterado: %s, %s, agora em %s.", clientName, svcName, when(ap.DateTime, loc))
	default:
		msg = fmt.Sprintf("Agendamento cancelado: %s, %s, que seria em %s.", clientName, svcName, when(ap.DateTime, loc))
	}

	id := ap.ID
	sender := ap.ClientID
	return models.Notification{
		RecipientID:   ap.ProviderID,
		SenderID:      &sender,
		AppointmentID: &id,
		Type:          kind,
		Message:       msg,
	}
}

func AppointmentCreated(ap *models.Appointment, client *models.Person, svc *models.Service, loc *time.Location) models.Notification {
	return appointmentNotice(models.NotificationAppointmentCreated, ap, client, svc, loc)
}

func AppointmentUpdated(ap *models.Appointment, client *models.Person, svc *models.Service, loc *time.Location) models.Notification {
	return appointmentNotice(models.NotificationAppointmentUpdated, ap, client, svc, loc)
}

func AppointmentCancelled(ap *models.Appointment, client *models.Person, svc *models.Service, loc *time.Location) models.Notification {
	return appointmentNotice(models.NotificationAppointmentCancelled, ap, client, svc, loc)
}

// BirthdayReminder avisa o prestador sobre o aniversário de um cliente atendido.
func BirthdayReminder(providerID uint, client models.Person) models.Notification {
	sender := client.ID
	return models.Notification{
		RecipientID: providerID,
		SenderID:    &sender,
		Type:        models.NotificationBirthday,
		Message: fmt.Sprintf(
			"Lembrete: Hoje é aniversário de seu cliente %s! Que tal enviar uma felicitação?",
			client.Name,
		),
	}
}
