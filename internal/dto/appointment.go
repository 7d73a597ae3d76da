package dto

import (
	"time"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

type PersonSummary struct {
	ID    uint        `json:"id"`
	Name  string      `json:"nome"`
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role,omitempty"`
}

type ServiceSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"nome"`
	Price       float64 `json:"preco"`
	DurationMin int     `json:"duracao"`
}

type AppointmentDTO struct {
	ID            uint            `json:"id"`
	DateTime      time.Time       `json:"dataHora"`
	EndsAt        time.Time       `json:"dataHoraFim"`
	LocalDateTime string          `json:"dataHoraLocal"`
	Available     bool            `json:"disponivel"`
	ClientID      uint            `json:"clienteId"`
	ServiceID     uint            `json:"servicoId"`
	ProviderID    uint            `json:"prestadorId"`
	Client        *PersonSummary  `json:"cliente,omitempty"`
	Service       *ServiceSummary `json:"servico,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewPersonSummary(p *models.Person) *PersonSummary {
	if p == nil {
		return nil
	}
	return &PersonSummary{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}

// NewAppointmentDTO apresenta os instantes no fuso civil.
func NewAppointmentDTO(ap *models.Appointment, loc *time.Location) AppointmentDTO {
	out := AppointmentDTO{
		ID:            ap.ID,
		DateTime:      ap.DateTime.In(loc),
		EndsAt:        ap.EndsAt.In(loc),
		LocalDateTime: domain.FormatDateTime(ap.DateTime, loc),
		Available:     ap.Available,
		ClientID:      ap.ClientID,
		ServiceID:     ap.ServiceID,
		ProviderID:    ap.ProviderID,
		Client:        NewPersonSummary(ap.Client),
		CreatedAt:     ap.CreatedAt,
		UpdatedAt:     ap.UpdatedAt,
	}
	if ap.Service != nil {
		out.Service = &ServiceSummary{
			ID:          ap.Service.ID,
			Name:        ap.Service.Name,
			Price:       ap.Service.Price,
			DurationMin: ap.Service.DurationMin,
		}
	}
	return out
}

func NewAppointmentList(apps []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, NewAppointmentDTO(&apps[i], loc))
	}
	return out
}
