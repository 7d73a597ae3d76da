package models

import "time"

type NotificationType string

const (
	NotificationBirthday             NotificationType = "LEMBRETE_ANIVERSARIO"
	NotificationAppointmentCreated   NotificationType = "NOVO_AGENDAMENTO"
	NotificationAppointmentUpdated   NotificationType = "AGENDAMENTO_ALTERADO"
	NotificationAppointmentCancelled NotificationType = "AGENDAMENTO_CANCELADO"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RecipientID uint    `gorm:"column:destinatario_id;not null;index" json:"destinatarioId"`
	SenderID    *uint   `gorm:"column:remetente_id" json:"remetenteId"`
	Sender      *Person `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL;" json:"remetente,omitempty"`

	AppointmentID *uint `gorm:"column:agendamento_id" json:"agendamentoId"`

	Type    NotificationType `gorm:"column:tipo;size:40;not null" json:"tipo"`
	Message string           `gorm:"column:mensagem;type:text;not null" json:"mensagem"`
	Read    bool             `gorm:"column:lida;default:false" json:"lida"`

	CreatedAt time.Time `gorm:"column:data_criacao" json:"dataCriacao"`
}

func (Notification) TableName() string {
	return "notificacoes"
}
