package models

import "time"

// SlotIndexName é a restrição única que arbitra conflitos concorrentes.
const SlotIndexName = "uniq_agendamento_prestador_data_hora"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DateTime time.Time `gorm:"column:data_hora;type:timestamptz;not null;uniqueIndex:uniq_agendamento_prestador_data_hora,priority:2" json:"dataHora"`
	EndsAt   time.Time `gorm:"column:data_hora_fim;type:timestamptz;not null" json:"dataHoraFim"`

	Available bool `gorm:"column:disponivel;default:false" json:"disponivel"`

	ClientID uint    `gorm:"column:cliente_id;not null;index" json:"clienteId"`
	Client   *Person `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`

	ServiceID uint     `gorm:"column:servico_id;not null;index" json:"servicoId"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"servico,omitempty"`

	// derivado de servico.prestadorId no momento da escrita
	ProviderID uint `gorm:"column:prestador_id;not null;uniqueIndex:uniq_agendamento_prestador_data_hora,priority:1" json:"prestadorId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "agendamentos"
}
