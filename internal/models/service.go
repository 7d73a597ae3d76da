package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"column:nome;size:100;not null" json:"nome"`
	Description *string `gorm:"column:descricao;size:255" json:"descricao"`
	Image       *string `gorm:"column:imagem;type:text" json:"imagem"`
	Price       float64 `gorm:"column:preco;type:decimal(10,2);not null" json:"preco"`
	DurationMin int     `gorm:"column:duracao;not null" json:"duracao"`

	ProviderID uint    `gorm:"column:prestador_id;not null;index" json:"prestadorId"`
	Provider   *Person `gorm:"foreignKey:ProviderID" json:"prestador,omitempty"`

	Appointments []Appointment `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"agendamentos,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Service) TableName() string {
	return "servicos"
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
