package models

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleUser     Role = "USER"
	RoleClient   Role = "CLIENTE"
	RoleProvider Role = "PRESTADOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleClient, RoleProvider:
		return true
	}
	return false
}

// Person representa tanto clientes quanto prestadores.
type Person struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string     `gorm:"column:nome;size:100;not null" json:"nome"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:senha;size:255;not null" json:"-"`
	BirthDate    *time.Time `gorm:"column:data_nascimento;type:date" json:"dataNascimento"`
	Phone        *string    `gorm:"column:telefone;size:20" json:"telefone"`
	Address      *string    `gorm:"column:endereco;size:255" json:"endereco"`
	Role         Role       `gorm:"size:20;default:'CLIENTE';index" json:"role"`
	RefreshToken string     `gorm:"column:refresh_token;size:512" json:"-"`

	Services     []Service     `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"servicosOferecidos,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"agendamentos,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Person) TableName() string {
	return "pessoas"
}
