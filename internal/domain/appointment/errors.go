package appointment

import (
	"errors"

	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
)

// ===============================
// Erros de aplicação
// ===============================

var (
	ErrMissingField     = httperr.New(httperr.CodeMissingField, "Data/hora, ID do cliente e ID do serviço são obrigatórios.")
	ErrInvalidFormat    = httperr.New(httperr.CodeInvalidFormat, `Data/hora inválida. Use o formato "DD/MM/YYYY:HH:mm" (ex: "25/10/2030:17:30").`)
	ErrPastDateTime     = httperr.New(httperr.CodePastDateTime, "A data/hora do agendamento já passou.")
	ErrPastAppointment  = httperr.New(httperr.CodePastAppointment, "Agendamentos passados não podem ser removidos.")
	ErrClientNotFound   = httperr.New(httperr.CodeClientNotFound, "Cliente não encontrado.")
	ErrServiceNotFound  = httperr.New(httperr.CodeServiceNotFound, "Serviço não encontrado.")
	ErrProviderNotFound = httperr.New(httperr.CodeProviderNotFound, "Prestador do serviço não encontrado.")
	ErrNotFound         = httperr.New(httperr.CodeNotFound, "Agendamento não encontrado.")
	ErrSlotConflict     = httperr.New(httperr.CodeSlotConflict, "Já existe um agendamento para este prestador neste horário.")
	ErrForbidden        = httperr.New(httperr.CodeForbidden, "Operação não permitida para este usuário.")
	ErrPersistence      = httperr.New(httperr.CodePersistence, "Erro ao acessar o banco de dados.")
)

// ===============================
// Sinais da camada de persistência
// ===============================

var (
	// ErrRecordNotFound indica registro inexistente no repositório.
	ErrRecordNotFound = errors.New("record not found")

	// ErrSlotTaken indica violação da restrição única (prestador, data/hora).
	ErrSlotTaken = errors.New("slot already taken")
)

// Persistence embrulha uma falha inesperada do repositório.
func Persistence(err error) error {
	return ErrPersistence.Wrap(err)
}
