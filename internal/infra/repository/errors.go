package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reconhece violação de restrição única, com ou sem TranslateError.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translate converte erros do gorm/postgres nos sinais do domínio.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrRecordNotFound
	case IsUniqueViolation(err):
		return domain.ErrSlotTaken
	}
	return err
}
