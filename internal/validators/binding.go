package validators

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// BirthDateLayouts são os formatos aceitos para dataNascimento.
var BirthDateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseBirthDate aceita "DD/MM/YYYY" ou "YYYY-MM-DD" (também com horário ISO).
func ParseBirthDate(raw string) (time.Time, error) {
	for _, layout := range BirthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errors.New("invalid birth date")
}

// Register adiciona as validações customizadas ao engine do gin.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}

	return v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		_, err := ParseBirthDate(fl.Field().String())
		return err == nil
	})
}
