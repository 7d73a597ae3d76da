package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
)

// DateTimeLayout corresponde a "DD/MM/YYYY:HH:mm".
const DateTimeLayout = "02/01/2006:15:04"

// ParseDateTime interpreta raw no fuso civil e devolve o instante em UTC.
// Qualquer texto fora do layout é rejeitado; não há fallback para outros formatos.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != len(DateTimeLayout) {
		return time.Time{}, ErrInvalidFormat
	}

	t, err := time.ParseInLocation(DateTimeLayout, raw, loc)
	if err != nil {
		return time.Time{}, ErrInvalidFormat.Wrap(err)
	}

	return t.UTC(), nil
}

// EnsureFuture rejeita instantes iguais ou anteriores a now.
func EnsureFuture(instant, now time.Time) error {
	if !instant.After(now) {
		return ErrPastDateTime
	}
	return nil
}

// ValidateDateTime combina parse e verificação de passado usando o relógio informado.
func ValidateDateTime(raw string, clock timezone.Clock) (time.Time, error) {
	t, err := ParseDateTime(raw, clock.Location())
	if err != nil {
		return time.Time{}, err
	}

	if err := EnsureFuture(t, clock.Now()); err != nil {
		return time.Time{}, err
	}

	return t, nil
}

// FormatDateTime é o inverso de ParseDateTime, usado em mensagens.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateTimeLayout)
}
