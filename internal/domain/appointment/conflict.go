package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

type ConflictMode string

const (
	// ConflictExact: dois agendamentos colidem apenas quando começam no mesmo instante.
	ConflictExact ConflictMode = "exact"
	// ConflictOverlap: colidem quando os intervalos [início, fim) se sobrepõem.
	ConflictOverlap ConflictMode = "overlap"
)

func ParseConflictMode(raw string) (ConflictMode, error) {
	switch ConflictMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ConflictExact:
		return ConflictExact, nil
	case ConflictOverlap:
		return ConflictOverlap, nil
	}
	return "", fmt.Errorf("invalid conflict mode %q", raw)
}

// Slot é o horário pretendido de um prestador.
type Slot struct {
	ProviderID uint
	Start      time.Time
	End        time.Time
	ExcludeID  *uint
}

func NewSlot(providerID uint, start time.Time, duration time.Duration) Slot {
	return Slot{
		ProviderID: providerID,
		Start:      start,
		End:        start.Add(duration),
	}
}

func (s Slot) Excluding(id uint) Slot {
	s.ExcludeID = &id
	return s
}

// Conflicts é o predicado puro usado por todos os repositórios.
func (m ConflictMode) Conflicts(slot Slot, ap *models.Appointment) bool {
	if ap.ProviderID != slot.ProviderID {
		return false
	}
	if slot.ExcludeID != nil && *slot.ExcludeID == ap.ID {
		return false
	}

	if m == ConflictOverlap {
		return slot.Start.Before(ap.EndsAt) && ap.DateTime.Before(slot.End)
	}
	return ap.DateTime.Equal(slot.Start)
}

// ===============================
// Conflict Checker
// ===============================

type ConflictChecker struct {
	Mode ConflictMode
}

func NewConflictChecker(mode ConflictMode) ConflictChecker {
	if mode == "" {
		mode = ConflictExact
	}
	return ConflictChecker{Mode: mode}
}

// Find devolve o agendamento conflitante, ou nil quando o horário está livre.
func (c ConflictChecker) Find(ctx context.Context, repo Repository, slot Slot) (*models.Appointment, error) {
	ap, err := repo.FindConflictingAppointment(ctx, slot, c.Mode)
	if err != nil {
		return nil, Persistence(err)
	}
	return ap, nil
}

func (c ConflictChecker) Assert(ctx context.Context, repo Repository, slot Slot) error {
	ap, err := c.Find(ctx, repo, slot)
	if err != nil {
		return err
	}
	if ap != nil {
		return ErrSlotConflict.Wrap(fmt.Errorf("conflicting appointment %d", ap.ID))
	}
	return nil
}
