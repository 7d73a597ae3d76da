package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

func TestRolePolicyCanBook(t *testing.T) {
	svc := &models.Service{ID: 1, ProviderID: 10}
	p := RolePolicy{}

	assert.NoError(t, p.CanBook(Actor{ID: 1, Role: models.RoleAdmin}, 50, svc))
	assert.NoError(t, p.CanBook(Actor{ID: 10, Role: models.RoleProvider}, 50, svc))
	assert.ErrorIs(t, p.CanBook(Actor{ID: 11, Role: models.RoleProvider}, 50, svc), ErrForbidden)
	assert.NoError(t, p.CanBook(Actor{ID: 50, Role: models.RoleClient}, 50, svc))
	assert.ErrorIs(t, p.CanBook(Actor{ID: 51, Role: models.RoleClient}, 50, svc), ErrForbidden)
	assert.ErrorIs(t, p.CanBook(Actor{ID: 51, Role: models.RoleUser}, 50, svc), ErrForbidden)
}

func TestRolePolicyCanAccess(t *testing.T) {
	ap := &models.Appointment{ID: 1, ClientID: 50, ProviderID: 10}
	p := RolePolicy{}

	assert.NoError(t, p.CanAccess(Actor{ID: 99, Role: models.RoleAdmin}, ap))
	assert.NoError(t, p.CanAccess(Actor{ID: 10, Role: models.RoleProvider}, ap))
	assert.NoError(t, p.CanAccess(Actor{ID: 50, Role: models.RoleClient}, ap))
	assert.ErrorIs(t, p.CanAccess(Actor{ID: 11, Role: models.RoleProvider}, ap), ErrForbidden)
	assert.ErrorIs(t, p.CanAccess(Actor{ID: 51, Role: models.RoleUser}, ap), ErrForbidden)
}

func TestRolePolicyScope(t *testing.T) {
	p := RolePolicy{}

	f := p.Scope(Actor{ID: 50, Role: models.RoleClient}, ListFilter{})
	if assert.NotNil(t, f.ClientID) {
		assert.Equal(t, uint(50), *f.ClientID)
	}

	f = p.Scope(Actor{ID: 10, Role: models.RoleProvider}, ListFilter{})
	if assert.NotNil(t, f.ProviderID) {
		assert.Equal(t, uint(10), *f.ProviderID)
	}

	f = p.Scope(Actor{ID: 1, Role: models.RoleAdmin}, ListFilter{})
	assert.Nil(t, f.ClientID)
	assert.Nil(t, f.ProviderID)
}

func TestDeletePolicy(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	past := &models.Appointment{DateTime: now.Add(-time.Hour)}
	future := &models.Appointment{DateTime: now.Add(time.Hour)}

	assert.ErrorIs(t, DeletePolicy{}.Check(past, now), ErrPastAppointment)
	assert.NoError(t, DeletePolicy{}.Check(future, now))
	assert.NoError(t, DeletePolicy{AllowPast: true}.Check(past, now))
}

func TestNewAppointmentDerivesProviderAndEnd(t *testing.T) {
	svc := &models.Service{ID: 4, ProviderID: 10, DurationMin: 45}
	ap := New(50, svc, base)

	assert.Equal(t, uint(10), ap.ProviderID)
	assert.Equal(t, uint(4), ap.ServiceID)
	assert.False(t, ap.Available)
	assert.True(t, ap.EndsAt.Equal(base.Add(45*time.Minute)))
}
