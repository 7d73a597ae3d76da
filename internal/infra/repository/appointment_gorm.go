package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// advisoryLockNamespace separa os locks de agenda de outros usos de pg_advisory_xact_lock.
const advisoryLockNamespace int32 = 4201

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Pessoas / Serviços
// --------------------------------------------------

func (r *AppointmentGormRepository) FindPerson(
	ctx context.Context,
	id uint,
) (*models.Person, error) {

	var p models.Person
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) FindService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) FindProviderForService(
	ctx context.Context,
	serviceID uint,
) (*models.Person, error) {

	var p models.Person
	if err := r.db.WithContext(ctx).
		Joins("JOIN servicos ON servicos.prestador_id = pessoas.id").
		Where("servicos.id = ?", serviceID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// --------------------------------------------------
// Conflito
// --------------------------------------------------

func (r *AppointmentGormRepository) FindConflictingAppointment(
	ctx context.Context,
	slot domain.Slot,
	mode domain.ConflictMode,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("prestador_id = ?", slot.ProviderID)

	if mode == domain.ConflictOverlap {
		q = q.Where("data_hora < ? AND data_hora_fim > ?", slot.End, slot.Start)
	} else {
		q = q.Where("data_hora = ?", slot.Start)
	}

	if slot.ExcludeID != nil {
		q = q.Where("id <> ?", *slot.ExcludeID)
	}

	var ap models.Appointment
	err := q.Order("data_hora ASC").First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Agendamentos
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service")

	if f.ClientID != nil {
		q = q.Where("cliente_id = ?", *f.ClientID)
	}
	if f.ServiceID != nil {
		q = q.Where("servico_id = ?", *f.ServiceID)
	}
	if f.ProviderID != nil {
		q = q.Where("prestador_id = ?", *f.ProviderID)
	}
	if f.From != nil {
		q = q.Where("data_hora >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("data_hora < ?", *f.To)
	}
	if f.Available != nil {
		q = q.Where("disponivel = ?", *f.Available)
	}

	var apps []models.Appointment
	if err := q.Order("data_hora ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Omit("Client", "Service").Create(ap).Error)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Omit("Client", "Service").Save(ap).Error)
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Transação com lock por prestador
// --------------------------------------------------

func (r *AppointmentGormRepository) WithProviderLock(
	ctx context.Context,
	providerID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// liberado automaticamente no commit/rollback
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?, ?)",
			advisoryLockNamespace,
			int32(providerID),
		).Error; err != nil {
			return err
		}

		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
