package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// AppointmentMemoryRepository guarda tudo em memória, com a mesma regra de
// unicidade (prestador, data/hora) do índice do banco.
type AppointmentMemoryRepository struct {
	mu           sync.Mutex
	locks        map[uint]*sync.Mutex
	people       map[uint]models.Person
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	nextID       uint
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		locks:        map[uint]*sync.Mutex{},
		people:       map[uint]models.Person{},
		services:     map[uint]models.Service{},
		appointments: map[uint]models.Appointment{},
	}
}

// AddPerson e AddService alimentam o repositório (testes e execução local).
func (r *AppointmentMemoryRepository) AddPerson(p models.Person) models.Person {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	} else if p.ID > r.nextID {
		r.nextID = p.ID
	}
	r.people[p.ID] = p
	return p
}

func (r *AppointmentMemoryRepository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		r.nextID++
		s.ID = r.nextID
	} else if s.ID > r.nextID {
		r.nextID = s.ID
	}
	r.services[s.ID] = s
	return s
}

func (r *AppointmentMemoryRepository) FindPerson(_ context.Context, id uint) (*models.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.people[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &p, nil
}

func (r *AppointmentMemoryRepository) FindService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &s, nil
}

func (r *AppointmentMemoryRepository) FindProviderForService(_ context.Context, serviceID uint) (*models.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	p, ok := r.people[s.ProviderID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &p, nil
}

func (r *AppointmentMemoryRepository) FindConflictingAppointment(
	_ context.Context,
	slot domain.Slot,
	mode domain.ConflictMode,
) (*models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.sortedLocked() {
		if mode.Conflicts(slot, &ap) {
			return &ap, nil
		}
	}
	return nil, nil
}

func (r *AppointmentMemoryRepository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	r.hydrateLocked(&ap)
	return &ap, nil
}

func (r *AppointmentMemoryRepository) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.sortedLocked() {
		if matches(ap, f) {
			r.hydrateLocked(&ap)
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *AppointmentMemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slotTakenLocked(ap) {
		return domain.ErrSlotTaken
	}

	r.nextID++
	ap.ID = r.nextID
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now

	stored := *ap
	stored.Client, stored.Service = nil, nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	if r.slotTakenLocked(ap) {
		return domain.ErrSlotTaken
	}

	ap.UpdatedAt = time.Now()

	stored := *ap
	stored.Client, stored.Service = nil, nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *AppointmentMemoryRepository) WithProviderLock(
	ctx context.Context,
	providerID uint,
	fn func(tx domain.Repository) error,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	l := r.providerLock(providerID)
	l.Lock()
	defer l.Unlock()

	return fn(r)
}

// Count devolve o número de agendamentos armazenados.
func (r *AppointmentMemoryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

func (r *AppointmentMemoryRepository) providerLock(providerID uint) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[providerID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[providerID] = l
	}
	return l
}

// hydrateLocked imita o Preload de cliente e serviço.
func (r *AppointmentMemoryRepository) hydrateLocked(ap *models.Appointment) {
	if p, ok := r.people[ap.ClientID]; ok {
		ap.Client = &p
	}
	if s, ok := r.services[ap.ServiceID]; ok {
		ap.Service = &s
	}
}

func (r *AppointmentMemoryRepository) slotTakenLocked(ap *models.Appointment) bool {
	for id, other := range r.appointments {
		if id != ap.ID && other.ProviderID == ap.ProviderID && other.DateTime.Equal(ap.DateTime) {
			return true
		}
	}
	return false
}

func (r *AppointmentMemoryRepository) sortedLocked() []models.Appointment {
	out := make([]models.Appointment, 0, len(r.appointments))
	for _, ap := range r.appointments {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}

func matches(ap models.Appointment, f domain.ListFilter) bool {
	switch {
	case f.ClientID != nil && ap.ClientID != *f.ClientID:
		return false
	case f.ServiceID != nil && ap.ServiceID != *f.ServiceID:
		return false
	case f.ProviderID != nil && ap.ProviderID != *f.ProviderID:
		return false
	case f.From != nil && ap.DateTime.Before(*f.From):
		return false
	case f.To != nil && !ap.DateTime.Before(*f.To):
		return false
	case f.Available != nil && ap.Available != *f.Available:
		return false
	}
	return true
}

var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
