package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MemoryRepository хранилище записей в памяти процесса.
// Используется драйвером storage.driver = "memory" и в тестах.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Appointment
	now   func() time.Time
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*domain.Appointment),
		now:   time.Now,
	}
}

// CreateIfSlotFree проверяет слот и вставляет запись под одной блокировкой
func (r *MemoryRepository) CreateIfSlotFree(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := appt.SlotKey()
	for _, existing := range r.items {
		if existing.IsActive() && existing.SlotKey() == key {
			return nil, ErrSlotTaken
		}
	}

	now := r.now()
	stored := *appt
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = &stored

	appt.CreatedAt = now
	appt.UpdatedAt = now
	return appt, nil
}

// GetByID получает запись по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.items[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

// List получает записи по фильтру, порядок как у Repository.List
func (r *MemoryRepository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, appt := range r.items {
		if !matches(appt, filter) {
			continue
		}
		cp := *appt
		result = append(result, &cp)
	}

	if filter.Date != nil {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Time.IsBefore(result[j].Time)
		})
	} else {
		sort.Slice(result, func(i, j int) bool {
			if c := result[i].Date.Compare(result[j].Date); c != 0 {
				return c > 0
			}
			return result[i].Time.IsAfter(result[j].Time)
		})
	}

	return result, nil
}

// UpdateStatusIfUnchanged compare-and-set по статусу
func (r *MemoryRepository) UpdateStatusIfUnchanged(ctx context.Context, id string, expected, next domain.AppointmentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.items[id]
	if !ok {
		return false, ErrAppointmentNotFound
	}
	if appt.Status != expected {
		return false, nil
	}

	appt.Status = next
	appt.UpdatedAt = r.now()
	return true, nil
}

// SetHiddenFromClient меняет флаг скрытия
func (r *MemoryRepository) SetHiddenFromClient(ctx context.Context, id string, hidden bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}

	appt.HiddenFromClient = hidden
	appt.UpdatedAt = r.now()
	return nil
}

func matches(appt *domain.Appointment, filter domain.AppointmentsFilter) bool {
	if filter.UserID != nil && appt.UserID != *filter.UserID {
		return false
	}
	if filter.ProfessionalID != nil && appt.ProfessionalID != *filter.ProfessionalID {
		return false
	}
	if filter.Date != nil && appt.Date != *filter.Date {
		return false
	}
	if filter.DateTo != nil && appt.Date.Compare(*filter.DateTo) > 0 {
		return false
	}
	if filter.Status != nil {
		return appt.Status == *filter.Status
	}
	if filter.OnlyActive && !appt.IsActive() {
		return false
	}
	return true
}
