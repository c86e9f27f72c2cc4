package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MemoryRepository рабочее время в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]map[time.Weekday]domain.WorkingHours
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]map[time.Weekday]domain.WorkingHours)}
}

// GetForWeekday получает сетку профессионала на день недели
func (r *MemoryRepository) GetForWeekday(ctx context.Context, professionalID string, weekday time.Weekday) (*domain.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wh, ok := r.items[professionalID][weekday]
	if !ok {
		return nil, ErrWorkingHoursNotFound
	}
	return &wh, nil
}

// ListByProfessional недельное расписание профессионала, по дням недели
func (r *MemoryRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*domain.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.WorkingHours, 0, len(r.items[professionalID]))
	for _, wh := range r.items[professionalID] {
		wh := wh
		result = append(result, &wh)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Weekday < result[j].Weekday })
	return result, nil
}

// ReplaceForProfessional заменяет недельное расписание целиком
func (r *MemoryRepository) ReplaceForProfessional(ctx context.Context, professionalID string, hours []domain.WorkingHours) error {
	week := make(map[time.Weekday]domain.WorkingHours, len(hours))
	for _, wh := range hours {
		wh.ProfessionalID = professionalID
		week[wh.Weekday] = wh
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[professionalID] = week
	return nil
}
