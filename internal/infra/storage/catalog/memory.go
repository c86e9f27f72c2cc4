package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MemoryRepository каталог услуг в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Service
}

// NewMemoryRepository создает пустой каталог
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]domain.Service)}
}

// Create добавляет услугу в каталог
func (r *MemoryRepository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.ID] = *s
	return s, nil
}

// GetByID получает услугу по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &s, nil
}

// List получает услуги по фильтру, упорядоченные по названию
func (r *MemoryRepository) List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]*domain.Service, 0)
	for _, s := range r.items {
		if filter.CompanyID != nil && (s.CompanyID == nil || *s.CompanyID != *filter.CompanyID) {
			continue
		}
		if filter.ProfessionalID != nil && (s.ProfessionalID == nil || *s.ProfessionalID != *filter.ProfessionalID) {
			continue
		}
		s := s
		services = append(services, &s)
	}

	sort.Slice(services, func(i, j int) bool {
		if services[i].Name != services[j].Name {
			return services[i].Name < services[j].Name
		}
		return services[i].ID < services[j].ID
	})
	return services, nil
}
