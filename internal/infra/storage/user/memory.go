package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MemoryRepository хранилище пользователей в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.User
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*domain.User)}
}

// Create сохраняет пользователя
func (r *MemoryRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[u.ID]; ok {
		return nil, ErrUserExists
	}
	u.CreatedAt = time.Now()
	r.items[u.ID] = cloneUser(u)
	return u, nil
}

// GetByID получает пользователя по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

// List получает пользователей по фильтру, упорядоченных по имени
func (r *MemoryRepository) List(ctx context.Context, filter domain.UsersFilter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0)
	for _, u := range r.items {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.CompanyID != nil && (u.CompanyID == nil || *u.CompanyID != *filter.CompanyID) {
			continue
		}
		users = append(users, cloneUser(u))
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// UpdateRole меняет роль и компанию пользователя
func (r *MemoryRepository) UpdateRole(ctx context.Context, id string, role domain.Role, companyID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	u.CompanyID = nil
	if companyID != nil {
		c := *companyID
		u.CompanyID = &c
	}
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.CompanyID != nil {
		c := *u.CompanyID
		cp.CompanyID = &c
	}
	return &cp
}
