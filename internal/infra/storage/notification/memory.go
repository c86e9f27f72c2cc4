package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MemoryRepository хранилище уведомлений в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Notification
	seq   int64
	now   func() time.Time
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*domain.Notification),
		now:   time.Now,
	}
}

// Create сохраняет уведомление
func (r *MemoryRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// created_at монотонно растет, чтобы сортировка не зависела от разрешения часов
	r.seq++
	n.CreatedAt = r.now().Add(time.Duration(r.seq))

	stored := *n
	r.items[n.ID] = &stored
	return n, nil
}

// ListByUser уведомления пользователя, сначала новые
func (r *MemoryRepository) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]*domain.Notification, error) {
	return r.filter(func(n *domain.Notification) bool {
		return n.UserID == userID && (!onlyUnread || !n.Read)
	}), nil
}

// ListAll все уведомления, сначала новые
func (r *MemoryRepository) ListAll(ctx context.Context) ([]*domain.Notification, error) {
	return r.filter(func(*domain.Notification) bool { return true }), nil
}

// CountUnread число непрочитанных уведомлений пользователя
func (r *MemoryRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	return len(r.filter(func(n *domain.Notification) bool {
		return n.UserID == userID && !n.Read
	})), nil
}

// CountAllUnread число непрочитанных уведомлений всех пользователей
func (r *MemoryRepository) CountAllUnread(ctx context.Context) (int, error) {
	return len(r.filter(func(n *domain.Notification) bool { return !n.Read })), nil
}

// MarkRead помечает уведомление прочитанным, true - если флаг изменился
func (r *MemoryRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok {
		return false, ErrNotificationNotFound
	}
	if n.Read {
		return false, nil
	}
	n.Read = true
	return true, nil
}

// GetByID получает уведомление по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.items[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *MemoryRepository) filter(keep func(*domain.Notification) bool) []*domain.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Notification, 0)
	for _, n := range r.items {
		if keep(n) {
			cp := *n
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
