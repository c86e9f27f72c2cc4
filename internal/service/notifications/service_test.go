package notifications

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct {
	mu   sync.Mutex
	read int
}

func (m *countingMetrics) IncNotificationsRead() {
	m.mu.Lock()
	m.read++
	m.mu.Unlock()
}

var (
	alice = domain.Session{UserID: "C1", Role: domain.RoleClient}
	bob   = domain.Session{UserID: "C2", Role: domain.RoleClient}
	admin = domain.Session{UserID: "A", Role: domain.RoleAdmin}
)

func newService() (*Service, *notification.MemoryRepository, *countingMetrics) {
	repo := notification.NewMemoryRepository()
	m := &countingMetrics{}
	return NewService(repo, m, 30*time.Second, nopLogger{}), repo, m
}

func TestNotify_Validation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		title   string
		message string
		wantErr bool
	}{
		{"ok", "C1", "Agendamento confirmado", "ok", false},
		{"empty message", "C1", "Aviso", "", false},
		{"no user", "", "Aviso", "x", true},
		{"blank title", "C1", "   ", "x", true},
		{"title too long", "C1", strings.Repeat("a", domain.MaxNotificationTitleLength+1), "x", true},
		{"message too long", "C1", "Aviso", strings.Repeat("a", domain.MaxNotificationMessageLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Notify(ctx, tt.userID, tt.title, tt.message)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	svc, _, metrics := newService()
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "C1", "Um", "1"))
	require.NoError(t, svc.Notify(ctx, "C1", "Dois", "2"))
	require.NoError(t, svc.Notify(ctx, "C2", "Outro", "3"))

	count, err := svc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, count.Count)
	assert.Equal(t, 30, count.PollIntervalSeconds)

	list, err := svc.List(ctx, alice, true)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, "Dois", list.Notifications[0].Title)

	id := list.Notifications[0].ID
	for i := 0; i < 2; i++ {
		n, err := svc.MarkRead(ctx, id, alice)
		require.NoError(t, err)
		assert.True(t, n.Read)
	}
	assert.Equal(t, 1, metrics.read)

	count, err = svc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Count)

	all, err := svc.List(ctx, alice, false)
	require.NoError(t, err)
	assert.Len(t, all.Notifications, 2)
}

func TestMarkRead_Access(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "C1", "Um", "1"))
	list, err := svc.List(ctx, alice, false)
	require.NoError(t, err)
	id := list.Notifications[0].ID

	_, err = svc.MarkRead(ctx, id, bob)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.MarkRead(ctx, "ghost", alice)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.MarkRead(ctx, id, domain.Session{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	n, err := svc.MarkRead(ctx, id, admin)
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestMarkRead_ConcurrentCallsCountOnce(t *testing.T) {
	svc, _, metrics := newService()
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "C1", "Um", "1"))
	list, err := svc.List(ctx, alice, false)
	require.NoError(t, err)
	id := list.Notifications[0].ID

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MarkRead(ctx, id, alice)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, metrics.read)
}

func TestListAll_AdminOnly(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, "C1", "Um", "1"))
	require.NoError(t, svc.Notify(ctx, "C2", "Dois", "2"))

	_, err := svc.ListAll(ctx, alice)
	assert.ErrorIs(t, err, ErrAccessDenied)

	all, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all.Notifications, 2)
}
