package notification

import (
	"context"
	"testing"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *MemoryRepository, items ...*domain.Notification) {
	t.Helper()
	for _, n := range items {
		_, err := repo.Create(context.Background(), n)
		require.NoError(t, err)
	}
}

func TestMemoryRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seed(t, repo,
		&domain.Notification{ID: "n1", UserID: "u1", Title: "a"},
		&domain.Notification{ID: "n2", UserID: "u1", Title: "b", Read: true},
		&domain.Notification{ID: "n3", UserID: "u1", Title: "c"},
		&domain.Notification{ID: "n4", UserID: "u2", Title: "d"},
	)

	all, err := repo.ListByUser(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "n3", all[0].ID, "newest first")

	unread, err := repo.ListByUser(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	count, err := repo.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	total, err := repo.CountAllUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	everything, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, everything, 4)
}

func TestMemoryRepository_MarkReadIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seed(t, repo, &domain.Notification{ID: "n1", UserID: "u1"})

	changed, err := repo.MarkRead(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkRead(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, changed)

	count, err := repo.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.MarkRead(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
