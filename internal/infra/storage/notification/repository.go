package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableNotifications = "notifications"

var notificationColumns = []string{"id", "user_id", "title", "message", "read", "created_at"}

// Repository репозиторий уведомлений в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableNotifications).
		Columns("id", "user_id", "title", "message", "read").
		Values(n.ID, n.UserID, n.Title, n.Message, n.Read).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	n.CreatedAt = createdAt.Time

	return n, nil
}

// ListByUser уведомления пользователя, сначала новые
func (r *Repository) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]*domain.Notification, error) {
	builder := psqlbuilder.Select(notificationColumns...).
		From(tableNotifications).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if onlyUnread {
		builder = builder.Where(squirrel.Eq{"read": false})
	}

	return r.list(ctx, "ListByUser", builder)
}

// ListAll все уведомления (для администратора), сначала новые
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Notification, error) {
	builder := psqlbuilder.Select(notificationColumns...).
		From(tableNotifications).
		OrderBy("created_at DESC")

	return r.list(ctx, "ListAll", builder)
}

// CountUnread число непрочитанных уведомлений пользователя
func (r *Repository) CountUnread(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, "CountUnread", squirrel.Eq{"user_id": userID, "read": false})
}

// CountAllUnread число непрочитанных уведомлений всех пользователей
func (r *Repository) CountAllUnread(ctx context.Context) (int, error) {
	return r.count(ctx, "CountAllUnread", squirrel.Eq{"read": false})
}

// MarkRead помечает уведомление прочитанным.
// Возвращает true, только если флаг действительно изменился.
func (r *Repository) MarkRead(ctx context.Context, id string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableNotifications).
		Set("read", true).
		Where(squirrel.Eq{"id": id, "read": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return true, nil
	}

	// 0 строк: либо уже прочитано, либо такого уведомления нет
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// GetByID получает уведомление по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From(tableNotifications).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	n, err := scanNotification(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan notification: %v", ErrScanRow, err)
	}

	return n, nil
}

func (r *Repository) list(ctx context.Context, method string, builder squirrel.SelectBuilder) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return notifications, nil
}

func (r *Repository) count(ctx context.Context, method string, where squirrel.Eq) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableNotifications).
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, method, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, method, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var createdAt sql.NullTime

	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Read, &createdAt); err != nil {
		return nil, err
	}
	n.CreatedAt = createdAt.Time

	return &n, nil
}
