package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableWorkingHours = "working_hours"

var workingHoursColumns = []string{"professional_id", "weekday", "open_time", "close_time", "slot_interval_minutes"}

// Repository рабочее время профессионалов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочего времени
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForWeekday получает сетку профессионала на день недели
func (r *Repository) GetForWeekday(ctx context.Context, professionalID string, weekday time.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From(tableWorkingHours).
		Where(squirrel.Eq{"professional_id": professionalID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanWorkingHours(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForWeekday - scan working hours: %v", ErrScanRow, err)
	}

	return wh, nil
}

// ListByProfessional недельное расписание профессионала, по дням недели
func (r *Repository) ListByProfessional(ctx context.Context, professionalID string) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From(tableWorkingHours).
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProfessional - scan row: %v", ErrScanRow, err)
		}
		result = append(result, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceForProfessional заменяет недельное расписание целиком.
// Должен вызываться внутри транзакции, иначе читатель может увидеть пустое расписание.
func (r *Repository) ReplaceForProfessional(ctx context.Context, professionalID string, hours []domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableWorkingHours).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(tableWorkingHours).Columns(workingHoursColumns...)
	for _, wh := range hours {
		insert = insert.Values(professionalID, int(wh.Weekday), wh.OpenTime, wh.CloseTime, wh.SlotIntervalMinutes)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkingHours(row rowScanner) (*domain.WorkingHours, error) {
	var wh domain.WorkingHours
	var weekday int

	if err := row.Scan(&wh.ProfessionalID, &weekday, &wh.OpenTime, &wh.CloseTime, &wh.SlotIntervalMinutes); err != nil {
		return nil, err
	}
	wh.Weekday = time.Weekday(weekday)

	return &wh, nil
}
