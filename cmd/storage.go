package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	notificationRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/notification"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

type appointmentStore interface {
	CreateIfSlotFree(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatusIfUnchanged(ctx context.Context, id string, expected, next domain.AppointmentStatus) (bool, error)
	SetHiddenFromClient(ctx context.Context, id string, hidden bool) error
}

type userStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter domain.UsersFilter) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role, companyID *string) error
}

type catalogStore interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
}

type scheduleStore interface {
	GetForWeekday(ctx context.Context, professionalID string, weekday time.Weekday) (*domain.WorkingHours, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]*domain.WorkingHours, error)
	ReplaceForProfessional(ctx context.Context, professionalID string, hours []domain.WorkingHours) error
}

type notificationStore interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]*domain.Notification, error)
	ListAll(ctx context.Context) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	CountAllUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) (bool, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного драйвера
type storage struct {
	appointments  appointmentStore
	users         userStore
	catalog       catalogStore
	schedule      scheduleStore
	notifications notificationStore
	txManager     txManager

	close func() error
}

func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage: data is lost on restart")
		return &storage{
			appointments:  appointmentRepo.NewMemoryRepository(),
			users:         userRepo.NewMemoryRepository(),
			catalog:       catalogRepo.NewMemoryRepository(),
			schedule:      scheduleRepo.NewMemoryRepository(),
			notifications: notificationRepo.NewMemoryRepository(),
			txManager:     txmanager.NewNoopManager(),
			close:         func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// При выключенных метриках m == nil, обертка просто проксирует запросы
	wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &storage{
		appointments:  appointmentRepo.NewRepository(wrapped),
		users:         userRepo.NewRepository(wrapped),
		catalog:       catalogRepo.NewRepository(wrapped),
		schedule:      scheduleRepo.NewRepository(wrapped),
		notifications: notificationRepo.NewRepository(wrapped),
		txManager:     txmanager.NewTransactionManager(wrapped),
		close:         db.Close,
	}, nil
}
