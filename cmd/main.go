package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/admin_appointments"
	adminNotificationsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/admin_notifications"
	adminOverviewHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/admin_overview"
	adminUpdateRoleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/admin_update_role"
	adminUsersHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/admin_users"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getNotificationsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_notifications"
	getUnreadCountHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_unread_count"
	getUserRoleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_user_role"
	getWorkingHoursHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_appointments"
	listProfessionalsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_professionals"
	listServicesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_services"
	markNotificationReadHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/mark_notification_read"
	updateAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment"
	updateWorkingHoursHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/lock"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	notificationsService "github.com/m04kA/SMC-SchedulingService/internal/service/notifications"
	scheduleService "github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	usersService "github.com/m04kA/SMC-SchedulingService/internal/service/users"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// publisher публикация событий с закрытием при остановке
type publisher interface {
	Publish(ctx context.Context, evt events.Event) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml (storage=%s, lock=%s, events=%t)",
		cfg.Storage.Driver, cfg.Lock.Driver, cfg.Events.Enabled)

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Блокировка слотов
	var (
		slotLocker  lock.Locker
		redisClient *redis.Client
	)
	switch cfg.Lock.Driver {
	case config.LockDriverRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPassword,
			DB:       cfg.Lock.RedisDB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Lock.RedisAddr, err)
		}
		slotLocker = lock.NewRedisLocker(
			redisClient,
			time.Duration(cfg.Lock.TTLMs)*time.Millisecond,
			time.Duration(cfg.Lock.RetryIntervalMs)*time.Millisecond,
			cfg.Metrics.ServiceName+":slot",
		)
		log.Info("Redis slot lock enabled (addr=%s)", cfg.Lock.RedisAddr)
	default:
		slotLocker = lock.NewKeyedMutex()
	}

	// События
	var eventPublisher publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		eventPublisher = events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, log)
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(
		store.notifications,
		metricsCollector,
		time.Duration(cfg.Scheduling.NotificationPollIntervalSec)*time.Second,
		log,
	)
	appointmentSvc := appointmentsService.NewService(
		store.appointments,
		store.txManager,
		notificationSvc,
		eventPublisher,
		metricsCollector,
		loc,
		cfg.Scheduling.PersistDerivedStatus,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		store.schedule,
		store.catalog,
		store.users,
		store.txManager,
		log,
	)
	userSvc := usersService.NewService(
		store.users,
		store.appointments,
		store.notifications,
		loc,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		store.users,
		store.catalog,
		store.schedule,
		store.txManager,
		slotLocker,
		notificationSvc,
		eventPublisher,
		metricsCollector,
		loc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.appointments,
		store.schedule,
		store.users,
		loc,
		log,
	)

	// Фоновое сохранение завершенных записей
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	if cfg.Scheduling.SweepIntervalSec > 0 {
		go appointmentSvc.RunSweeper(sweepCtx, time.Duration(cfg.Scheduling.SweepIntervalSec)*time.Second)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	getUnreadCount := getUnreadCountHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)
	getUserRole := getUserRoleHandler.NewHandler(userSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(userSvc, log)
	listServices := listServicesHandler.NewHandler(scheduleSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	adminOverview := adminOverviewHandler.NewHandler(userSvc, log)
	adminUsers := adminUsersHandler.NewHandler(userSvc, log)
	adminUpdateRole := adminUpdateRoleHandler.NewHandler(userSvc, log)
	adminAppointments := adminAppointmentsHandler.NewHandler(appointmentSvc, log)
	adminNotifications := adminNotificationsHandler.NewHandler(notificationSvc, log)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.TrustUserHeader, store.users, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT или X-User-ID за gateway)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", getUnreadCount.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	// --- Пользователи и расписание ---
	protected.HandleFunc("/users/{userId}/role", getUserRole.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	// --- Администрирование ---
	protected.HandleFunc("/admin/overview", adminOverview.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users", adminUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users/{userId}/role", adminUpdateRole.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/appointments", adminAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/notifications", adminNotifications.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopSweeper()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := eventPublisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
