package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
)

const (
	confirmationTitle   = "Agendamento confirmado"
	confirmationMessage = "Seu agendamento para %s às %s foi confirmado."
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	locker          SlotLocker
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	userRepo UserRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	locker SlotLocker,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		locker:          locker,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		location:        loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости выполняется в момент вставки под блокировкой слота
// и в сериализуемой транзакции, а не по ранее полученному списку слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: session=%s, professional=%s, service=%s, date=%s, time=%s",
		req.Session.UserID, req.ProfessionalID, req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных
	parsed, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись в прошлое запрещена
	now := uc.timeProvider.Now()
	if err := validateNotInPast(parsed.date, parsed.time, now, uc.location); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 3. Клиент, если админ записывает другого пользователя
	if parsed.userID != req.Session.UserID {
		if _, err := uc.userRepo.GetByID(ctx, parsed.userID); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateAppointment: user id=%s not found", parsed.userID)
				return nil, ErrUserNotFound
			}
			return nil, uc.failure(ctx, "failed to get user", err)
		}
	}

	// 4. Профессионал
	professional, err := uc.userRepo.GetByID(ctx, parsed.professionalID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%s not found", parsed.professionalID)
			return nil, ErrProfessionalNotFound
		}
		return nil, uc.failure(ctx, "failed to get professional", err)
	}
	if !professional.IsProfessional() {
		uc.logger.Warn("CreateAppointment: user id=%s is not a professional", parsed.professionalID)
		return nil, ErrProfessionalNotFound
	}

	// 5. Услуга
	service, err := uc.serviceRepo.GetByID(ctx, parsed.serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", parsed.serviceID)
			return nil, ErrServiceNotFound
		}
		return nil, uc.failure(ctx, "failed to get service", err)
	}
	if err := validateServiceOwner(service, parsed.professionalID); err != nil {
		uc.logger.Warn("CreateAppointment: service id=%s belongs to professional=%v", parsed.serviceID, *service.ProfessionalID)
		return nil, err
	}

	// 6. Время должно быть в сетке профессионала на этот день
	weekday, _ := parsed.date.Weekday()
	workingHours, err := uc.scheduleRepo.GetForWeekday(ctx, parsed.professionalID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Warn("CreateAppointment: professional=%s does not work on %s", parsed.professionalID, weekday)
			return nil, fmt.Errorf("%w: no working hours on %s", ErrInvalidTimeSlot, weekday)
		}
		return nil, uc.failure(ctx, "failed to get working hours", err)
	}
	if err := validateOnGrid(workingHours, parsed.time); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	appt := &domain.Appointment{
		ID:               uuid.NewString(),
		UserID:           parsed.userID,
		ProfessionalID:   parsed.professionalID,
		ServiceID:        parsed.serviceID,
		CompanyID:        companyOf(professional, service),
		Date:             parsed.date,
		Time:             parsed.time,
		Status:           domain.StatusPending,
		HiddenFromClient: false,
	}

	// 7. Атомарная проверка и вставка
	created, err := uc.reserve(ctx, appt)
	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentsCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s for user=%s at %s",
		created.ID, created.UserID, created.SlotKey())

	// 8. Побочные эффекты не влияют на результат бронирования
	uc.afterCreate(ctx, created)

	return &Response{Appointment: created}, nil
}

// reserve держит блокировку слота на время транзакции
func (uc *UseCase) reserve(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	key := appt.SlotKey().String()

	unlock, err := uc.locker.Lock(ctx, key)
	if err != nil {
		if ctx.Err() != nil {
			uc.logger.Warn("CreateAppointment: timed out waiting for slot lock %s: %v", key, err)
			return nil, fmt.Errorf("%w: waiting for slot lock: %v", ErrOutcomeUnknown, err)
		}
		uc.logger.Error("CreateAppointment: failed to lock slot %s: %v", key, err)
		return nil, fmt.Errorf("%w: lock slot: %v", ErrInternal, err)
	}
	defer unlock()

	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		created, err = uc.appointmentRepo.CreateIfSlotFree(txCtx, appt)
		return err
	})

	switch {
	case err == nil:
		return created, nil
	case appointmentRepo.IsSlotConflict(err):
		uc.metrics.IncBookingConflicts()
		uc.logger.Warn("CreateAppointment: slot %s already taken", key)
		return nil, ErrSlotTaken
	default:
		return nil, uc.failure(ctx, "failed to create appointment", err)
	}
}

func (uc *UseCase) afterCreate(ctx context.Context, appt *domain.Appointment) {
	message := fmt.Sprintf(confirmationMessage, appt.Date, appt.Time)
	if err := uc.notifier.Notify(ctx, appt.UserID, confirmationTitle, message); err != nil {
		uc.logger.Error("CreateAppointment: failed to notify user=%s about appointment id=%s: %v", appt.UserID, appt.ID, err)
	}

	evt := events.Event{
		ID:          uuid.NewString(),
		Type:        events.TypeAppointmentCreated,
		AggregateID: appt.ID,
		OccurredAt:  uc.timeProvider.Now(),
		Payload: events.AppointmentPayload{
			AppointmentID:  appt.ID,
			UserID:         appt.UserID,
			ProfessionalID: appt.ProfessionalID,
			ServiceID:      appt.ServiceID,
			Date:           appt.Date.String(),
			Time:           appt.Time.String(),
			Status:         string(appt.Status),
		},
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish %s for appointment id=%s: %v", evt.Type, appt.ID, err)
	}
}

// failure различает таймаут (результат неизвестен) и отказ хранилища
func (uc *UseCase) failure(ctx context.Context, msg string, err error) error {
	if ctx.Err() != nil {
		uc.logger.Warn("CreateAppointment: %s: %v", msg, ctx.Err())
		return fmt.Errorf("%w: %s: %v", ErrOutcomeUnknown, msg, err)
	}
	uc.logger.Error("CreateAppointment: %s: %v", msg, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}

// companyOf компания записи: компания профессионала, иначе компания услуги
func companyOf(professional *domain.User, service *domain.Service) *string {
	if professional.CompanyID != nil {
		return professional.CompanyID
	}
	return service.CompanyID
}
