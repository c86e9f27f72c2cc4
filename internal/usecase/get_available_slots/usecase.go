package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case для получения слотов профессионала на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	userRepo        UserRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// loc - часовой пояс, в котором хранятся дата и время записей.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	userRepo UserRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		userRepo:        userRepo,
		location:        loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%s, date=%s", req.ProfessionalID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что это профессионал
	professional, err := uc.userRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		return nil, uc.internalError(ctx, "failed to get professional", err)
	}
	if !professional.IsProfessional() {
		uc.logger.Warn("GetAvailableSlots: user id=%s is %s, not a professional", req.ProfessionalID, professional.Role)
		return nil, ErrProfessionalNotFound
	}

	empty := &Response{ProfessionalID: req.ProfessionalID, Date: date, Slots: []domain.Slot{}}

	// 3. Рабочее время на день недели. Нет расписания - нет слотов, это не ошибка.
	weekday, _ := date.Weekday()
	workingHours, err := uc.scheduleRepo.GetForWeekday(ctx, req.ProfessionalID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: no working hours for professional=%s on %s", req.ProfessionalID, weekday)
			return empty, nil
		}
		return nil, uc.internalError(ctx, "failed to get working hours", err)
	}

	// 4. Генерируем времена слотов с учетом текущего момента
	now := uc.timeProvider.Now()
	timeSlots, err := generateTimeSlots(workingHours, date, now, uc.location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}
	if len(timeSlots) == 0 {
		return empty, nil
	}

	// 5. Активные записи профессионала на эту дату
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		ProfessionalID: ptr.Ptr(req.ProfessionalID),
		Date:           ptr.Ptr(date),
		OnlyActive:     true,
	})
	if err != nil {
		return nil, uc.internalError(ctx, "failed to get appointments", err)
	}

	// 6. Занятость
	slots := markOccupancy(timeSlots, appointments)

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d booked) for professional=%s, date=%s",
		len(slots), len(appointments), req.ProfessionalID, date)

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Date:           date,
		Slots:          slots,
	}, nil
}

func (uc *UseCase) internalError(ctx context.Context, msg string, err error) error {
	if ctx.Err() != nil {
		uc.logger.Warn("GetAvailableSlots: %s: %v", msg, ctx.Err())
		return fmt.Errorf("%w: %s: %v", ErrTimeout, msg, ctx.Err())
	}
	uc.logger.Error("GetAvailableSlots: %s: %v", msg, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
