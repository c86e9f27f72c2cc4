package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnauthenticated возвращается, когда в запросе нет пользователя
	ErrUnauthenticated = fmt.Errorf("%w: create_appointment: no authenticated user", domain.ErrAuth)

	// ErrForbidden возвращается при попытке записать другого пользователя без прав администратора
	ErrForbidden = fmt.Errorf("%w: create_appointment: cannot book on behalf of another user", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_appointment: invalid input data", domain.ErrValidation)

	// ErrDateInPast возвращается при попытке записи на прошедшее время
	ErrDateInPast = fmt.Errorf("%w: create_appointment: date and time are in the past", domain.ErrValidation)

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку профессионала
	ErrInvalidTimeSlot = fmt.Errorf("%w: create_appointment: time is not a slot of the professional", domain.ErrValidation)

	// ErrServiceNotOffered возвращается, когда услуга принадлежит другому профессионалу
	ErrServiceNotOffered = fmt.Errorf("%w: create_appointment: service is not offered by this professional", domain.ErrValidation)

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = fmt.Errorf("%w: create_appointment: professional not found", domain.ErrNotFound)

	// ErrUserNotFound возвращается, когда не найден клиент, за которого записывает админ
	ErrUserNotFound = fmt.Errorf("%w: create_appointment: user not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_appointment: service not found", domain.ErrNotFound)

	// ErrSlotTaken возвращается, когда слот занят на момент вставки
	ErrSlotTaken = fmt.Errorf("%w: create_appointment: slot is already taken", domain.ErrConflict)

	// ErrOutcomeUnknown возвращается при истечении таймаута: запись могла как создаться, так и нет
	ErrOutcomeUnknown = fmt.Errorf("%w: create_appointment: timed out", domain.ErrOutcomeUnknown)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_appointment: internal error", domain.ErrPersistence)
)
