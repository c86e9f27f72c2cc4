package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnauthenticated возвращается, когда в запросе нет пользователя
	ErrUnauthenticated = fmt.Errorf("%w: appointments: no authenticated user", domain.ErrAuth)

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на действие
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: appointments: invalid input data", domain.ErrValidation)

	// ErrInvalidTransition возвращается, когда переход статуса запрещен машиной состояний
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", domain.ErrValidation)

	// ErrConcurrentUpdate возвращается, когда статус изменили параллельно на несовместимый
	ErrConcurrentUpdate = fmt.Errorf("%w: appointment was modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: appointments: internal error", domain.ErrPersistence)
)
