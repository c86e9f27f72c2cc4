package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnauthenticated возвращается, когда в запросе нет пользователя
	ErrUnauthenticated = fmt.Errorf("%w: schedule: no authenticated user", domain.ErrAuth)

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = fmt.Errorf("%w: professional not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не может менять расписание
	ErrAccessDenied = fmt.Errorf("%w: access to working hours denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: schedule: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: schedule: internal error", domain.ErrPersistence)
)
