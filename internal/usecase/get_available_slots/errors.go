package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = fmt.Errorf("%w: professional not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrTimeout возвращается, когда запрос не уложился в отведенное время
	ErrTimeout = fmt.Errorf("%w: slots query timed out", domain.ErrOutcomeUnknown)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: get_available_slots: internal error", domain.ErrPersistence)
)
