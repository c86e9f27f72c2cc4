package notifications

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnauthenticated возвращается, когда в запросе нет пользователя
	ErrUnauthenticated = fmt.Errorf("%w: notifications: no authenticated user", domain.ErrAuth)

	// ErrNotificationNotFound возвращается, когда уведомление не найдено
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда уведомление принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("%w: access to notification denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: notifications: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: notifications: internal error", domain.ErrPersistence)
)
