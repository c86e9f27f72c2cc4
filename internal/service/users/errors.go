package users

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnauthenticated возвращается, когда в запросе нет пользователя
	ErrUnauthenticated = fmt.Errorf("%w: users: no authenticated user", domain.ErrAuth)

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда действие доступно только админу или самому пользователю
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: users: invalid input data", domain.ErrValidation)

	// ErrSelfRoleChange возвращается, когда админ пытается сменить собственную роль
	ErrSelfRoleChange = fmt.Errorf("%w: admin cannot change own role", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: users: internal error", domain.ErrPersistence)
)
