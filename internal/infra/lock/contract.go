package lock

import (
	"context"
	"errors"
)

var (
	// ErrLockTimeout контекст истек раньше, чем удалось взять блокировку
	ErrLockTimeout = errors.New("lock: timed out waiting for lock")

	// ErrLockUnavailable хранилище блокировок недоступно
	ErrLockUnavailable = errors.New("lock: backend unavailable")
)

// Locker взаимное исключение по строковому ключу.
// Lock блокируется до получения блокировки или отмены ctx.
// Возвращаемая функция освобождает блокировку, повторный вызов ничего не делает.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
