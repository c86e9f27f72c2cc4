package domain

import "errors"

// Классы ошибок. Ошибки пакетов оборачивают один из них,
// чтобы транспортный слой мог выбрать код ответа через errors.Is.
var (
	// ErrValidation некорректные входные данные, в том числе бронирование в прошлом
	ErrValidation = errors.New("validation error")

	// ErrConflict слот уже занят или состояние изменилось конкурентно
	ErrConflict = errors.New("conflict")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrAuth нет аутентифицированного пользователя
	ErrAuth = errors.New("authentication required")

	// ErrForbidden пользователь аутентифицирован, но действие ему недоступно
	ErrForbidden = errors.New("forbidden")

	// ErrPersistence хранилище недоступно или запись не удалась
	ErrPersistence = errors.New("persistence error")

	// ErrOutcomeUnknown операция прервана по таймауту, результат неизвестен -
	// вызывающий должен перечитать состояние, а не повторять запрос вслепую
	ErrOutcomeUnknown = errors.New("outcome unknown")
)
