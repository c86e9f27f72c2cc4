package events

import "errors"

var (
	// ErrEncode возвращается, если событие не удалось сериализовать
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish возвращается, если брокер не принял сообщение
	ErrPublish = errors.New("events: failed to publish event")
)
