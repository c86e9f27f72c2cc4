package domain

import "time"

// Notification уведомление пользователя. Read меняется только false -> true.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
