package domain

// Slot grid limits
const (
	MinSlotIntervalMinutes     = 5
	MaxSlotIntervalMinutes     = 480 // 8 hours
	DefaultSlotIntervalMinutes = 30
)

// Business validation constants
const (
	MaxNotificationTitleLength   = 120
	MaxNotificationMessageLength = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonTerminalStatuses статусы, которые попадают в активный список
var NonTerminalStatuses = []AppointmentStatus{
	StatusPending,
	StatusLate,
}

// AllStatuses все статусы в порядке жизненного цикла
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusLate,
	StatusCompleted,
	StatusCancelled,
}
