package get_available_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	ProfessionalID string
	Date           string // YYYY-MM-DD
}

// Response модель ответа со списком слотов
type Response struct {
	ProfessionalID string
	Date           types.DateString
	Slots          []domain.Slot // по возрастанию времени
}
