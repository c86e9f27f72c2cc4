package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// generateTimeSlots возвращает времена начала слотов сетки на дату.
// Для прошедшей даты слотов нет, для сегодняшней отбрасываются уже наступившие.
func generateTimeSlots(
	workingHours *domain.WorkingHours,
	date types.DateString,
	now time.Time,
	loc *time.Location,
) ([]types.TimeString, error) {
	today := types.NewDateString(now.In(loc))
	if date.IsBefore(today) {
		return []types.TimeString{}, nil
	}

	allSlots, err := workingHours.CandidateTimes()
	if err != nil {
		return nil, err
	}

	if date != today {
		return allSlots, nil
	}

	futureSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		startsAt, err := date.At(slot, loc)
		if err != nil {
			return nil, err
		}
		if !startsAt.Before(now) {
			futureSlots = append(futureSlots, slot)
		}
	}

	return futureSlots, nil
}

// markOccupancy помечает занятые слоты. Слот занят, если на это же время
// есть не отмененная запись - длительность записи не учитывается.
func markOccupancy(times []types.TimeString, appointments []*domain.Appointment) []domain.Slot {
	occupied := make(map[int]struct{}, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		minutes, err := appt.Time.Minutes()
		if err != nil {
			continue
		}
		occupied[minutes] = struct{}{}
	}

	result := make([]domain.Slot, len(times))
	for i, t := range times {
		minutes, _ := t.Minutes()
		_, taken := occupied[minutes]
		result[i] = domain.Slot{Time: t, Available: !taken}
	}

	return result
}
