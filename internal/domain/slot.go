package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Slot a candidate bookable time on a professional's day
type Slot struct {
	Time      types.TimeString
	Available bool
}

// WorkingHours slot grid of a professional for one weekday:
// slots start at OpenTime every SlotIntervalMinutes and must end by CloseTime
type WorkingHours struct {
	ProfessionalID      string
	Weekday             time.Weekday
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotIntervalMinutes int
}

// ErrInvalidWorkingHours возвращается при некорректной сетке рабочего времени
var ErrInvalidWorkingHours = fmt.Errorf("%w: invalid working hours", ErrValidation)

// Validate checks the grid is usable
func (w *WorkingHours) Validate() error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d", ErrInvalidWorkingHours, w.Weekday)
	}
	if err := w.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidWorkingHours, err)
	}
	if err := w.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidWorkingHours, err)
	}
	if !w.OpenTime.IsBefore(w.CloseTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidWorkingHours)
	}
	if w.SlotIntervalMinutes < MinSlotIntervalMinutes || w.SlotIntervalMinutes > MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slot interval must be between %d and %d minutes",
			ErrInvalidWorkingHours, MinSlotIntervalMinutes, MaxSlotIntervalMinutes)
	}
	return nil
}

// CandidateTimes returns every slot start of the grid in ascending order
func (w *WorkingHours) CandidateTimes() ([]types.TimeString, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	open, _ := w.OpenTime.Minutes()
	closeAt, _ := w.CloseTime.Minutes()

	times := make([]types.TimeString, 0, (closeAt-open)/w.SlotIntervalMinutes)
	for start := open; start+w.SlotIntervalMinutes <= closeAt; start += w.SlotIntervalMinutes {
		t, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	return times, nil
}
