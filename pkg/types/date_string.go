package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateString возвращается при некорректном формате даты
var ErrInvalidDateString = errors.New("invalid date string format")

// DateString календарная дата в формате "YYYY-MM-DD" без часового пояса
type DateString string

// NewDateString берет год, месяц и день из t в его собственной локации
func NewDateString(t time.Time) DateString {
	y, m, d := t.Date()
	return DateString(fmt.Sprintf("%04d-%02d-%02d", y, int(m), d))
}

// NewDateStringFromString разбирает "YYYY-MM-DD" покомпонентно.
// Универсальный парсер дат не используется, чтобы не зависеть от UTC/локального времени.
func NewDateStringFromString(s string) (DateString, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}

	// time.Date нормализует 2024-02-30 в 2024-03-01, такие даты отклоняем
	check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if check.Year() != year || int(check.Month()) != month || check.Day() != day {
		return "", fmt.Errorf("%w: %q does not exist", ErrInvalidDateString, s)
	}

	return DateString(fmt.Sprintf("%04d-%02d-%02d", year, month, day)), nil
}

// Components возвращает год, месяц и день
func (d DateString) Components() (year int, month time.Month, day int, err error) {
	canonical, err := NewDateStringFromString(string(d))
	if err != nil {
		return 0, 0, 0, err
	}
	year, _ = strconv.Atoi(string(canonical[0:4]))
	m, _ := strconv.Atoi(string(canonical[5:7]))
	day, _ = strconv.Atoi(string(canonical[8:10]))
	return year, time.Month(m), day, nil
}

// Weekday возвращает день недели
func (d DateString) Weekday() (time.Weekday, error) {
	y, m, day, err := d.Components()
	if err != nil {
		return 0, err
	}
	return time.Date(y, m, day, 12, 0, 0, 0, time.UTC).Weekday(), nil
}

// At собирает момент времени из даты и времени суток в локации loc
func (d DateString) At(t TimeString, loc *time.Location) (time.Time, error) {
	y, m, day, err := d.Components()
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := t.Clock()
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(y, m, day, hour, minute, 0, 0, loc), nil
}

// Compare возвращает -1, 0 или 1. Канонические строки сравниваются лексикографически.
func (d DateString) Compare(other DateString) int {
	return strings.Compare(string(d), string(other))
}

// IsBefore возвращает true, если d строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return d.Compare(other) < 0
}

// IsZero возвращает true для пустого значения
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат
func (d DateString) Validate() error {
	_, err := NewDateStringFromString(string(d))
	return err
}

func (d DateString) String() string {
	return string(d)
}

// Scan реализует sql.Scanner (lib/pq отдает DATE как time.Time в UTC)
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDateString(v)
		return nil
	case []byte:
		parsed, err := NewDateStringFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := NewDateStringFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDateString, src)
	}
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}
