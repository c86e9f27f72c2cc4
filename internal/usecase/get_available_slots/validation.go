package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает разобранную дату
func validateRequest(req *Request) (types.DateString, error) {
	if strings.TrimSpace(req.ProfessionalID) == "" {
		return "", fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Date) == "" {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return date, nil
}
