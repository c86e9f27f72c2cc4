package admin_update_role

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/users/models"
)

type UserService interface {
	UpdateRole(ctx context.Context, userID string, req *models.UpdateRoleRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
