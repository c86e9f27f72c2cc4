package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	userRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SchedulingService/internal/service/users/models"
)

// recentLimit сколько последних пользователей и записей показывает обзор
const recentLimit = 5

// Service сервис пользователей и административных операций
type Service struct {
	userRepo        UserRepository
	appointmentRepo AppointmentRepository
	notifications   NotificationCounter
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	appointmentRepo AppointmentRepository,
	notifications NotificationCounter,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		notifications:   notifications,
		location:        loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetRole роль пользователя. Доступно самому пользователю и админу.
func (s *Service) GetRole(ctx context.Context, userID string, session domain.Session) (*models.RoleResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}
	if session.UserID != userID && !session.IsAdmin() {
		s.logger.Warn("GetRole: user=%s cannot read role of user=%s", session.UserID, userID)
		return nil, ErrAccessDenied
	}

	user, err := s.get(ctx, "GetRole", userID)
	if err != nil {
		return nil, err
	}

	return &models.RoleResponse{UserID: user.ID, Role: user.Role.String()}, nil
}

// ListProfessionals профессионалы, опционально только одной компании
func (s *Service) ListProfessionals(ctx context.Context, companyID *string) (*models.ProfessionalListResponse, error) {
	role := domain.RoleProfessional
	list, err := s.userRepo.List(ctx, domain.UsersFilter{Role: &role, CompanyID: companyID})
	if err != nil {
		s.logger.Error("ListProfessionals: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}

	result := &models.ProfessionalListResponse{Professionals: make([]models.ProfessionalResponse, 0, len(list))}
	for _, u := range list {
		result.Professionals = append(result.Professionals, *models.FromDomainProfessional(u))
	}
	return result, nil
}

// ListUsers все пользователи. Только для админа.
func (s *Service) ListUsers(ctx context.Context, session domain.Session) (*models.UserListResponse, error) {
	if err := s.requireAdmin("ListUsers", session); err != nil {
		return nil, err
	}

	list, err := s.userRepo.List(ctx, domain.UsersFilter{})
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserList(list), nil
}

// UpdateRole меняет роль пользователя и компанию. Только для админа.
// Компания сохраняется только у профессионалов.
func (s *Service) UpdateRole(ctx context.Context, userID string, req *models.UpdateRoleRequest) (*models.UserResponse, error) {
	if err := s.requireAdmin("UpdateRole", req.Session); err != nil {
		return nil, err
	}
	s.logger.Info("UpdateRole: user=%s to role=%s company=%v by admin=%s", userID, req.Role, req.CompanyID, req.Session.UserID)

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		s.logger.Warn("UpdateRole: invalid role=%q", req.Role)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if userID == req.Session.UserID {
		s.logger.Warn("UpdateRole: admin=%s tried to change own role", userID)
		return nil, ErrSelfRoleChange
	}

	companyID := req.CompanyID
	if role != domain.RoleProfessional || (companyID != nil && *companyID == "") {
		companyID = nil
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role, companyID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateRole: user id=%s not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateRole: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
	}

	user, err := s.get(ctx, "UpdateRole", userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateRole: user=%s now has role=%s", userID, user.Role)
	return models.FromDomainUser(user), nil
}

// Overview сводка по пользователям, записям и уведомлениям. Только для админа.
// Статусы записей считаются по эффективному статусу глазами админа.
func (s *Service) Overview(ctx context.Context, session domain.Session) (*models.OverviewResponse, error) {
	if err := s.requireAdmin("Overview", session); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx, domain.UsersFilter{})
	if err != nil {
		s.logger.Error("Overview: failed to list users: %v", err)
		return nil, fmt.Errorf("%w: Overview - users: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{})
	if err != nil {
		s.logger.Error("Overview: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: Overview - appointments: %v", ErrInternal, err)
	}

	notifications, err := s.notifications.ListAll(ctx)
	if err != nil {
		s.logger.Error("Overview: failed to list notifications: %v", err)
		return nil, fmt.Errorf("%w: Overview - notifications: %v", ErrInternal, err)
	}

	unread, err := s.notifications.CountAllUnread(ctx)
	if err != nil {
		s.logger.Error("Overview: failed to count unread notifications: %v", err)
		return nil, fmt.Errorf("%w: Overview - notifications: %v", ErrInternal, err)
	}

	resp := &models.OverviewResponse{
		UsersByRole:          make(map[string]int, len(domain.AllRoles())),
		AppointmentsByStatus: make(map[string]int, len(domain.AllStatuses)),
		NotificationsTotal:   len(notifications),
		NotificationsUnread:  unread,
		RecentUsers:          make([]models.UserResponse, 0, recentLimit),
		RecentAppointments:   make([]models.RecentAppointment, 0, recentLimit),
	}

	for _, role := range domain.AllRoles() {
		resp.UsersByRole[role.String()] = 0
	}
	for _, u := range users {
		resp.UsersByRole[u.Role.String()]++
	}

	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	for _, u := range users {
		if len(resp.RecentUsers) == recentLimit {
			break
		}
		resp.RecentUsers = append(resp.RecentUsers, *models.FromDomainUser(u))
	}

	now := s.timeProvider.Now()
	for _, status := range domain.AllStatuses {
		resp.AppointmentsByStatus[string(status)] = 0
	}
	for _, a := range appointments {
		effective := a.EffectiveStatus(now, s.location, domain.PolicyForRole(domain.RoleAdmin))
		resp.AppointmentsByStatus[string(effective)]++

		// Репозиторий отдает записи начиная с самых поздних
		if len(resp.RecentAppointments) < recentLimit {
			resp.RecentAppointments = append(resp.RecentAppointments, models.RecentAppointment{
				ID:             a.ID,
				UserID:         a.UserID,
				ProfessionalID: a.ProfessionalID,
				Date:           a.Date.String(),
				Time:           a.Time.String(),
				Status:         string(effective),
			})
		}
	}

	s.logger.Info("Overview: users=%d appointments=%d notifications=%d unread=%d",
		len(users), len(appointments), len(notifications), unread)
	return resp, nil
}

func (s *Service) requireAdmin(method string, session domain.Session) error {
	if !session.Valid() {
		return ErrUnauthenticated
	}
	if !session.IsAdmin() {
		s.logger.Warn("%s: user=%s with role=%s is not admin", method, session.UserID, session.Role)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) get(ctx context.Context, method, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%s not found", method, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return user, nil
}
