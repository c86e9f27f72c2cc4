package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	cancelledTitle   = "Agendamento cancelado"
	cancelledMessage = "O agendamento de %s às %s foi cancelado."
	completedTitle   = "Agendamento concluído"
	completedMessage = "O agendamento de %s às %s foi concluído."

	// actorSystem автор переходов, выполненных по времени
	actorSystem = "system"
)

// Service сервис для работы с записями: чтение с вычисляемым статусом,
// отмена, завершение, скрытие и фоновое сохранение завершенных записей
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	location        *time.Location
	persistDerived  bool
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// persistDerived включает сохранение Pendente -> Completo при чтении
// с политикой завершения (профессионал, админ, история).
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	loc *time.Location,
	persistDerived bool,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		location:        loc,
		persistDerived:  persistDerived,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает записи в зоне видимости пользователя.
// Клиент видит только свои записи, профессионал - свои и записи к нему, админ - любые.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	if !req.Session.Valid() {
		return nil, ErrUnauthenticated
	}
	s.logger.Info("List: session=%s role=%s userId=%v professionalId=%v history=%t",
		req.Session.UserID, req.Session.Role, derefOrEmpty(req.UserID), derefOrEmpty(req.ProfessionalID), req.History)

	filter, err := scopeFilter(req.Session, req.UserID, req.ProfessionalID)
	if err != nil {
		s.logger.Warn("List: access denied for user=%s: %v", req.Session.UserID, err)
		return nil, err
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.Session.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := s.view(ctx, req.Session, appointments, req.History)

	s.logger.Info("List: returning %d of %d appointments for user=%s", len(result.Appointments), len(appointments), req.Session.UserID)
	return result, nil
}

// ListAll все записи системы с историей. Только для админа.
func (s *Service) ListAll(ctx context.Context, session domain.Session) (*models.AppointmentListResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}
	if !session.IsAdmin() {
		s.logger.Warn("ListAll: user=%s with role=%s is not admin", session.UserID, session.Role)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{})
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: returning %d appointments", len(appointments))
	return s.view(ctx, session, appointments, true), nil
}

// GetByID получает запись. Доступно клиенту, профессионалу записи и админу.
func (s *Service) GetByID(ctx context.Context, id string, session domain.Session) (*models.AppointmentResponse, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, session.UserID)

	appt, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(session, appt) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", session.UserID, id)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	policy := domain.PolicyForRole(session.Role)
	if s.persistDerived && policy == domain.PolicyCompletion {
		s.persistCompleted(ctx, appt, now)
	}

	return models.FromDomainAppointment(appt, appt.EffectiveStatus(now, s.location, policy)), nil
}

// Update частично обновляет запись: статус (Cancelado или Completo) и/или скрытие для клиента
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateRequest) (*models.AppointmentResponse, error) {
	if !req.Session.Valid() {
		return nil, ErrUnauthenticated
	}
	s.logger.Info("Update: appointment id=%s by user=%s role=%s status=%v hidden=%v",
		id, req.Session.UserID, req.Session.Role, derefOrEmpty(req.Status), req.HiddenFromClient)

	target, err := validateUpdate(req)
	if err != nil {
		s.logger.Warn("Update: invalid request for appointment id=%s: %v", id, err)
		return nil, err
	}

	appt, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if !canView(req.Session, appt) {
		s.logger.Warn("Update: access denied for user=%s to appointment id=%s", req.Session.UserID, id)
		return nil, ErrAccessDenied
	}

	// Права на скрытие проверяем до смены статуса, чтобы не применить запрос наполовину
	if req.HiddenFromClient != nil && !appt.IsOwnedBy(req.Session.UserID) {
		s.logger.Warn("Update: user=%s is not the client of appointment id=%s, cannot hide", req.Session.UserID, id)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	previous := appt.Status
	changed := false

	// Статус и скрытие фиксируются вместе, уведомления и события только после коммита
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if target != nil {
			var err error
			switch *target {
			case domain.StatusCancelled:
				appt, changed, err = s.cancel(txCtx, req.Session, appt, now)
			case domain.StatusCompleted:
				appt, changed, err = s.complete(txCtx, req.Session, appt, now)
			}
			if err != nil {
				return err
			}
		}

		if req.HiddenFromClient != nil && appt.HiddenFromClient != *req.HiddenFromClient {
			if err := s.appointmentRepo.SetHiddenFromClient(txCtx, id, *req.HiddenFromClient); err != nil {
				if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
					return ErrAppointmentNotFound
				}
				s.logger.Error("Update: failed to set hidden=%t for appointment id=%s: %v", *req.HiddenFromClient, id, err)
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}
			appt.HiddenFromClient = *req.HiddenFromClient
			s.logger.Info("Update: appointment id=%s hidden=%t", id, appt.HiddenFromClient)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrTransaction) {
			s.logger.Error("Update: transaction failed for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Update - transaction error: %v", ErrInternal, err)
		}
		return nil, err
	}

	if changed {
		s.afterTransition(ctx, req.Session.UserID, previous, appt, now)
		title, format := cancelledTitle, cancelledMessage
		if appt.Status == domain.StatusCompleted {
			title, format = completedTitle, completedMessage
		}
		s.notifyParticipants(ctx, req.Session.UserID, appt, title, format)
	}

	return models.FromDomainAppointment(appt, appt.EffectiveStatus(now, s.location, domain.PolicyForRole(req.Session.Role))), nil
}

// Sweep сохраняет Completo для всех прошедших незавершенных записей.
// Возвращает количество записей, которые перевел именно этот вызов.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	today := types.NewDateString(now.In(s.location))

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		DateTo:     &today,
		OnlyActive: true,
	})
	if err != nil {
		s.logger.Error("Sweep: repository error: %v", err)
		return 0, fmt.Errorf("%w: Sweep - repository error: %v", ErrInternal, err)
	}

	swept := 0
	for _, appt := range appointments {
		if ctx.Err() != nil {
			break
		}
		if s.persistCompleted(ctx, appt, now) {
			swept++
		}
	}

	if swept > 0 {
		s.logger.Info("Sweep: completed %d elapsed appointments", swept)
	}
	return swept, nil
}

// RunSweeper периодически вызывает Sweep до отмены ctx
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.logger.Info("RunSweeper: started with interval=%s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("RunSweeper: stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Warn("RunSweeper: sweep failed: %v", err)
			}
		}
	}
}

// cancel Pendente -> Cancelado. Доступно клиенту, профессионалу записи и админу.
// changed=false, если запись уже отменена.
func (s *Service) cancel(ctx context.Context, session domain.Session, appt *domain.Appointment, now time.Time) (*domain.Appointment, bool, error) {
	if appt.Status == domain.StatusCancelled {
		s.logger.Info("Update: appointment id=%s already cancelled", appt.ID)
		return appt, false, nil
	}

	effective := appt.EffectiveStatus(now, s.location, domain.PolicyForRole(session.Role))
	if !domain.CanTransition(effective, domain.StatusCancelled) {
		s.logger.Warn("Update: cannot cancel appointment id=%s in status=%s", appt.ID, effective)
		return nil, false, fmt.Errorf("%w: cannot cancel appointment in status %s", ErrInvalidTransition, effective)
	}

	updated, changed, err := s.transition(ctx, appt, domain.StatusCancelled)
	if err != nil {
		return nil, false, err
	}
	if updated.Status != domain.StatusCancelled {
		// Проиграли гонку другому переходу
		s.logger.Warn("Update: appointment id=%s moved to %s concurrently", appt.ID, updated.Status)
		return nil, false, ErrConcurrentUpdate
	}
	return updated, changed, nil
}

// complete Pendente|Atrasado -> Completo. Доступно профессионалу записи и админу.
func (s *Service) complete(ctx context.Context, session domain.Session, appt *domain.Appointment, now time.Time) (*domain.Appointment, bool, error) {
	if !session.IsAdmin() && !appt.IsServedBy(session.UserID) {
		s.logger.Warn("Update: user=%s cannot complete appointment id=%s", session.UserID, appt.ID)
		return nil, false, ErrAccessDenied
	}

	if appt.Status == domain.StatusCompleted {
		s.logger.Info("Update: appointment id=%s already completed", appt.ID)
		return appt, false, nil
	}
	if !domain.CanTransition(appt.Status, domain.StatusCompleted) {
		s.logger.Warn("Update: cannot complete appointment id=%s in status=%s", appt.ID, appt.Status)
		return nil, false, fmt.Errorf("%w: cannot complete appointment in status %s", ErrInvalidTransition, appt.Status)
	}

	updated, changed, err := s.transition(ctx, appt, domain.StatusCompleted)
	if err != nil {
		return nil, false, err
	}
	if updated.Status != domain.StatusCompleted {
		s.logger.Warn("Update: appointment id=%s moved to %s concurrently", appt.ID, updated.Status)
		return nil, false, ErrConcurrentUpdate
	}
	return updated, changed, nil
}

// transition выполняет compare-and-set. changed=false означает, что статус успели изменить,
// тогда возвращается перечитанная запись.
func (s *Service) transition(ctx context.Context, appt *domain.Appointment, next domain.AppointmentStatus) (*domain.Appointment, bool, error) {
	ok, err := s.appointmentRepo.UpdateStatusIfUnchanged(ctx, appt.ID, appt.Status, next)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, false, ErrAppointmentNotFound
		}
		s.logger.Error("Update: failed to set status=%s for appointment id=%s: %v", next, appt.ID, err)
		return nil, false, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if ok {
		updated := *appt
		updated.Status = next
		return &updated, true, nil
	}

	current, err := s.get(ctx, "Update", appt.ID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

// persistCompleted сохраняет Completo, если запись уже прошла.
// Atrasado никогда не сохраняется: это представление для клиента.
func (s *Service) persistCompleted(ctx context.Context, appt *domain.Appointment, now time.Time) bool {
	if appt.Status.IsTerminal() {
		return false
	}
	if appt.EffectiveStatus(now, s.location, domain.PolicyCompletion) != domain.StatusCompleted {
		return false
	}

	ok, err := s.appointmentRepo.UpdateStatusIfUnchanged(ctx, appt.ID, appt.Status, domain.StatusCompleted)
	if err != nil {
		s.logger.Warn("persistCompleted: failed to persist appointment id=%s: %v", appt.ID, err)
		return false
	}
	if !ok {
		return false
	}

	previous := appt.Status
	appt.Status = domain.StatusCompleted
	s.afterTransition(ctx, actorSystem, previous, appt, now)
	return true
}

func (s *Service) afterTransition(ctx context.Context, actorID string, previous domain.AppointmentStatus, appt *domain.Appointment, now time.Time) {
	s.metrics.IncStatusTransition(string(previous), string(appt.Status))
	s.logger.Info("Update: appointment id=%s %s -> %s by %s", appt.ID, previous, appt.Status, actorID)

	evt := events.Event{
		ID:          uuid.NewString(),
		Type:        events.TypeAppointmentStatusChanged,
		AggregateID: appt.ID,
		OccurredAt:  now,
		Payload: events.AppointmentPayload{
			AppointmentID:  appt.ID,
			UserID:         appt.UserID,
			ProfessionalID: appt.ProfessionalID,
			ServiceID:      appt.ServiceID,
			Date:           appt.Date.String(),
			Time:           appt.Time.String(),
			Status:         string(appt.Status),
			PreviousStatus: string(previous),
			ActorID:        actorID,
		},
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error("Update: failed to publish %s for appointment id=%s: %v", evt.Type, appt.ID, err)
	}
}

// notifyParticipants уведомляет клиента и профессионала, кроме автора изменения
func (s *Service) notifyParticipants(ctx context.Context, actorID string, appt *domain.Appointment, title, format string) {
	message := fmt.Sprintf(format, appt.Date, appt.Time)
	for _, recipient := range []string{appt.UserID, appt.ProfessionalID} {
		if recipient == actorID {
			continue
		}
		if err := s.notifier.Notify(ctx, recipient, title, message); err != nil {
			s.logger.Error("Update: failed to notify user=%s about appointment id=%s: %v", recipient, appt.ID, err)
		}
	}
}

func (s *Service) view(ctx context.Context, session domain.Session, appointments []*domain.Appointment, history bool) *models.AppointmentListResponse {
	now := s.timeProvider.Now()
	policy := domain.PolicyForView(session.Role, history)
	// Клиентское чтение ничего не пишет: Atrasado остается представлением
	persist := s.persistDerived && policy == domain.PolicyCompletion

	result := &models.AppointmentListResponse{Appointments: make([]models.AppointmentResponse, 0, len(appointments))}
	for _, appt := range appointments {
		if persist {
			s.persistCompleted(ctx, appt, now)
		}

		effective := appt.EffectiveStatus(now, s.location, policy)
		if !history {
			if effective.IsTerminal() {
				continue
			}
			if appt.HiddenFromClient && session.Role == domain.RoleClient {
				continue
			}
		}
		result.Appointments = append(result.Appointments, *models.FromDomainAppointment(appt, effective))
	}
	return result
}

func (s *Service) get(ctx context.Context, method, id string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return appt, nil
}

// Вспомогательные функции

// scopeFilter строит фильтр выборки с учетом роли
func scopeFilter(session domain.Session, userID, professionalID *string) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{UserID: userID, ProfessionalID: professionalID}

	switch session.Role {
	case domain.RoleAdmin:
		return filter, nil

	case domain.RoleClient:
		if userID != nil && *userID != session.UserID {
			return filter, ErrAccessDenied
		}
		filter.UserID = &session.UserID
		return filter, nil

	case domain.RoleProfessional:
		if professionalID != nil && *professionalID != session.UserID {
			// Профессионал может смотреть записи к другим только как их клиент
			if userID == nil || *userID != session.UserID {
				return filter, ErrAccessDenied
			}
			return filter, nil
		}
		if userID != nil && *userID == session.UserID && professionalID == nil {
			// Собственные записи профессионала как клиента
			return filter, nil
		}
		filter.ProfessionalID = &session.UserID
		return filter, nil

	default:
		return filter, ErrAccessDenied
	}
}

// canView участник записи или админ
func canView(session domain.Session, appt *domain.Appointment) bool {
	return session.IsAdmin() || appt.IsOwnedBy(session.UserID) || appt.IsServedBy(session.UserID)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
