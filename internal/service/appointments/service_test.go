package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

var (
	client       = domain.Session{UserID: "C1", Role: domain.RoleClient}
	otherClient  = domain.Session{UserID: "C2", Role: domain.RoleClient}
	professional = domain.Session{UserID: "P", Role: domain.RoleProfessional}
	otherPro     = domain.Session{UserID: "P2", Role: domain.RoleProfessional}
	admin        = domain.Session{UserID: "A", Role: domain.RoleAdmin}
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *recordingNotifier) Notify(_ context.Context, userID, title, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, userID+":"+title)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type countingMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
}

func (m *countingMetrics) IncStatusTransition(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transitions == nil {
		m.transitions = make(map[string]int)
	}
	m.transitions[from+"->"+to]++
}

func (m *countingMetrics) count(from, to domain.AppointmentStatus) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitions[string(from)+"->"+string(to)]
}

type fixture struct {
	svc          *Service
	appointments *appointment.MemoryRepository
	notifier     *recordingNotifier
	publisher    *recordingPublisher
	metrics      *countingMetrics
}

// now: 2024-06-10 12:00 BRT
var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, brt)

func newFixture(t *testing.T, persistDerived bool) *fixture {
	t.Helper()
	f := &fixture{
		appointments: appointment.NewMemoryRepository(),
		notifier:     &recordingNotifier{},
		publisher:    &recordingPublisher{},
		metrics:      &countingMetrics{},
	}
	f.svc = NewService(f.appointments, txmanager.NewNoopManager(), f.notifier, f.publisher, f.metrics, brt, persistDerived, nopLogger{})
	f.svc.timeProvider = fixedTime{now: testNow}
	return f
}

func (f *fixture) seed(t *testing.T, id, userID, date, tm string, status domain.AppointmentStatus) {
	t.Helper()
	_, err := f.appointments.CreateIfSlotFree(context.Background(), &domain.Appointment{
		ID:             id,
		UserID:         userID,
		ProfessionalID: "P",
		ServiceID:      "S",
		Date:           types.DateString(date),
		Time:           types.TimeString(tm),
		Status:         domain.StatusPending,
	})
	require.NoError(t, err)
	if status != domain.StatusPending {
		ok, err := f.appointments.UpdateStatusIfUnchanged(context.Background(), id, domain.StatusPending, status)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func (f *fixture) stored(t *testing.T, id string) *domain.Appointment {
	t.Helper()
	appt, err := f.appointments.GetByID(context.Background(), id)
	require.NoError(t, err)
	return appt
}

func ids(resp *models.AppointmentListResponse) []string {
	result := make([]string, 0, len(resp.Appointments))
	for _, a := range resp.Appointments {
		result = append(result, a.ID)
	}
	return result
}

func statusOf(resp *models.AppointmentListResponse, id string) string {
	for _, a := range resp.Appointments {
		if a.ID == id {
			return a.Status
		}
	}
	return ""
}

func TestList_ElapsedPendingDependsOnViewer(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "past", "C1", "2024-06-10", "09:00", domain.StatusPending)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.ListRequest
		want domain.AppointmentStatus
	}{
		{"client active list", &models.ListRequest{Session: client}, domain.StatusLate},
		{"client history", &models.ListRequest{Session: client, History: true}, domain.StatusCompleted},
		{"professional history", &models.ListRequest{Session: professional, History: true}, domain.StatusCompleted},
		{"admin history", &models.ListRequest{Session: admin, History: true}, domain.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.List(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), statusOf(resp, "past"))
		})
	}

	// Чтение без persistDerived ничего не пишет
	assert.Equal(t, domain.StatusPending, f.stored(t, "past").Status)
}

func TestList_ActiveListDropsEffectivelyTerminal(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "past", "C1", "2024-06-10", "09:00", domain.StatusPending)
	f.seed(t, "future", "C1", "2024-06-10", "15:00", domain.StatusPending)
	f.seed(t, "cancelled", "C1", "2024-06-11", "10:00", domain.StatusCancelled)
	ctx := context.Background()

	// Для клиента прошедшая запись Atrasado - она остается в активном списке
	clientView, err := f.svc.List(ctx, &models.ListRequest{Session: client})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"past", "future"}, ids(clientView))

	// Для профессионала она уже Completo
	proView, err := f.svc.List(ctx, &models.ListRequest{Session: professional})
	require.NoError(t, err)
	assert.Equal(t, []string{"future"}, ids(proView))

	history, err := f.svc.List(ctx, &models.ListRequest{Session: professional, History: true})
	require.NoError(t, err)
	assert.Len(t, history.Appointments, 3)
}

func TestList_PersistDerivedWritesCompletedOnce(t *testing.T) {
	f := newFixture(t, true)
	f.seed(t, "past", "C1", "2024-06-10", "09:00", domain.StatusPending)
	ctx := context.Background()

	// Активный список клиента не пишет
	resp, err := f.svc.List(ctx, &models.ListRequest{Session: client})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusLate), statusOf(resp, "past"))
	assert.Equal(t, domain.StatusPending, f.stored(t, "past").Status)
	assert.Empty(t, f.publisher.events)

	for i := 0; i < 2; i++ {
		resp, err = f.svc.List(ctx, &models.ListRequest{Session: professional, History: true})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), statusOf(resp, "past"))
	}

	// Сохраняется Completo, Atrasado никогда не пишется
	assert.Equal(t, domain.StatusCompleted, f.stored(t, "past").Status)
	assert.Equal(t, 1, f.metrics.count(domain.StatusPending, domain.StatusCompleted))
	assert.Zero(t, f.metrics.count(domain.StatusPending, domain.StatusLate))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, actorSystem, f.publisher.events[0].Payload.ActorID)
}

func TestClientReadsElapsedAsLateWithPersistDerived(t *testing.T) {
	f := newFixture(t, true)
	f.seed(t, "past", "C1", "2024-06-10", "09:00", domain.StatusPending)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		list, err := f.svc.List(ctx, &models.ListRequest{Session: client})
		require.NoError(t, err)
		assert.Equal(t, []string{"past"}, ids(list))
		assert.Equal(t, string(domain.StatusLate), statusOf(list, "past"))

		resp, err := f.svc.GetByID(ctx, "past", client)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusLate), resp.Status)
	}

	assert.Equal(t, domain.StatusPending, f.stored(t, "past").Status)
	assert.Empty(t, f.publisher.events)

	// Профессионал видит Completo, и оно сохраняется
	resp, err := f.svc.GetByID(ctx, "past", professional)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, f.stored(t, "past").Status)
	require.Len(t, f.publisher.events, 1)
}

func TestList_Scope(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)
	f.seed(t, "a2", "C2", "2024-06-11", "11:00", domain.StatusPending)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *models.ListRequest
		want    []string
		wantErr error
	}{
		{"client sees own", &models.ListRequest{Session: client}, []string{"a1"}, nil},
		{"client asks for self", &models.ListRequest{Session: client, UserID: ptr.Ptr("C1")}, []string{"a1"}, nil},
		{"client asks for other", &models.ListRequest{Session: client, UserID: ptr.Ptr("C2")}, nil, ErrAccessDenied},
		{"professional defaults to own agenda", &models.ListRequest{Session: professional}, []string{"a1", "a2"}, nil},
		{"professional filters by client", &models.ListRequest{Session: professional, UserID: ptr.Ptr("C2")}, []string{"a2"}, nil},
		{"professional as client", &models.ListRequest{Session: professional, UserID: ptr.Ptr("P")}, []string{}, nil},
		{"other professional agenda", &models.ListRequest{Session: professional, ProfessionalID: ptr.Ptr("P2")}, nil, ErrAccessDenied},
		{"other professional sees nothing", &models.ListRequest{Session: otherPro}, []string{}, nil},
		{"admin sees all", &models.ListRequest{Session: admin}, []string{"a1", "a2"}, nil},
		{"no session", &models.ListRequest{}, nil, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.List(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, ids(resp))
		})
	}
}

func TestUpdate_CancelPending(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.Update(ctx, "a1", &models.UpdateRequest{Session: client, Status: ptr.Ptr("Cancelado")})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, f.stored(t, "a1").Status)

	// Слот освобожден: в тот же слот можно записаться снова
	_, err = f.appointments.CreateIfSlotFree(ctx, &domain.Appointment{
		ID: "a2", UserID: "C2", ProfessionalID: "P", ServiceID: "S",
		Date: "2024-06-11", Time: "10:00", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"P:" + cancelledTitle}, f.notifier.sent)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeAppointmentStatusChanged, f.publisher.events[0].Type)
	assert.Equal(t, string(domain.StatusPending), f.publisher.events[0].Payload.PreviousStatus)
	assert.Equal(t, 1, f.metrics.count(domain.StatusPending, domain.StatusCancelled))
}

func TestUpdate_CancelIsIdempotent(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.svc.Update(ctx, "a1", &models.UpdateRequest{Session: professional, Status: ptr.Ptr("Cancelado")})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	}

	assert.Equal(t, 1, f.metrics.count(domain.StatusPending, domain.StatusCancelled))
	assert.Equal(t, []string{"C1:" + cancelledTitle}, f.notifier.sent)
}

func TestUpdate_ConcurrentCancelsTransitionOnce(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Update(ctx, "a1", &models.UpdateRequest{Session: admin, Status: ptr.Ptr("Cancelado")})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, f.metrics.count(domain.StatusPending, domain.StatusCancelled))
	assert.Len(t, f.publisher.events, 1)
}

func TestUpdate_CancelVersusCompleteRace(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)
	ctx := context.Background()

	var wg sync.WaitGroup
	var cancelErr, completeErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, cancelErr = f.svc.Update(ctx, "a1", &models.UpdateRequest{Session: client, Status: ptr.Ptr("Cancelado")})
	}()
	go func() {
		defer wg.Done()
		_, completeErr = f.svc.Update(ctx, "a1", &models.UpdateRequest{Session: professional, Status: ptr.Ptr("Completo")})
	}()
	wg.Wait()

	final := f.stored(t, "a1").Status
	require.True(t, final.IsTerminal())

	// Ровно один переход выиграл, проигравший видит конфликт или некорректный переход
	switch final {
	case domain.StatusCancelled:
		assert.NoError(t, cancelErr)
		assert.True(t, errors.Is(completeErr, ErrConcurrentUpdate) || errors.Is(completeErr, ErrInvalidTransition))
	case domain.StatusCompleted:
		assert.NoError(t, completeErr)
		assert.True(t, errors.Is(cancelErr, ErrConcurrentUpdate) || errors.Is(cancelErr, ErrInvalidTransition))
	}
	assert.Len(t, f.publisher.events, 1)
}

func TestUpdate_Errors(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "future", "C1", "2024-06-11", "10:00", domain.StatusPending)
	f.seed(t, "past", "C1", "2024-06-10", "09:00", domain.StatusPending)
	f.seed(t, "cancelled", "C1", "2024-06-12", "10:00", domain.StatusCancelled)
	f.seed(t, "done", "C1", "2024-06-12", "11:00", domain.StatusCompleted)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		req     *models.UpdateRequest
		wantErr error
		kind    error
	}{
		{"empty update", "future", &models.UpdateRequest{Session: client}, ErrInvalidInput, domain.ErrValidation},
		{"unknown status", "future", &models.UpdateRequest{Session: client, Status: ptr.Ptr("Feito")}, ErrInvalidInput, domain.ErrValidation},
		{"late cannot be requested", "future", &models.UpdateRequest{Session: professional, Status: ptr.Ptr("Atrasado")}, ErrInvalidTransition, domain.ErrValidation},
		{"not found", "ghost", &models.UpdateRequest{Session: client, Status: ptr.Ptr("Cancelado")}, ErrAppointmentNotFound, domain.ErrNotFound},
		{"stranger cancels", "future", &models.UpdateRequest{Session: otherClient, Status: ptr.Ptr("Cancelado")}, ErrAccessDenied, domain.ErrForbidden},
		{"client completes", "future", &models.UpdateRequest{Session: client, Status: ptr.Ptr("Completo")}, ErrAccessDenied, domain.ErrForbidden},
		{"cancel elapsed", "past", &models.UpdateRequest{Session: client, Status: ptr.Ptr("Cancelado")}, ErrInvalidTransition, domain.ErrValidation},
		{"cancel completed", "done", &models.UpdateRequest{Session: admin, Status: ptr.Ptr("Cancelado")}, ErrInvalidTransition, domain.ErrValidation},
		{"complete cancelled", "cancelled", &models.UpdateRequest{Session: professional, Status: ptr.Ptr("Completo")}, ErrInvalidTransition, domain.ErrValidation},
		{"professional hides", "future", &models.UpdateRequest{Session: professional, HiddenFromClient: ptr.Ptr(true)}, ErrAccessDenied, domain.ErrForbidden},
		{"no session", "future", &models.UpdateRequest{Status: ptr.Ptr("Cancelado")}, ErrUnauthenticated, domain.ErrAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Update(ctx, tt.id, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	// Ни один отказ не поменял состояние
	assert.Equal(t, domain.StatusPending, f.stored(t, "future").Status)
	assert.False(t, f.stored(t, "future").HiddenFromClient)
	assert.Empty(t, f.publisher.events)
}

type failingHideRepo struct {
	*appointment.MemoryRepository
	err error
}

func (r failingHideRepo) SetHiddenFromClient(context.Context, string, bool) error {
	return r.err
}

type recordingTxManager struct {
	calls      int
	rolledBack int
}

func (m *recordingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack++
		return err
	}
	return nil
}

func TestUpdate_StatusAndHideShareTransaction(t *testing.T) {
	tests := []struct {
		name       string
		hideErr    error
		wantErr    error
		wantEvents int
		wantSent   []string
	}{
		{name: "both applied", wantEvents: 1, wantSent: []string{"P:" + cancelledTitle}},
		{name: "hide fails", hideErr: errors.New("connection reset"), wantErr: ErrInternal, wantSent: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)

			var repo AppointmentRepository = f.appointments
			if tt.hideErr != nil {
				repo = failingHideRepo{MemoryRepository: f.appointments, err: tt.hideErr}
			}
			tx := &recordingTxManager{}
			svc := NewService(repo, tx, f.notifier, f.publisher, f.metrics, brt, false, nopLogger{})
			svc.timeProvider = fixedTime{now: testNow}

			resp, err := svc.Update(context.Background(), "a1", &models.UpdateRequest{
				Session:          client,
				Status:           ptr.Ptr("Cancelado"),
				HiddenFromClient: ptr.Ptr(true),
			})

			assert.Equal(t, 1, tx.calls)
			assert.Len(t, f.publisher.events, tt.wantEvents)
			assert.Equal(t, tt.wantSent, f.notifier.sent)
			assert.Equal(t, tt.wantEvents, f.metrics.count(domain.StatusPending, domain.StatusCancelled))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				assert.Equal(t, 1, tx.rolledBack)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), resp.Status)
			assert.True(t, resp.HiddenFromClient)
			assert.Zero(t, tx.rolledBack)
		})
	}
}

func TestUpdate_CompleteByProfessional(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "past", "C1", "2024-06-10", "09:00", domain.StatusPending)

	resp, err := f.svc.Update(context.Background(), "past", &models.UpdateRequest{Session: professional, Status: ptr.Ptr("Completo")})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, f.stored(t, "past").Status)
	assert.Equal(t, []string{"C1:" + completedTitle}, f.notifier.sent)
}

func TestUpdate_HideFromClient(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-11", "10:00", domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.Update(ctx, "a1", &models.UpdateRequest{Session: client, HiddenFromClient: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.True(t, resp.HiddenFromClient)

	clientList, err := f.svc.List(ctx, &models.ListRequest{Session: client})
	require.NoError(t, err)
	assert.Empty(t, clientList.Appointments)

	clientHistory, err := f.svc.List(ctx, &models.ListRequest{Session: client, History: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(clientHistory))

	proList, err := f.svc.List(ctx, &models.ListRequest{Session: professional})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(proList))

	adminList, err := f.svc.List(ctx, &models.ListRequest{Session: admin})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(adminList))

	all, err := f.svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(all))
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-10", "09:00", domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, "a1", client)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusLate), resp.Status)

	resp, err = f.svc.GetByID(ctx, "a1", professional)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	_, err = f.svc.GetByID(ctx, "a1", otherClient)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, "ghost", admin)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListAll_AdminOnly(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.ListAll(context.Background(), professional)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSweep_CompletesOnlyElapsed(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "yesterday", "C1", "2024-06-09", "15:00", domain.StatusPending)
	f.seed(t, "late", "C1", "2024-06-10", "09:00", domain.StatusLate)
	f.seed(t, "later-today", "C1", "2024-06-10", "15:00", domain.StatusPending)
	f.seed(t, "tomorrow", "C1", "2024-06-11", "09:00", domain.StatusPending)
	f.seed(t, "cancelled", "C1", "2024-06-08", "09:00", domain.StatusCancelled)
	ctx := context.Background()

	swept, err := f.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, swept)

	assert.Equal(t, domain.StatusCompleted, f.stored(t, "yesterday").Status)
	assert.Equal(t, domain.StatusCompleted, f.stored(t, "late").Status)
	assert.Equal(t, domain.StatusPending, f.stored(t, "later-today").Status)
	assert.Equal(t, domain.StatusPending, f.stored(t, "tomorrow").Status)
	assert.Equal(t, domain.StatusCancelled, f.stored(t, "cancelled").Status)

	// Повторный проход ничего не меняет
	swept, err = f.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestEffectiveStatusIsMonotonic(t *testing.T) {
	f := newFixture(t, false)
	f.seed(t, "a1", "C1", "2024-06-10", "13:00", domain.StatusPending)
	ctx := context.Background()

	order := map[string]int{"Pendente": 0, "Atrasado": 1, "Completo": 2}
	last := -1
	for _, now := range []time.Time{
		testNow,
		testNow.Add(59 * time.Minute),
		testNow.Add(61 * time.Minute),
		testNow.Add(24 * time.Hour),
	} {
		f.svc.timeProvider = fixedTime{now: now}
		resp, err := f.svc.GetByID(ctx, "a1", professional)
		require.NoError(t, err)
		rank := order[resp.Status]
		assert.GreaterOrEqual(t, rank, last, "status went back at %s", now)
		last = rank
	}
	assert.Equal(t, 2, last)
}
