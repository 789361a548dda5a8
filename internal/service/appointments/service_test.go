package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	apptStore "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeApptRepo struct {
	byID map[int64]*domain.Appointment

	listByRequester []*domain.Appointment
	listByProvider  []*domain.Appointment
	listErr         error

	updateErr   error
	cancelCalls int
	updateCalls int

	// Подменяет статус при следующем чтении, имитируя конкурентную
	// смену статуса между чтением и записью
	staleReadStatus *domain.AppointmentStatus
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeApptRepo {
	repo := &fakeApptRepo{byID: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		repo.byID[appt.ID] = appt
	}
	return repo
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, apptStore.ErrAppointmentNotFound
	}
	copied := *appt
	if f.staleReadStatus != nil {
		copied.Status = *f.staleReadStatus
		f.staleReadStatus = nil
	}
	return &copied, nil
}

func (f *fakeApptRepo) GetByRequesterID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listByRequester, nil
}

func (f *fakeApptRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listByProvider, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, id int64, status, expected domain.AppointmentStatus) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	appt, ok := f.byID[id]
	if !ok {
		return apptStore.ErrAppointmentNotFound
	}
	if appt.Status != expected {
		return apptStore.ErrStatusConflict
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	return nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, id int64, expected domain.AppointmentStatus) error {
	f.cancelCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	appt, ok := f.byID[id]
	if !ok {
		return apptStore.ErrAppointmentNotFound
	}
	if appt.Status != expected {
		return apptStore.ErrStatusConflict
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &now
	appt.UpdatedAt = now
	return nil
}

type fakePublisher struct {
	published []events.Event
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	provider  = domain.Actor{UserID: 7, Role: domain.RoleProvider}
	requester = domain.Actor{UserID: 42, Role: domain.RoleRequester}
	stranger  = domain.Actor{UserID: 1000, Role: domain.RoleRequester}
)

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          1,
		ProviderID:  7,
		RequesterID: 42,
		ServiceID:   3,
		Date:        time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      domain.StatusPending,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("participant sees the appointment", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingAppointment()), &fakePublisher{}, nopLogger{})

		resp, err := svc.GetByID(context.Background(), 1, requester)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2025-10-13", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)

		_, err = svc.GetByID(context.Background(), 1, provider)
		require.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingAppointment()), &fakePublisher{}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 1, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("provider role with requester id is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingAppointment()), &fakePublisher{}, nopLogger{})

		// Участник с чужой ролью участником не считается
		impostor := domain.Actor{UserID: 42, Role: domain.RoleProvider}
		_, err := svc.GetByID(context.Background(), 1, impostor)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakePublisher{}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 404, requester)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		name      string
		actor     domain.Actor
		from      domain.AppointmentStatus
		to        string
		wantErr   error
		wantFinal domain.AppointmentStatus
	}{
		{name: "provider confirms pending", actor: provider, from: domain.StatusPending, to: "confirmed", wantFinal: domain.StatusConfirmed},
		{name: "provider completes confirmed", actor: provider, from: domain.StatusConfirmed, to: "completed", wantFinal: domain.StatusCompleted},
		{name: "provider cannot complete pending", actor: provider, from: domain.StatusPending, to: "completed", wantErr: ErrForbiddenTransition},
		{name: "requester cannot confirm", actor: requester, from: domain.StatusPending, to: "confirmed", wantErr: ErrForbiddenTransition},
		{name: "requester cannot complete", actor: requester, from: domain.StatusConfirmed, to: "completed", wantErr: ErrForbiddenTransition},
		{name: "cancelled is terminal", actor: provider, from: domain.StatusCancelled, to: "confirmed", wantErr: ErrForbiddenTransition},
		{name: "completed is terminal", actor: provider, from: domain.StatusCompleted, to: "cancelled", wantErr: ErrForbiddenTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = tt.from
			repo := newFakeRepo(appt)
			publisher := &fakePublisher{}
			svc := NewService(repo, publisher, nopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), 1, tt.to, tt.actor)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, publisher.published)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.wantFinal), resp.Status)

			require.Len(t, publisher.published, 1)
			event := publisher.published[0]
			assert.Equal(t, events.TypeAppointmentStatusChanged, event.Type)
			require.NotNil(t, event.OldStatus)
			assert.Equal(t, string(tt.from), *event.OldStatus)
			assert.Equal(t, string(tt.wantFinal), event.NewStatus)
		})
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeRepo(pendingAppointment()), &fakePublisher{}, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, "archived", provider)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel(t *testing.T) {
	t.Run("requester cancels own pending appointment", func(t *testing.T) {
		repo := newFakeRepo(pendingAppointment())
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		resp, err := svc.Cancel(context.Background(), 1, requester)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.NotNil(t, resp.CancelledAt)

		// Отмена идёт через Cancel, чтобы зафиксировать cancelled_at
		assert.Equal(t, 1, repo.cancelCalls)
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("provider cancels confirmed appointment", func(t *testing.T) {
		appt := pendingAppointment()
		appt.Status = domain.StatusConfirmed
		svc := NewService(newFakeRepo(appt), &fakePublisher{}, nopLogger{})

		resp, err := svc.Cancel(context.Background(), 1, provider)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("double cancel is forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingAppointment()), &fakePublisher{}, nopLogger{})

		_, err := svc.Cancel(context.Background(), 1, requester)
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), 1, requester)
		assert.ErrorIs(t, err, ErrForbiddenTransition)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingAppointment()), &fakePublisher{}, nopLogger{})

		_, err := svc.Cancel(context.Background(), 1, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestTransition_ConcurrentStatusChangeRejected(t *testing.T) {
	// Запись уже отменена, но первое чтение возвращает устаревший
	// статус confirmed: compare-and-set в хранилище не проходит
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	repo := newFakeRepo(appt)
	confirmed := domain.StatusConfirmed
	repo.staleReadStatus = &confirmed

	publisher := &fakePublisher{}
	svc := NewService(repo, publisher, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, "completed", provider)
	assert.ErrorIs(t, err, ErrForbiddenTransition)
	assert.Empty(t, publisher.published)
	assert.Equal(t, domain.StatusCancelled, repo.byID[1].Status)
}

func TestTransition_PublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	svc := NewService(newFakeRepo(pendingAppointment()), publisher, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, requester)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestGetRequesterAppointments(t *testing.T) {
	t.Run("owner sees own history", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listByRequester = []*domain.Appointment{pendingAppointment()}
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		resp, err := svc.GetRequesterAppointments(context.Background(), &models.GetRequesterAppointmentsRequest{RequesterID: 42}, requester)
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
	})

	t.Run("other user is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakePublisher{}, nopLogger{})

		_, err := svc.GetRequesterAppointments(context.Background(), &models.GetRequesterAppointmentsRequest{RequesterID: 42}, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakePublisher{}, nopLogger{})

		bad := "archived"
		_, err := svc.GetRequesterAppointments(context.Background(), &models.GetRequesterAppointmentsRequest{RequesterID: 42, Status: &bad}, requester)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listErr = errors.New("down")
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		_, err := svc.GetRequesterAppointments(context.Background(), &models.GetRequesterAppointmentsRequest{RequesterID: 42}, requester)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetProviderAppointments(t *testing.T) {
	t.Run("provider sees own calendar", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listByProvider = []*domain.Appointment{pendingAppointment()}
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		resp, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{ProviderID: 7}, provider)
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
	})

	t.Run("requester role is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakePublisher{}, nopLogger{})

		// Даже участник записи не видит весь календарь провайдера
		_, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{ProviderID: 7}, requester)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("other provider is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakePublisher{}, nopLogger{})

		other := domain.Actor{UserID: 8, Role: domain.RoleProvider}
		_, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{ProviderID: 7}, other)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakePublisher{}, nopLogger{})

		bad := "archived"
		_, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{ProviderID: 7, Status: &bad}, provider)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
