package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	whStore "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

type fakeWHRepo struct {
	byID   map[int64]*domain.WorkingWindow
	nextID int64

	createErr error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakeRepo(windows ...*domain.WorkingWindow) *fakeWHRepo {
	repo := &fakeWHRepo{byID: make(map[int64]*domain.WorkingWindow)}
	for _, w := range windows {
		repo.byID[w.ID] = w
		if w.ID > repo.nextID {
			repo.nextID = w.ID
		}
	}
	return repo
}

func (f *fakeWHRepo) Create(_ context.Context, window *domain.WorkingWindow) (*domain.WorkingWindow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *window
	created.ID = f.nextID
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeWHRepo) GetByID(_ context.Context, id int64) (*domain.WorkingWindow, error) {
	window, ok := f.byID[id]
	if !ok {
		return nil, whStore.ErrWindowNotFound
	}
	copied := *window
	return &copied, nil
}

func (f *fakeWHRepo) GetByProvider(_ context.Context, providerID int64) ([]*domain.WorkingWindow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*domain.WorkingWindow
	for _, w := range f.byID {
		if w.ProviderID == providerID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (f *fakeWHRepo) GetByProviderAndDay(_ context.Context, providerID int64, dayOfWeek int) ([]*domain.WorkingWindow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*domain.WorkingWindow
	for _, w := range f.byID {
		if w.ProviderID == providerID && w.DayOfWeek == dayOfWeek {
			result = append(result, w)
		}
	}
	return result, nil
}

func (f *fakeWHRepo) Update(_ context.Context, window *domain.WorkingWindow) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[window.ID]; !ok {
		return whStore.ErrWindowNotFound
	}
	copied := *window
	f.byID[window.ID] = &copied
	return nil
}

func (f *fakeWHRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return whStore.ErrWindowNotFound
	}
	delete(f.byID, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	owner    = domain.Actor{UserID: 7, Role: domain.RoleProvider}
	intruder = domain.Actor{UserID: 8, Role: domain.RoleProvider}
	customer = domain.Actor{UserID: 7, Role: domain.RoleRequester}
)

func mondayWindow() *domain.WorkingWindow {
	return &domain.WorkingWindow{ID: 1, ProviderID: 7, DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"}
}

func createRequest() *models.CreateWindowRequest {
	return &models.CreateWindowRequest{ProviderID: 7, DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"}
}

func TestCreateWindow(t *testing.T) {
	t.Run("owner creates window", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		resp, err := svc.CreateWindow(context.Background(), createRequest(), owner)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ProviderID)
		assert.Equal(t, "14:00", resp.StartTime)
		assert.Equal(t, "18:00", resp.EndTime)
	})

	t.Run("second window same day without overlap", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		resp, err := svc.CreateWindow(context.Background(), createRequest(), owner)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.DayOfWeek)
	})

	t.Run("adjacent window is allowed", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		req := createRequest()
		req.StartTime = "13:00"
		req.EndTime = "17:00"

		_, err := svc.CreateWindow(context.Background(), req, owner)
		require.NoError(t, err)
	})

	t.Run("overlapping window rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		req := createRequest()
		req.StartTime = "12:00"
		req.EndTime = "16:00"

		_, err := svc.CreateWindow(context.Background(), req, owner)
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})

	t.Run("same interval another day is allowed", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		req := createRequest()
		req.DayOfWeek = 2
		req.StartTime = "09:00"
		req.EndTime = "13:00"

		_, err := svc.CreateWindow(context.Background(), req, owner)
		require.NoError(t, err)
	})

	t.Run("other provider denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.CreateWindow(context.Background(), createRequest(), intruder)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("requester role denied even with matching id", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.CreateWindow(context.Background(), createRequest(), customer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("storage overlap race mapped", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = whStore.ErrWindowOverlap
		svc := NewService(repo, nopLogger{})

		_, err := svc.CreateWindow(context.Background(), createRequest(), owner)
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})
}

func TestCreateWindow_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CreateWindowRequest)
		wantErr error
	}{
		{name: "day below range", mutate: func(r *models.CreateWindowRequest) { r.DayOfWeek = -1 }, wantErr: ErrInvalidWindow},
		{name: "day above range", mutate: func(r *models.CreateWindowRequest) { r.DayOfWeek = 7 }, wantErr: ErrInvalidWindow},
		{name: "bad start time", mutate: func(r *models.CreateWindowRequest) { r.StartTime = "9:00" }, wantErr: ErrInvalidWindow},
		{name: "bad end time", mutate: func(r *models.CreateWindowRequest) { r.EndTime = "24:00" }, wantErr: ErrInvalidWindow},
		{name: "start equals end", mutate: func(r *models.CreateWindowRequest) { r.EndTime = r.StartTime }, wantErr: ErrInvalidWindow},
		{name: "start after end", mutate: func(r *models.CreateWindowRequest) { r.StartTime = "19:00" }, wantErr: ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), nopLogger{})

			req := createRequest()
			tt.mutate(req)

			_, err := svc.CreateWindow(context.Background(), req, owner)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateWindow(t *testing.T) {
	t.Run("owner shrinks window", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		req := &models.UpdateWindowRequest{DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00"}
		resp, err := svc.UpdateWindow(context.Background(), 1, req, owner)
		require.NoError(t, err)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "12:00", resp.EndTime)
	})

	t.Run("update does not conflict with itself", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		// Новые границы пересекаются со старыми границами того же окна
		req := &models.UpdateWindowRequest{DayOfWeek: 1, StartTime: "09:30", EndTime: "13:30"}
		resp, err := svc.UpdateWindow(context.Background(), 1, req, owner)
		require.NoError(t, err)
		assert.Equal(t, "09:30", resp.StartTime)
	})

	t.Run("update conflicts with another window", func(t *testing.T) {
		second := &domain.WorkingWindow{ID: 2, ProviderID: 7, DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"}
		svc := NewService(newFakeRepo(mondayWindow(), second), nopLogger{})

		req := &models.UpdateWindowRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "15:00"}
		_, err := svc.UpdateWindow(context.Background(), 1, req, owner)
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		req := &models.UpdateWindowRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"}
		_, err := svc.UpdateWindow(context.Background(), 404, req, owner)
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})

	t.Run("other provider denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		req := &models.UpdateWindowRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"}
		_, err := svc.UpdateWindow(context.Background(), 1, req, intruder)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid bounds", func(t *testing.T) {
		svc := NewService(newFakeRepo(mondayWindow()), nopLogger{})

		req := &models.UpdateWindowRequest{DayOfWeek: 1, StartTime: "13:00", EndTime: "09:00"}
		_, err := svc.UpdateWindow(context.Background(), 1, req, owner)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestDeleteWindow(t *testing.T) {
	t.Run("owner deletes window", func(t *testing.T) {
		repo := newFakeRepo(mondayWindow())
		svc := NewService(repo, nopLogger{})

		require.NoError(t, svc.DeleteWindow(context.Background(), 1, owner))
		assert.Empty(t, repo.byID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		err := svc.DeleteWindow(context.Background(), 404, owner)
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})

	t.Run("other provider denied", func(t *testing.T) {
		repo := newFakeRepo(mondayWindow())
		svc := NewService(repo, nopLogger{})

		err := svc.DeleteWindow(context.Background(), 1, intruder)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Len(t, repo.byID, 1)
	})
}

func TestListWindows(t *testing.T) {
	t.Run("returns provider schedule", func(t *testing.T) {
		second := &domain.WorkingWindow{ID: 2, ProviderID: 7, DayOfWeek: 2, StartTime: "10:00", EndTime: "16:00"}
		foreign := &domain.WorkingWindow{ID: 3, ProviderID: 9, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"}
		svc := NewService(newFakeRepo(mondayWindow(), second, foreign), nopLogger{})

		resp, err := svc.ListWindows(context.Background(), 7)
		require.NoError(t, err)
		assert.Len(t, resp.Windows, 2)
	})

	t.Run("empty schedule is success", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		resp, err := svc.ListWindows(context.Background(), 7)
		require.NoError(t, err)
		assert.Empty(t, resp.Windows)
	})

	t.Run("invalid provider id", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.ListWindows(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listErr = errors.New("down")
		svc := NewService(repo, nopLogger{})

		_, err := svc.ListWindows(context.Background(), 7)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
