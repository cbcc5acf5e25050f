package httpapi

import (
	"context"
	"time"

	"github.com/google/uuid"

	"meditrack/internal/models"
	"meditrack/internal/store"
)

// mockStore implements Store with overridable functions. Methods without an
// override return zero values.
type mockStore struct {
	CreateShiftTemplateFunc func(ctx context.Context, t *models.ShiftTemplate) error
	GetShiftTemplateFunc    func(ctx context.Context, id uuid.UUID) (*models.ShiftTemplate, error)
	ListShiftTemplatesFunc  func(ctx context.Context) ([]*models.ShiftTemplate, error)
	UpdateShiftTemplateFunc func(ctx context.Context, t *models.ShiftTemplate) error
	DeleteShiftTemplateFunc func(ctx context.Context, id uuid.UUID) error

	CreateStaffShiftMappingFunc    func(ctx context.Context, m *models.StaffShiftMapping) error
	GetStaffShiftMappingFunc       func(ctx context.Context, id uuid.UUID) (*models.StaffShiftMapping, error)
	ListStaffShiftMappingsFunc     func(ctx context.Context, f store.MappingFilter) ([]*models.StaffShiftMapping, error)
	SetStaffShiftMappingActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error
	DeleteStaffShiftMappingFunc    func(ctx context.Context, id uuid.UUID) error

	GetTaskFunc          func(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListTasksFunc        func(ctx context.Context) ([]*models.Task, error)
	ListTasksByStaffFunc func(ctx context.Context, staffID uuid.UUID) ([]*models.Task, error)
	UpdateTaskStatusFunc func(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error)

	CreateStaffFunc     func(ctx context.Context, st *models.Staff) error
	GetStaffFunc        func(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	GetStaffByEmailFunc func(ctx context.Context, email string) (*models.Staff, error)
	ListStaffFunc       func(ctx context.Context) ([]*models.Staff, error)
}

func (m *mockStore) CreateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error {
	if m.CreateShiftTemplateFunc != nil {
		return m.CreateShiftTemplateFunc(ctx, t)
	}
	t.ID = uuid.New()
	return nil
}

func (m *mockStore) GetShiftTemplate(ctx context.Context, id uuid.UUID) (*models.ShiftTemplate, error) {
	if m.GetShiftTemplateFunc != nil {
		return m.GetShiftTemplateFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) ListShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error) {
	if m.ListShiftTemplatesFunc != nil {
		return m.ListShiftTemplatesFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) UpdateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error {
	if m.UpdateShiftTemplateFunc != nil {
		return m.UpdateShiftTemplateFunc(ctx, t)
	}
	return nil
}

func (m *mockStore) DeleteShiftTemplate(ctx context.Context, id uuid.UUID) error {
	if m.DeleteShiftTemplateFunc != nil {
		return m.DeleteShiftTemplateFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) CreateStaffShiftMapping(ctx context.Context, mp *models.StaffShiftMapping) error {
	if m.CreateStaffShiftMappingFunc != nil {
		return m.CreateStaffShiftMappingFunc(ctx, mp)
	}
	mp.ID = uuid.New()
	return nil
}

func (m *mockStore) GetStaffShiftMapping(ctx context.Context, id uuid.UUID) (*models.StaffShiftMapping, error) {
	if m.GetStaffShiftMappingFunc != nil {
		return m.GetStaffShiftMappingFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) ListStaffShiftMappings(ctx context.Context, f store.MappingFilter) ([]*models.StaffShiftMapping, error) {
	if m.ListStaffShiftMappingsFunc != nil {
		return m.ListStaffShiftMappingsFunc(ctx, f)
	}
	return nil, nil
}

func (m *mockStore) SetStaffShiftMappingActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetStaffShiftMappingActiveFunc != nil {
		return m.SetStaffShiftMappingActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *mockStore) DeleteStaffShiftMapping(ctx context.Context, id uuid.UUID) error {
	if m.DeleteStaffShiftMappingFunc != nil {
		return m.DeleteStaffShiftMappingFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) ListTasks(ctx context.Context) ([]*models.Task, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) ListTasksByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.Task, error) {
	if m.ListTasksByStaffFunc != nil {
		return m.ListTasksByStaffFunc(ctx, staffID)
	}
	return nil, nil
}

func (m *mockStore) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	if m.UpdateTaskStatusFunc != nil {
		return m.UpdateTaskStatusFunc(ctx, id, status)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	if m.CreateStaffFunc != nil {
		return m.CreateStaffFunc(ctx, st)
	}
	st.ID = uuid.New()
	return nil
}

func (m *mockStore) GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	if m.GetStaffFunc != nil {
		return m.GetStaffFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	if m.GetStaffByEmailFunc != nil {
		return m.GetStaffByEmailFunc(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	if m.ListStaffFunc != nil {
		return m.ListStaffFunc(ctx)
	}
	return nil, nil
}

// mockEngineStore backs the assignment engine in handler tests.
type mockEngineStore struct {
	ListActiveShiftTemplatesFunc func(ctx context.Context) ([]*models.ShiftTemplate, error)
	ListOnDutyMappingsFunc       func(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error)
	CountActiveTasksByStaffFunc  func(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	SaveTaskFunc                 func(ctx context.Context, task *models.Task) error
}

func (m *mockEngineStore) ListActiveShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error) {
	if m.ListActiveShiftTemplatesFunc != nil {
		return m.ListActiveShiftTemplatesFunc(ctx)
	}
	return nil, nil
}

func (m *mockEngineStore) ListOnDutyMappings(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error) {
	if m.ListOnDutyMappingsFunc != nil {
		return m.ListOnDutyMappingsFunc(ctx, shiftTemplateID, roles, at)
	}
	return nil, nil
}

func (m *mockEngineStore) CountActiveTasksByStaff(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountActiveTasksByStaffFunc != nil {
		return m.CountActiveTasksByStaffFunc(ctx, staffIDs)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *mockEngineStore) SaveTask(ctx context.Context, task *models.Task) error {
	if m.SaveTaskFunc != nil {
		return m.SaveTaskFunc(ctx, task)
	}
	task.ID = uuid.New()
	return nil
}
