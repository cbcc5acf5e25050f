package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"meditrack/internal/models"
)

type MockDataStore struct {
	ListActiveShiftTemplatesFunc func(ctx context.Context) ([]*models.ShiftTemplate, error)
	ListOnDutyMappingsFunc       func(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error)
	CountActiveTasksByStaffFunc  func(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	SaveTaskFunc                 func(ctx context.Context, task *models.Task) error
}

func (m *MockDataStore) ListActiveShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error) {
	return m.ListActiveShiftTemplatesFunc(ctx)
}

func (m *MockDataStore) ListOnDutyMappings(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error) {
	return m.ListOnDutyMappingsFunc(ctx, shiftTemplateID, roles, at)
}

func (m *MockDataStore) CountActiveTasksByStaff(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountActiveTasksByStaffFunc != nil {
		return m.CountActiveTasksByStaffFunc(ctx, staffIDs)
	}
	return make(map[uuid.UUID]int64), nil
}

func (m *MockDataStore) SaveTask(ctx context.Context, task *models.Task) error {
	if m.SaveTaskFunc != nil {
		return m.SaveTaskFunc(ctx, task)
	}
	return nil
}
