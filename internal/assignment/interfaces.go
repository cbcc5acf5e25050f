package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"meditrack/internal/models"
)

// DataStore defines the persistence operations the engine needs. The engine
// only ever reads templates, mappings, and task counts, and writes the one
// task it creates.
type DataStore interface {
	// ListActiveShiftTemplates returns templates with isActive=true in a
	// stable order (creation order).
	ListActiveShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error)

	// ListOnDutyMappings returns active mappings for the given template
	// whose role is in roles and whose effective range covers at.
	ListOnDutyMappings(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error)

	// CountActiveTasksByStaff returns, per staff id, the number of tasks
	// assigned to them whose status is not Completed. Staff with no such
	// tasks may be absent from the map.
	CountActiveTasksByStaff(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	SaveTask(ctx context.Context, task *models.Task) error
}
