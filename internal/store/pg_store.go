package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"meditrack/internal/models"
)

// PostgresStore implements persistence for shift templates, staff shift
// mappings, tasks, and staff accounts, including the read/count/insert
// surface the assignment engine depends on.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListActiveShiftTemplates returns active templates in creation order so the
// resolver's "first match" is deterministic.
func (s *PostgresStore) ListActiveShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+shiftTemplateCols+`
		FROM shift_templates
		WHERE is_active = true
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.ShiftTemplate
	for rows.Next() {
		t, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// ListOnDutyMappings returns the active mappings on the given template, for
// any of the accepted roles, whose effective range covers at.
func (s *PostgresStore) ListOnDutyMappings(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error) {
	roleNames := make([]string, 0, len(roles))
	for _, r := range roles {
		roleNames = append(roleNames, string(r))
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+staffMappingCols+`
		FROM staff_shift_mappings
		WHERE shift_template_id = $1
		  AND role = ANY($2)
		  AND is_active = true
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY created_at, id`,
		shiftTemplateID, roleNames, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*models.StaffShiftMapping
	for rows.Next() {
		m, err := scanStaffMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// CountActiveTasksByStaff counts non-completed tasks per staff member in a
// single grouped query. Staff with no active tasks are absent from the map.
func (s *PostgresStore) CountActiveTasksByStaff(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT assigned_to, COUNT(*)
		FROM tasks
		WHERE assigned_to = ANY($1) AND status <> $2
		GROUP BY assigned_to`,
		staffIDs, string(models.TaskStatusCompleted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64, len(staffIDs))
	for rows.Next() {
		var id uuid.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
