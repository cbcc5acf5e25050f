package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meditrack/internal/models"
)

const staffMappingCols = `id, staff_id, staff_name, role, shift_template_id,
	effective_from, effective_to, is_active, created_at, updated_at`

func scanStaffMapping(row pgx.Row) (*models.StaffShiftMapping, error) {
	var m models.StaffShiftMapping
	err := row.Scan(&m.ID, &m.StaffID, &m.StaffName, &m.Role, &m.ShiftTemplateID,
		&m.EffectiveFrom, &m.EffectiveTo, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (s *PostgresStore) CreateStaffShiftMapping(ctx context.Context, m *models.StaffShiftMapping) error {
	m.ID = uuid.New()
	return s.pool.QueryRow(ctx, `
		INSERT INTO staff_shift_mappings
			(id, staff_id, staff_name, role, shift_template_id, effective_from, effective_to, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		m.ID, m.StaffID, m.StaffName, m.Role, m.ShiftTemplateID,
		m.EffectiveFrom, m.EffectiveTo, m.IsActive).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

// MappingFilter narrows ListStaffShiftMappings. Zero values mean "no filter".
type MappingFilter struct {
	StaffID         uuid.UUID
	ShiftTemplateID uuid.UUID
	Role            models.Role
	ActiveOnly      bool
}

func (s *PostgresStore) ListStaffShiftMappings(ctx context.Context, f MappingFilter) ([]*models.StaffShiftMapping, error) {
	query := `SELECT ` + staffMappingCols + ` FROM staff_shift_mappings WHERE 1=1`
	args := []interface{}{}

	if f.StaffID != uuid.Nil {
		args = append(args, f.StaffID)
		query += ` AND staff_id = $` + strconv.Itoa(len(args))
	}
	if f.ShiftTemplateID != uuid.Nil {
		args = append(args, f.ShiftTemplateID)
		query += ` AND shift_template_id = $` + strconv.Itoa(len(args))
	}
	if f.Role != "" {
		args = append(args, string(f.Role))
		query += ` AND role = $` + strconv.Itoa(len(args))
	}
	if f.ActiveOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.pool.Query(ctx, query, args...)
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

func (s *PostgresStore) GetStaffShiftMapping(ctx context.Context, id uuid.UUID) (*models.StaffShiftMapping, error) {
	m, err := scanStaffMapping(s.pool.QueryRow(ctx,
		`SELECT `+staffMappingCols+` FROM staff_shift_mappings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// SetStaffShiftMappingActive toggles a mapping without deleting it, the
// usual way schedules are retired.
func (s *PostgresStore) SetStaffShiftMappingActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE staff_shift_mappings SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteStaffShiftMapping(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM staff_shift_mappings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
