package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meditrack/internal/models"
)

const shiftTemplateCols = `id, name, start_time, end_time, is_active, created_at, updated_at`

func scanShiftTemplate(row pgx.Row) (*models.ShiftTemplate, error) {
	var t models.ShiftTemplate
	err := row.Scan(&t.ID, &t.Name, &t.StartTime, &t.EndTime, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (s *PostgresStore) CreateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error {
	t.ID = uuid.New()
	return s.pool.QueryRow(ctx, `
		INSERT INTO shift_templates (id, name, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		t.ID, t.Name, t.StartTime, t.EndTime, t.IsActive).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (s *PostgresStore) GetShiftTemplate(ctx context.Context, id uuid.UUID) (*models.ShiftTemplate, error) {
	t, err := scanShiftTemplate(s.pool.QueryRow(ctx,
		`SELECT `+shiftTemplateCols+` FROM shift_templates WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *PostgresStore) ListShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+shiftTemplateCols+` FROM shift_templates ORDER BY created_at, id`)
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

func (s *PostgresStore) UpdateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE shift_templates
		SET name = $2, start_time = $3, end_time = $4, is_active = $5, updated_at = now()
		WHERE id = $1`,
		t.ID, t.Name, t.StartTime, t.EndTime, t.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShiftTemplate hard-deletes a template. Historical mappings that
// reference it are left untouched.
func (s *PostgresStore) DeleteShiftTemplate(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM shift_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
