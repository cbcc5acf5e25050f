package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meditrack/internal/models"
)

const staffCols = `id, name, email, role, password_hash, is_active, created_at, updated_at`

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var st models.Staff
	err := row.Scan(&st.ID, &st.Name, &st.Email, &st.Role, &st.PasswordHash,
		&st.IsActive, &st.CreatedAt, &st.UpdatedAt)
	return &st, err
}

func (s *PostgresStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	st.ID = uuid.New()
	return s.pool.QueryRow(ctx, `
		INSERT INTO staff (id, name, email, role, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		st.ID, st.Name, st.Email, st.Role, st.PasswordHash, st.IsActive).
		Scan(&st.CreatedAt, &st.UpdatedAt)
}

func (s *PostgresStore) GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	st, err := scanStaff(s.pool.QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return st, err
}

func (s *PostgresStore) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	st, err := scanStaff(s.pool.QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return st, err
}

func (s *PostgresStore) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+staffCols+` FROM staff ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []*models.Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, st)
	}
	return staff, rows.Err()
}
