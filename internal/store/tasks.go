package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meditrack/internal/models"
)

const taskCols = `id, task_type, description, assigned_to, staff_name, role,
	status, related_visit_id, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.TaskType, &t.Description, &t.AssignedTo, &t.StaffName,
		&t.Role, &t.Status, &t.RelatedVisitID, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

// SaveTask inserts a freshly assigned task, allocating its id.
func (s *PostgresStore) SaveTask(ctx context.Context, t *models.Task) error {
	t.ID = uuid.New()
	return s.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, task_type, description, assigned_to, staff_name, role, status, related_visit_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		t.ID, t.TaskType, t.Description, t.AssignedTo, t.StaffName,
		t.Role, t.Status, t.RelatedVisitID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (s *PostgresStore) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx,
		`SELECT `+taskCols+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// ListTasks returns every task, newest first.
func (s *PostgresStore) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return s.listTasks(ctx, `SELECT `+taskCols+` FROM tasks ORDER BY created_at DESC, id`)
}

// ListTasksByStaff returns the tasks assigned to one staff member, newest first.
func (s *PostgresStore) ListTasksByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.Task, error) {
	return s.listTasks(ctx,
		`SELECT `+taskCols+` FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC, id`,
		staffID)
}

func (s *PostgresStore) listTasks(ctx context.Context, query string, args ...interface{}) ([]*models.Task, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus sets a task's status and returns the updated row.
func (s *PostgresStore) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, `
		UPDATE tasks SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+taskCols,
		id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}
