package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meditrack/internal/models"
)

// ErrInvalidTaskType is returned when a task type has no required role.
var ErrInvalidTaskType = errors.New("invalid task type")

const (
	// MsgAssigned and MsgNoStaff are the outcome messages returned with a
	// created task.
	MsgAssigned = "Task created and assigned successfully"
	MsgNoStaff  = "Task created but no staff available for assignment"
)

// Engine creates tasks and assigns them to the least-loaded staff member on
// the currently active shift. Each call is a bounded sequence of reads
// followed by a single task insert; two concurrent calls may both pick the
// same least-loaded staff member, which is accepted best-effort behavior.
type Engine struct {
	db  DataStore
	now func() time.Time
}

func NewEngine(db DataStore) *Engine {
	return &Engine{
		db:  db,
		now: time.Now,
	}
}

type CreateTaskRequest struct {
	TaskType       models.TaskType
	Description    string
	RelatedVisitID *uuid.UUID
}

// CreateAndAssign derives the required role from the task type, picks the
// least-loaded on-duty staff member for it, and persists the task. When
// nobody eligible is on duty the task is still created, unassigned, in the
// "Pending - No Staff Available" state; absence of capacity is data, not
// failure. The returned message distinguishes the two outcomes.
func (e *Engine) CreateAndAssign(ctx context.Context, req CreateTaskRequest) (*models.Task, string, error) {
	role, ok := models.RequiredRole(req.TaskType)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidTaskType, req.TaskType)
	}

	at := e.now()

	candidates, err := e.FindOnDutyStaff(ctx, role, at)
	if err != nil {
		return nil, "", err
	}

	selected, err := e.SelectLeastLoaded(ctx, candidates)
	if err != nil {
		return nil, "", err
	}

	task := &models.Task{
		TaskType:       req.TaskType,
		Description:    req.Description,
		Role:           role,
		RelatedVisitID: req.RelatedVisitID,
	}

	msg := MsgNoStaff
	if selected != nil {
		staffID := selected.StaffID
		task.AssignedTo = &staffID
		task.StaffName = selected.StaffName
		task.Status = models.TaskStatusPending
		msg = MsgAssigned
	} else {
		task.StaffName = models.UnassignedStaffName
		task.Status = models.TaskStatusNoStaff
	}

	if err := e.db.SaveTask(ctx, task); err != nil {
		return nil, "", err
	}

	return task, msg, nil
}

// ResolveActiveShift returns the first active template whose window contains
// the time of day of at, or nil when no shift is in effect. A nil result is
// a normal outcome, not an error.
func (e *Engine) ResolveActiveShift(ctx context.Context, at time.Time) (*models.ShiftTemplate, error) {
	templates, err := e.db.ListActiveShiftTemplates(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range templates {
		if t.Contains(at) {
			return t, nil
		}
	}
	return nil, nil
}

// FindOnDutyStaff returns the staff mappings eligible to receive work for
// role at the instant at. Nobody is on duty outside an active shift window.
func (e *Engine) FindOnDutyStaff(ctx context.Context, role models.Role, at time.Time) ([]*models.StaffShiftMapping, error) {
	shift, err := e.ResolveActiveShift(ctx, at)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return []*models.StaffShiftMapping{}, nil
	}

	return e.db.ListOnDutyMappings(ctx, shift.ID, models.AcceptedRoles(role), at)
}

// SelectLeastLoaded picks the candidate with the fewest non-completed tasks.
// Ties resolve to the first candidate in input order. Returns nil for an
// empty candidate set.
func (e *Engine) SelectLeastLoaded(ctx context.Context, candidates []*models.StaffShiftMapping) (*models.StaffShiftMapping, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.StaffID)
	}

	counts, err := e.db.CountActiveTasksByStaff(ctx, ids)
	if err != nil {
		return nil, err
	}

	best := candidates[0]
	minLoad := counts[best.StaffID]
	for _, c := range candidates[1:] {
		if load := counts[c.StaffID]; load < minLoad {
			minLoad = load
			best = c
		}
	}
	return best, nil
}
