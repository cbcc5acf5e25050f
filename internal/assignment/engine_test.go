package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"meditrack/internal/models"
)

// setupEngine wires an engine over an in-memory store that honors the
// DataStore contract: only active templates are listed, and mappings are
// filtered by template, role set, active flag, and effective range.
func setupEngine(t testing.TB, templates []*models.ShiftTemplate, mappings []*models.StaffShiftMapping, counts map[uuid.UUID]int64) (*Engine, *MockDataStore) {
	t.Helper()

	mockDB := &MockDataStore{
		ListActiveShiftTemplatesFunc: func(ctx context.Context) ([]*models.ShiftTemplate, error) {
			var active []*models.ShiftTemplate
			for _, tpl := range templates {
				if tpl.IsActive {
					active = append(active, tpl)
				}
			}
			return active, nil
		},
		ListOnDutyMappingsFunc: func(ctx context.Context, shiftTemplateID uuid.UUID, roles []models.Role, at time.Time) ([]*models.StaffShiftMapping, error) {
			roleSet := make(map[models.Role]bool)
			for _, r := range roles {
				roleSet[r] = true
			}
			var result []*models.StaffShiftMapping
			for _, m := range mappings {
				if m.ShiftTemplateID != shiftTemplateID || !m.IsActive {
					continue
				}
				if !roleSet[m.Role] || !m.InEffect(at) {
					continue
				}
				result = append(result, m)
			}
			return result, nil
		},
		CountActiveTasksByStaffFunc: func(ctx context.Context, staffIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
			return counts, nil
		},
	}

	return NewEngine(mockDB), mockDB
}

func at(hour, min int) time.Time {
	return time.Date(2025, 1, 8, hour, min, 0, 0, time.UTC)
}

func morningTemplate() *models.ShiftTemplate {
	return &models.ShiftTemplate{
		ID:        uuid.New(),
		Name:      "Morning",
		StartTime: "08:00",
		EndTime:   "16:00",
		IsActive:  true,
	}
}

func mappingFor(template *models.ShiftTemplate, role models.Role, name string) *models.StaffShiftMapping {
	return &models.StaffShiftMapping{
		ID:              uuid.New(),
		StaffID:         uuid.New(),
		StaffName:       name,
		Role:            role,
		ShiftTemplateID: template.ID,
		EffectiveFrom:   at(0, 0).AddDate(0, -1, 0),
		IsActive:        true,
	}
}

func TestResolveActiveShift_HalfOpenInterval(t *testing.T) {
	tpl := morningTemplate()
	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl}, nil, nil)

	got, err := engine.ResolveActiveShift(context.Background(), at(8, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Error("expected start minute to be in range")
	}

	got, err = engine.ResolveActiveShift(context.Background(), at(16, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected end minute to be out of range")
	}
}

func TestResolveActiveShift_OvernightWindow(t *testing.T) {
	night := &models.ShiftTemplate{
		ID:        uuid.New(),
		Name:      "Night",
		StartTime: "22:00",
		EndTime:   "06:00",
		IsActive:  true,
	}
	engine, _ := setupEngine(t, []*models.ShiftTemplate{night}, nil, nil)

	inRange := []time.Time{at(23, 0), at(0, 0), at(5, 59)}
	for _, tm := range inRange {
		got, err := engine.ResolveActiveShift(context.Background(), tm)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil {
			t.Errorf("expected %s to be inside the overnight window", tm.Format("15:04"))
		}
	}

	outOfRange := []time.Time{at(6, 0), at(12, 0)}
	for _, tm := range outOfRange {
		got, err := engine.ResolveActiveShift(context.Background(), tm)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected %s to be outside the overnight window", tm.Format("15:04"))
		}
	}
}

func TestResolveActiveShift_IgnoresInactiveTemplates(t *testing.T) {
	tpl := morningTemplate()
	tpl.IsActive = false
	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl}, nil, nil)

	got, err := engine.ResolveActiveShift(context.Background(), at(10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected no active shift when all templates are inactive")
	}
}

func TestResolveActiveShift_FirstMatchWins(t *testing.T) {
	first := morningTemplate()
	second := &models.ShiftTemplate{
		ID:        uuid.New(),
		Name:      "Custom",
		StartTime: "09:00",
		EndTime:   "17:00",
		IsActive:  true,
	}
	engine, _ := setupEngine(t, []*models.ShiftTemplate{first, second}, nil, nil)

	got, err := engine.ResolveActiveShift(context.Background(), at(10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Error("expected the first matching template in store order")
	}
}

func TestFindOnDutyStaff_LabAliasAccepted(t *testing.T) {
	tpl := morningTemplate()
	tech := mappingFor(tpl, models.RoleLabTechnician, "Asha")
	legacy := mappingFor(tpl, models.RoleLab, "Ben")
	pharmacist := mappingFor(tpl, models.RolePharmacist, "Carol")

	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{tech, legacy, pharmacist}, nil)

	got, err := engine.FindOnDutyStaff(context.Background(), models.RoleLabTechnician, at(10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected Lab Technician and legacy Lab mappings, got %d", len(got))
	}
}

func TestFindOnDutyStaff_PharmacistExcludesLab(t *testing.T) {
	tpl := morningTemplate()
	legacy := mappingFor(tpl, models.RoleLab, "Ben")
	pharmacist := mappingFor(tpl, models.RolePharmacist, "Carol")

	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{legacy, pharmacist}, nil)

	got, err := engine.FindOnDutyStaff(context.Background(), models.RolePharmacist, at(10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].StaffName != "Carol" {
		t.Fatalf("expected only the Pharmacist mapping, got %d", len(got))
	}
}

func TestFindOnDutyStaff_EffectiveRange(t *testing.T) {
	tpl := morningTemplate()
	now := at(10, 0)

	notYet := mappingFor(tpl, models.RoleLabTechnician, "NotYet")
	notYet.EffectiveFrom = now.AddDate(0, 0, 1)

	expired := mappingFor(tpl, models.RoleLabTechnician, "Expired")
	expiredTo := now.AddDate(0, 0, -1)
	expired.EffectiveTo = &expiredTo

	openEnded := mappingFor(tpl, models.RoleLabTechnician, "OpenEnded")

	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{notYet, expired, openEnded}, nil)

	got, err := engine.FindOnDutyStaff(context.Background(), models.RoleLabTechnician, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].StaffName != "OpenEnded" {
		t.Fatalf("expected only the open-ended mapping, got %d", len(got))
	}
}

func TestFindOnDutyStaff_NoActiveShift(t *testing.T) {
	tpl := morningTemplate()
	tech := mappingFor(tpl, models.RoleLabTechnician, "Asha")

	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{tech}, nil)

	got, err := engine.FindOnDutyStaff(context.Background(), models.RoleLabTechnician, at(20, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected an empty candidate list, not nil")
	}
	if len(got) != 0 {
		t.Error("expected nobody on duty outside any active shift window")
	}
}

func TestSelectLeastLoaded_FirstAmongTies(t *testing.T) {
	tpl := morningTemplate()
	a := mappingFor(tpl, models.RoleLabTechnician, "A")
	b := mappingFor(tpl, models.RoleLabTechnician, "B")
	c := mappingFor(tpl, models.RoleLabTechnician, "C")

	counts := map[uuid.UUID]int64{
		a.StaffID: 3,
		b.StaffID: 1,
		c.StaffID: 1,
	}
	engine, _ := setupEngine(t, nil, nil, counts)

	got, err := engine.SelectLeastLoaded(context.Background(), []*models.StaffShiftMapping{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.StaffName != "B" {
		t.Errorf("expected B (first among ties in input order), got %+v", got)
	}
}

func TestSelectLeastLoaded_Empty(t *testing.T) {
	engine, _ := setupEngine(t, nil, nil, nil)

	got, err := engine.SelectLeastLoaded(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil for an empty candidate set")
	}
}

func TestCreateAndAssign_AssignsOnDutyStaff(t *testing.T) {
	tpl := morningTemplate()
	tech := mappingFor(tpl, models.RoleLabTechnician, "Asha")

	engine, mockDB := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{tech}, nil)
	engine.now = func() time.Time { return at(10, 0) }

	var saved *models.Task
	mockDB.SaveTaskFunc = func(ctx context.Context, task *models.Task) error {
		saved = task
		return nil
	}

	task, msg, err := engine.CreateAndAssign(context.Background(), CreateTaskRequest{
		TaskType:    models.TaskTypeLabTest,
		Description: "CBC for OP-1042",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != models.TaskStatusPending {
		t.Errorf("expected status Pending, got %q", task.Status)
	}
	if task.AssignedTo == nil || *task.AssignedTo != tech.StaffID {
		t.Error("expected task assigned to the on-duty technician")
	}
	if task.StaffName != "Asha" {
		t.Errorf("expected staff name Asha, got %q", task.StaffName)
	}
	if task.Role != models.RoleLabTechnician {
		t.Errorf("expected role Lab Technician, got %q", task.Role)
	}
	if msg != MsgAssigned {
		t.Errorf("unexpected message %q", msg)
	}
	if saved == nil {
		t.Error("expected task to be persisted")
	}
}

func TestCreateAndAssign_NoActiveShift(t *testing.T) {
	tpl := morningTemplate()
	tech := mappingFor(tpl, models.RoleLabTechnician, "Asha")

	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{tech}, nil)
	engine.now = func() time.Time { return at(20, 0) }

	task, msg, err := engine.CreateAndAssign(context.Background(), CreateTaskRequest{
		TaskType:    models.TaskTypeLabTest,
		Description: "CBC for OP-1042",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != models.TaskStatusNoStaff {
		t.Errorf("expected no-staff status, got %q", task.Status)
	}
	if task.AssignedTo != nil {
		t.Error("expected nil assignee")
	}
	if task.StaffName != models.UnassignedStaffName {
		t.Errorf("expected %q, got %q", models.UnassignedStaffName, task.StaffName)
	}
	if task.Role != models.RoleLabTechnician {
		t.Errorf("expected required role recorded even when unassigned, got %q", task.Role)
	}
	if msg != MsgNoStaff {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCreateAndAssign_PicksLeastLoaded(t *testing.T) {
	tpl := morningTemplate()
	busy := mappingFor(tpl, models.RolePharmacist, "Busy")
	idle := mappingFor(tpl, models.RolePharmacist, "Idle")

	counts := map[uuid.UUID]int64{
		busy.StaffID: 4,
		idle.StaffID: 1,
	}
	engine, _ := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{busy, idle}, counts)
	engine.now = func() time.Time { return at(11, 30) }

	task, _, err := engine.CreateAndAssign(context.Background(), CreateTaskRequest{
		TaskType:    models.TaskTypePharmacy,
		Description: "Dispense amoxicillin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.AssignedTo == nil || *task.AssignedTo != idle.StaffID {
		t.Error("expected the pharmacist with the smaller active-task count")
	}
}

func TestCreateAndAssign_InvalidTaskType(t *testing.T) {
	engine, mockDB := setupEngine(t, nil, nil, nil)

	saves := 0
	mockDB.SaveTaskFunc = func(ctx context.Context, task *models.Task) error {
		saves++
		return nil
	}

	_, _, err := engine.CreateAndAssign(context.Background(), CreateTaskRequest{
		TaskType:    "Invalid Type",
		Description: "desc",
	})
	if !errors.Is(err, ErrInvalidTaskType) {
		t.Fatalf("expected ErrInvalidTaskType, got %v", err)
	}
	if saves != 0 {
		t.Error("expected no task to be created")
	}
}

func TestCreateAndAssign_SaveErrorPropagates(t *testing.T) {
	tpl := morningTemplate()
	tech := mappingFor(tpl, models.RoleLabTechnician, "Asha")

	engine, mockDB := setupEngine(t, []*models.ShiftTemplate{tpl},
		[]*models.StaffShiftMapping{tech}, nil)
	engine.now = func() time.Time { return at(10, 0) }

	mockDB.SaveTaskFunc = func(ctx context.Context, task *models.Task) error {
		return errors.New("insert failed")
	}

	_, _, err := engine.CreateAndAssign(context.Background(), CreateTaskRequest{
		TaskType:    models.TaskTypeLabTest,
		Description: "CBC",
	})
	if err == nil {
		t.Fatal("expected storage error to propagate")
	}
}
