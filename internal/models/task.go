package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeLabTest  TaskType = "Lab Test"
	TaskTypePharmacy TaskType = "Pharmacy"
)

// RequiredRole maps a task type to the role that must work it. The second
// return is false for unknown task types.
func RequiredRole(t TaskType) (Role, bool) {
	switch t {
	case TaskTypeLabTest:
		return RoleLabTechnician, true
	case TaskTypePharmacy:
		return RolePharmacist, true
	}
	return "", false
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	// TaskStatusNoStaff marks a task created while nobody eligible was on
	// duty. It stays in this state until a human reassigns it.
	TaskStatusNoStaff TaskStatus = "Pending - No Staff Available"
)

var taskStatuses = map[TaskStatus]bool{
	TaskStatusPending:    true,
	TaskStatusInProgress: true,
	TaskStatusCompleted:  true,
	TaskStatusNoStaff:    true,
}

func (s TaskStatus) Valid() bool {
	return taskStatuses[s]
}

// UnassignedStaffName is the placeholder display name for tasks created with
// no eligible staff on duty.
const UnassignedStaffName = "Unassigned"

// Task is a unit of work produced during a visit (a lab test to run or a
// prescription to dispense). AssignedTo is nil when no staff was available
// at creation time.
type Task struct {
	ID             uuid.UUID  `json:"id"`
	TaskType       TaskType   `json:"taskType"`
	Description    string     `json:"description"`
	AssignedTo     *uuid.UUID `json:"assignedTo"`
	StaffName      string     `json:"staffName"`
	Role           Role       `json:"role"`
	Status         TaskStatus `json:"status"`
	RelatedVisitID *uuid.UUID `json:"relatedVisitId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
