package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffShiftMapping assigns one staff member, in one role, to one shift
// template for an effective date range. A nil EffectiveTo means open-ended.
// StaffName is denormalized from the staff record at creation time.
//
// Overlapping mappings for the same staff/role are not prevented; avoiding
// them is the scheduler's responsibility.
type StaffShiftMapping struct {
	ID              uuid.UUID  `json:"id"`
	StaffID         uuid.UUID  `json:"staffId"`
	StaffName       string     `json:"staffName"`
	Role            Role       `json:"role"`
	ShiftTemplateID uuid.UUID  `json:"shiftTemplateId"`
	EffectiveFrom   time.Time  `json:"effectiveFrom"`
	EffectiveTo     *time.Time `json:"effectiveTo"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// InEffect reports whether the mapping covers the instant at.
func (m *StaffShiftMapping) InEffect(at time.Time) bool {
	if m.EffectiveFrom.After(at) {
		return false
	}
	if m.EffectiveTo != nil && m.EffectiveTo.Before(at) {
		return false
	}
	return true
}
