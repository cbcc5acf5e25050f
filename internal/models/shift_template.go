package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ShiftTemplate is a named recurring daily duty window. StartTime and
// EndTime are "HH:MM" 24-hour times of day; a template with EndTime before
// StartTime wraps past midnight.
type ShiftTemplate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShiftTemplateNames is the closed set of allowed template names.
var ShiftTemplateNames = map[string]bool{
	"Morning": true,
	"Evening": true,
	"Night":   true,
	"Custom":  true,
}

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidTimeOfDay reports whether s is a well-formed "HH:MM" 24-hour time.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// Validate checks the fields an admin can set on a template.
func (t *ShiftTemplate) Validate() error {
	if !ShiftTemplateNames[t.Name] {
		return fmt.Errorf("invalid shift template name: %q", t.Name)
	}
	if !ValidTimeOfDay(t.StartTime) {
		return fmt.Errorf("invalid start time: %q", t.StartTime)
	}
	if !ValidTimeOfDay(t.EndTime) {
		return fmt.Errorf("invalid end time: %q", t.EndTime)
	}
	return nil
}

// MinutesOfDay converts "HH:MM" to minutes since midnight. The string must
// already be validated.
func MinutesOfDay(s string) int {
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m
}

// Contains reports whether the time of day of at falls inside the template
// window. The interval is half-open: the start minute is in, the end minute
// is out. When the window wraps midnight (end < start) a time is inside if
// it is at or after the start or strictly before the end. Date and timezone
// context of at are discarded.
func (t *ShiftTemplate) Contains(at time.Time) bool {
	now := at.Hour()*60 + at.Minute()
	start := MinutesOfDay(t.StartTime)
	end := MinutesOfDay(t.EndTime)

	if start <= end {
		return now >= start && now < end
	}
	return now >= start || now < end
}
