// Package seed loads a YAML fixture of shift templates, staff accounts, and
// shift mappings into an empty database. It is meant for development and
// first-boot provisioning, not for ongoing data management.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"meditrack/internal/models"
)

// Store is the slice of persistence the seeder needs.
type Store interface {
	CreateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error
	CreateStaff(ctx context.Context, st *models.Staff) error
	CreateStaffShiftMapping(ctx context.Context, m *models.StaffShiftMapping) error
}

// Fixture is the parsed seed file. Mappings reference templates by name and
// staff by email because ids are assigned at insert time.
type Fixture struct {
	ShiftTemplates []TemplateEntry `yaml:"shift_templates"`
	Staff          []StaffEntry    `yaml:"staff"`
	Mappings       []MappingEntry  `yaml:"mappings"`
}

type TemplateEntry struct {
	Name      string `yaml:"name"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

type StaffEntry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

type MappingEntry struct {
	StaffEmail    string     `yaml:"staff_email"`
	Role          string     `yaml:"role"`
	ShiftTemplate string     `yaml:"shift_template"`
	EffectiveFrom time.Time  `yaml:"effective_from"`
	EffectiveTo   *time.Time `yaml:"effective_to"`
}

// LoadFile parses and validates a fixture file.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses and validates fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	templates := make(map[string]bool, len(f.ShiftTemplates))
	for _, t := range f.ShiftTemplates {
		if !models.ShiftTemplateNames[t.Name] {
			return fmt.Errorf("template %q: unknown name", t.Name)
		}
		if !models.ValidTimeOfDay(t.StartTime) || !models.ValidTimeOfDay(t.EndTime) {
			return fmt.Errorf("template %q: times must be HH:MM", t.Name)
		}
		if templates[t.Name] {
			return fmt.Errorf("template %q: duplicate", t.Name)
		}
		templates[t.Name] = true
	}

	staff := make(map[string]bool, len(f.Staff))
	for _, s := range f.Staff {
		if s.Email == "" || s.Password == "" {
			return fmt.Errorf("staff %q: email and password are required", s.Name)
		}
		if !models.Role(s.Role).Valid() {
			return fmt.Errorf("staff %q: unknown role %q", s.Name, s.Role)
		}
		if staff[s.Email] {
			return fmt.Errorf("staff %q: duplicate email %s", s.Name, s.Email)
		}
		staff[s.Email] = true
	}

	for i, m := range f.Mappings {
		if !staff[m.StaffEmail] {
			return fmt.Errorf("mapping %d: unknown staff email %q", i, m.StaffEmail)
		}
		if !templates[m.ShiftTemplate] {
			return fmt.Errorf("mapping %d: unknown shift template %q", i, m.ShiftTemplate)
		}
		if !models.Role(m.Role).Valid() {
			return fmt.Errorf("mapping %d: unknown role %q", i, m.Role)
		}
		if m.EffectiveFrom.IsZero() {
			return fmt.Errorf("mapping %d: effective_from is required", i)
		}
	}
	return nil
}

// Apply inserts the fixture. It assumes an empty database; uniqueness
// violations from re-running it surface as errors.
func Apply(ctx context.Context, s Store, f *Fixture) error {
	templateIDs := make(map[string]*models.ShiftTemplate, len(f.ShiftTemplates))
	for _, entry := range f.ShiftTemplates {
		t := &models.ShiftTemplate{
			Name:      entry.Name,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			IsActive:  true,
		}
		if err := s.CreateShiftTemplate(ctx, t); err != nil {
			return fmt.Errorf("seed template %q: %w", entry.Name, err)
		}
		templateIDs[entry.Name] = t
	}

	staffByEmail := make(map[string]*models.Staff, len(f.Staff))
	for _, entry := range f.Staff {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed staff %q: %w", entry.Email, err)
		}
		st := &models.Staff{
			Name:         entry.Name,
			Email:        entry.Email,
			Role:         models.Role(entry.Role),
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := s.CreateStaff(ctx, st); err != nil {
			return fmt.Errorf("seed staff %q: %w", entry.Email, err)
		}
		staffByEmail[entry.Email] = st
	}

	for i, entry := range f.Mappings {
		st := staffByEmail[entry.StaffEmail]
		tmpl := templateIDs[entry.ShiftTemplate]
		m := &models.StaffShiftMapping{
			StaffID:         st.ID,
			StaffName:       st.Name,
			Role:            models.Role(entry.Role),
			ShiftTemplateID: tmpl.ID,
			EffectiveFrom:   entry.EffectiveFrom,
			EffectiveTo:     entry.EffectiveTo,
			IsActive:        true,
		}
		if err := s.CreateStaffShiftMapping(ctx, m); err != nil {
			return fmt.Errorf("seed mapping %d: %w", i, err)
		}
	}
	return nil
}
