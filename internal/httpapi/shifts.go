package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"meditrack/internal/models"
	"meditrack/internal/store"
)

type shiftTemplateRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  *bool  `json:"isActive"`
}

func (s *Server) createShiftTemplate(c echo.Context) error {
	var req shiftTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	t := &models.ShiftTemplate{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := t.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.store.CreateShiftTemplate(c.Request().Context(), t); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) listShiftTemplates(c echo.Context) error {
	templates, err := s.store.ListShiftTemplates(c.Request().Context())
	if err != nil {
		return err
	}
	if templates == nil {
		templates = []*models.ShiftTemplate{}
	}
	return c.JSON(http.StatusOK, templates)
}

func (s *Server) getShiftTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := s.store.GetShiftTemplate(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shift template not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) updateShiftTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	t, err := s.store.GetShiftTemplate(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shift template not found")
		}
		return err
	}

	var req shiftTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.StartTime != "" {
		t.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		t.EndTime = req.EndTime
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := t.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.store.UpdateShiftTemplate(c.Request().Context(), t); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// deleteShiftTemplate removes a template. Mappings pointing at it become
// unresolvable and simply never match an active shift again.
func (s *Server) deleteShiftTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := s.store.DeleteShiftTemplate(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shift template not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type shiftMappingRequest struct {
	StaffID         string     `json:"staffId"`
	Role            string     `json:"role"`
	ShiftTemplateID string     `json:"shiftTemplateId"`
	EffectiveFrom   time.Time  `json:"effectiveFrom"`
	EffectiveTo     *time.Time `json:"effectiveTo"`
}

// createShiftMapping puts a staff member on a shift. The staff display name
// is denormalized onto the mapping at creation time.
func (s *Server) createShiftMapping(c echo.Context) error {
	var req shiftMappingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid staffId")
	}
	templateID, err := uuid.Parse(req.ShiftTemplateID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid shiftTemplateId")
	}
	role := models.Role(req.Role)
	if !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	if req.EffectiveFrom.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "effectiveFrom is required")
	}
	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return echo.NewHTTPError(http.StatusBadRequest, "effectiveTo precedes effectiveFrom")
	}

	ctx := c.Request().Context()

	staff, err := s.store.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown staff member")
		}
		return err
	}
	if _, err := s.store.GetShiftTemplate(ctx, templateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown shift template")
		}
		return err
	}

	m := &models.StaffShiftMapping{
		StaffID:         staffID,
		StaffName:       staff.Name,
		Role:            role,
		ShiftTemplateID: templateID,
		EffectiveFrom:   req.EffectiveFrom,
		EffectiveTo:     req.EffectiveTo,
		IsActive:        true,
	}
	if err := s.store.CreateStaffShiftMapping(ctx, m); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (s *Server) getShiftMapping(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := s.store.GetStaffShiftMapping(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shift mapping not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) listShiftMappings(c echo.Context) error {
	var f store.MappingFilter
	if v := c.QueryParam("staffId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid staffId")
		}
		f.StaffID = id
	}
	if v := c.QueryParam("shiftTemplateId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid shiftTemplateId")
		}
		f.ShiftTemplateID = id
	}
	if v := c.QueryParam("role"); v != "" {
		f.Role = models.Role(v)
	}
	f.ActiveOnly = c.QueryParam("active") == "true"

	mappings, err := s.store.ListStaffShiftMappings(c.Request().Context(), f)
	if err != nil {
		return err
	}
	if mappings == nil {
		mappings = []*models.StaffShiftMapping{}
	}
	return c.JSON(http.StatusOK, mappings)
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (s *Server) setShiftMappingActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.store.SetStaffShiftMappingActive(c.Request().Context(), id, req.IsActive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shift mapping not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteShiftMapping(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := s.store.DeleteStaffShiftMapping(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "shift mapping not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
