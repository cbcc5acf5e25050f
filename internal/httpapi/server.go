// Package httpapi exposes the REST surface: task intake and tracking, the
// admin scheduling endpoints, staff login, and the anomaly prediction proxy.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"meditrack/internal/anomaly"
	"meditrack/internal/assignment"
	"meditrack/internal/middleware"
	"meditrack/internal/models"
	"meditrack/internal/store"
)

// Store is the persistence surface the handlers use, satisfied by
// store.PostgresStore.
type Store interface {
	CreateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error
	GetShiftTemplate(ctx context.Context, id uuid.UUID) (*models.ShiftTemplate, error)
	ListShiftTemplates(ctx context.Context) ([]*models.ShiftTemplate, error)
	UpdateShiftTemplate(ctx context.Context, t *models.ShiftTemplate) error
	DeleteShiftTemplate(ctx context.Context, id uuid.UUID) error

	CreateStaffShiftMapping(ctx context.Context, m *models.StaffShiftMapping) error
	GetStaffShiftMapping(ctx context.Context, id uuid.UUID) (*models.StaffShiftMapping, error)
	ListStaffShiftMappings(ctx context.Context, f store.MappingFilter) ([]*models.StaffShiftMapping, error)
	SetStaffShiftMappingActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteStaffShiftMapping(ctx context.Context, id uuid.UUID) error

	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// ListTasks and ListTasksByStaff return tasks ordered by creation time,
	// newest first.
	ListTasks(ctx context.Context) ([]*models.Task, error)
	ListTasksByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error)

	CreateStaff(ctx context.Context, st *models.Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	ListStaff(ctx context.Context) ([]*models.Staff, error)
}

type Server struct {
	store     Store
	engine    *assignment.Engine
	anomaly   *anomaly.Client
	log       zerolog.Logger
	jwtSecret string
}

func NewServer(st Store, engine *assignment.Engine, ml *anomaly.Client, log zerolog.Logger, jwtSecret string) *Server {
	return &Server{
		store:     st,
		engine:    engine,
		anomaly:   ml,
		log:       log,
		jwtSecret: jwtSecret,
	}
}

// Register wires every route onto e. Roles mirror who touches tasks on the
// floor: doctors order work, the assigned disciplines progress it, admins
// manage schedules.
func (s *Server) Register(e *echo.Echo, corsOrigins []string) {
	e.Use(middleware.Recover(s.log))
	e.Use(middleware.RequestLogger(s.log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", s.health)
	e.POST("/api/auth/login", s.login)

	auth := middleware.Auth(s.jwtSecret)

	// taskReaders see the full task board; assignees are the disciplines
	// tasks get assigned to, and only they (plus admins) progress a task or
	// pull a per-staff queue.
	taskReaders := []models.Role{
		models.RoleDoctor, models.RoleAdmin, models.RoleLab,
		models.RoleLabTechnician, models.RolePharmacist,
	}
	assignees := []models.Role{
		models.RoleLab, models.RoleLabTechnician, models.RolePharmacist,
		models.RoleAdmin,
	}

	tasks := e.Group("/api/tasks", auth)
	tasks.POST("", s.createTask, middleware.RequireRole(models.RoleDoctor, models.RoleAdmin))
	tasks.GET("", s.listTasks, middleware.RequireRole(taskReaders...))
	tasks.GET("/staff/:id", s.listTasksByStaff, middleware.RequireRole(assignees...))
	tasks.PUT("/:id", s.updateTaskStatus, middleware.RequireRole(assignees...))

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	// Schedule reads are open to the roles that plan rosters; writes stay
	// admin-only.
	schedulers := middleware.RequireRole(
		models.RoleAdmin, models.RoleDoctor, models.RoleNurse, models.RoleReception)

	admin := e.Group("/api/admin", auth)
	admin.POST("/shift-templates", s.createShiftTemplate, adminOnly)
	admin.GET("/shift-templates", s.listShiftTemplates, schedulers)
	admin.GET("/shift-templates/:id", s.getShiftTemplate, schedulers)
	admin.PUT("/shift-templates/:id", s.updateShiftTemplate, adminOnly)
	admin.DELETE("/shift-templates/:id", s.deleteShiftTemplate, adminOnly)
	admin.POST("/shift-mappings", s.createShiftMapping, adminOnly)
	admin.GET("/shift-mappings", s.listShiftMappings, schedulers)
	admin.GET("/shift-mappings/:id", s.getShiftMapping, schedulers)
	admin.PUT("/shift-mappings/:id/active", s.setShiftMappingActive, adminOnly)
	admin.DELETE("/shift-mappings/:id", s.deleteShiftMapping, adminOnly)
	admin.POST("/staff", s.createStaff, adminOnly)
	admin.GET("/staff", s.listStaff, adminOnly)

	ml := e.Group("/api/ml", auth)
	ml.POST("/predict", s.predict, middleware.RequireRole(
		models.RoleDoctor, models.RoleNurse, models.RoleAdmin))
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// parseID reads a uuid path parameter, translating garbage into a 400.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
