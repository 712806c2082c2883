package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	dbpkg "github.com/AutoCareServices/carcare-scheduler/internal/db"
	apDomain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	infraRepo "github.com/AutoCareServices/carcare-scheduler/internal/infra/repository"
	"github.com/AutoCareServices/carcare-scheduler/internal/middleware"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
	ucAppointment "github.com/AutoCareServices/carcare-scheduler/internal/usecase/appointment"
	ucStock "github.com/AutoCareServices/carcare-scheduler/internal/usecase/stock"
)

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, role string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test " + role,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedAppointment(t *testing.T, gdb *gorm.DB, clientID uint, status apDomain.Status) *models.Appointment {
	t.Helper()

	svc := models.Service{Name: "Wash", Price: 40, DurationMin: 30, Active: true}
	if err := gdb.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	ap := models.Appointment{
		Reference: uuid.New(),
		ServiceID: svc.ID,
		ClientID:  clientID,
		Status:    string(status),
		Price:     svc.Price,
	}
	if err := gdb.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return &ap
}

func newAppointmentHandler(gdb *gorm.DB) *AppointmentHandler {
	apRepo := infraRepo.NewAppointmentGormRepository(gdb)
	matRepo := infraRepo.NewMaterialGormRepository(gdb)
	disp := audit.NewDispatcher(audit.New(gdb), zap.NewNop())

	return NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(apRepo, disp, time.UTC),
		ucAppointment.NewTransitionAppointment(apRepo, disp),
		ucAppointment.NewAssignExecutor(apRepo, disp),
		ucAppointment.NewDeleteAppointment(apRepo, disp),
		ucAppointment.NewListAppointments(apRepo),
		ucStock.NewRecordUsage(apRepo, matRepo, disp),
		apRepo,
		matRepo,
	)
}

// newAuthedRouter wires the handler behind a stub identity, standing in for
// the JWT middleware.
func newAuthedRouter(h *AppointmentHandler, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	})

	r.PATCH("/api/appointments/:id/status", h.Transition)
	r.GET("/api/appointments/:id/materials", h.ListUsage)
	return r
}

func patchStatus(r *gin.Engine, appointmentID uint, status string) *httptest.ResponseRecorder {
	body := strings.NewReader(fmt.Sprintf(`{"status":%q}`, status))
	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/api/appointments/%d/status", appointmentID), body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --------------------------------------------------
// Transition authorization
// --------------------------------------------------

func TestTransitionRoute_ClientCancelsOwnAppointment(t *testing.T) {
	gdb := newTestDB(t)
	client := seedUser(t, gdb, models.RoleClient)
	ap := seedAppointment(t, gdb, client.ID, apDomain.StatusBooked)

	h := newAppointmentHandler(gdb)
	r := newAuthedRouter(h, client.ID, models.RoleClient)

	w := patchStatus(r, ap.ID, "cancelled")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Appointment
	gdb.First(&stored, ap.ID)
	if stored.Status != string(apDomain.StatusCancelled) {
		t.Errorf("expected cancelled, got %s", stored.Status)
	}
}

func TestTransitionRoute_ClientCannotCancelOthersAppointment(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedUser(t, gdb, models.RoleClient)
	other := seedUser(t, gdb, models.RoleClient)
	ap := seedAppointment(t, gdb, owner.ID, apDomain.StatusBooked)

	h := newAppointmentHandler(gdb)
	r := newAuthedRouter(h, other.ID, models.RoleClient)

	w := patchStatus(r, ap.ID, "cancelled")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Appointment
	gdb.First(&stored, ap.ID)
	if stored.Status != string(apDomain.StatusBooked) {
		t.Errorf("status mutated to %s", stored.Status)
	}
}

func TestTransitionRoute_ClientCannotStartOwnAppointment(t *testing.T) {
	gdb := newTestDB(t)
	client := seedUser(t, gdb, models.RoleClient)
	ap := seedAppointment(t, gdb, client.ID, apDomain.StatusBooked)

	h := newAppointmentHandler(gdb)
	r := newAuthedRouter(h, client.ID, models.RoleClient)

	w := patchStatus(r, ap.ID, "in_progress")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTransitionRoute_ExecutorStartsAppointment(t *testing.T) {
	gdb := newTestDB(t)
	client := seedUser(t, gdb, models.RoleClient)
	executor := seedUser(t, gdb, models.RoleExecutor)
	ap := seedAppointment(t, gdb, client.ID, apDomain.StatusBooked)

	h := newAppointmentHandler(gdb)
	r := newAuthedRouter(h, executor.ID, models.RoleExecutor)

	w := patchStatus(r, ap.ID, "in_progress")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

// --------------------------------------------------
// Usage listing authorization
// --------------------------------------------------

func TestListUsageRoute_ClientScopedToOwnAppointment(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedUser(t, gdb, models.RoleClient)
	other := seedUser(t, gdb, models.RoleClient)
	ap := seedAppointment(t, gdb, owner.ID, apDomain.StatusCompleted)

	h := newAppointmentHandler(gdb)

	url := fmt.Sprintf("/api/appointments/%d/materials", ap.ID)

	w := httptest.NewRecorder()
	newAuthedRouter(h, owner.ID, models.RoleClient).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	newAuthedRouter(h, other.ID, models.RoleClient).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("other client: expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListUsageRoute_StaffNotScoped(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedUser(t, gdb, models.RoleClient)
	executor := seedUser(t, gdb, models.RoleExecutor)
	ap := seedAppointment(t, gdb, owner.ID, apDomain.StatusInProgress)

	h := newAppointmentHandler(gdb)
	r := newAuthedRouter(h, executor.ID, models.RoleExecutor)

	url := fmt.Sprintf("/api/appointments/%d/materials", ap.ID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
