package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	"github.com/AutoCareServices/carcare-scheduler/internal/config"
	"github.com/AutoCareServices/carcare-scheduler/internal/handlers"
	infraRepo "github.com/AutoCareServices/carcare-scheduler/internal/infra/repository"
	"github.com/AutoCareServices/carcare-scheduler/internal/middleware"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
	ucAppointment "github.com/AutoCareServices/carcare-scheduler/internal/usecase/appointment"
	ucStock "github.com/AutoCareServices/carcare-scheduler/internal/usecase/stock"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	materialRepo := infraRepo.NewMaterialGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	loc := cfg.Location()

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		loc,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	assignExecutorUC := ucAppointment.NewAssignExecutor(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
	)

	// ======================================================
	// USE CASES — STOCK LEDGER
	// ======================================================
	recordUsageUC := ucStock.NewRecordUsage(
		appointmentRepo,
		materialRepo,
		auditDispatcher,
	)

	restockUC := ucStock.NewRestockMaterial(
		materialRepo,
		auditDispatcher,
	)

	listMaterialsUC := ucStock.NewListMaterials(materialRepo)
	computeAlertsUC := ucStock.NewComputeAlerts(materialRepo)
	exportReportUC := ucStock.NewExportStockReport(materialRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	blockedDateHandler := handlers.NewBlockedDateHandler(db)

	materialHandler := handlers.NewMaterialHandler(
		db,
		listMaterialsUC,
		restockUC,
		materialRepo,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		transitionAppointmentUC,
		assignExecutorUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		recordUsageUC,
		appointmentRepo,
		materialRepo,
	)

	alertsHandler := handlers.NewAlertsHandler(computeAlertsUC)
	reportHandler := handlers.NewReportHandler(exportReportUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Catalog browsing is open so clients can pick a service
		// before logging in.
		api.GET("/services", serviceHandler.List)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id/materials", appointmentHandler.ListUsage)

			// The handler limits clients to cancelling their own booking;
			// staff may apply any legal transition.
			secured.PATCH("/appointments/:id/status", appointmentHandler.Transition)

			staff := secured.Group("/")
			staff.Use(middleware.RequireRole(models.RoleExecutor, models.RoleAdmin))
			{
				staff.POST("/appointments/:id/materials", appointmentHandler.ConsumeMaterials)

				staff.GET("/materials", materialHandler.List)
				staff.GET("/materials/:id/restocks", materialHandler.ListRestocks)
				staff.GET("/alerts", alertsHandler.Get)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)

				admin.POST("/materials", materialHandler.Create)
				admin.PATCH("/materials/:id", materialHandler.Update)
				admin.POST("/materials/:id/restock", materialHandler.Restock)

				admin.PATCH("/appointments/:id/executor", appointmentHandler.AssignExecutor)
				admin.DELETE("/appointments/:id", appointmentHandler.Delete)

				admin.GET("/blocked-dates", blockedDateHandler.List)
				admin.POST("/blocked-dates", blockedDateHandler.Create)
				admin.DELETE("/blocked-dates/:id", blockedDateHandler.Delete)

				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)

				admin.GET("/reports/stock", reportHandler.StockReport)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
