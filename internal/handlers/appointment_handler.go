package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apDomain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	stockDomain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/httpresp"
	"github.com/AutoCareServices/carcare-scheduler/internal/middleware"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
	ucAppointment "github.com/AutoCareServices/carcare-scheduler/internal/usecase/appointment"
	ucStock "github.com/AutoCareServices/carcare-scheduler/internal/usecase/stock"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	transitionUC *ucAppointment.TransitionAppointment
	assignUC     *ucAppointment.AssignExecutor
	deleteUC     *ucAppointment.DeleteAppointment
	listUC       *ucAppointment.ListAppointments
	usageUC      *ucStock.RecordUsage
	apRepo       apDomain.Repository
	stockRepo    stockDomain.Repository
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
	assignUC *ucAppointment.AssignExecutor,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
	usageUC *ucStock.RecordUsage,
	apRepo apDomain.Repository,
	stockRepo stockDomain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		assignUC:     assignUC,
		deleteUC:     deleteUC,
		listUC:       listUC,
		usageUC:      usageUC,
		apRepo:       apRepo,
		stockRepo:    stockRepo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignExecutorRequest struct {
	ExecutorID uint `json:"executor_id" binding:"required"`
}

type UsageLineRequest struct {
	MaterialID   uint    `json:"material_id" binding:"required"`
	QuantityUsed float64 `json:"quantity_used" binding:"required"`
	Notes        string  `json:"notes"`
}

type ConsumeMaterialsRequest struct {
	Items []UsageLineRequest `json:"items" binding:"required,min=1,dive"`
}

// ======================================================
// CREATE / LIST
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid booking request.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ServiceID: req.ServiceID,
		ClientID:  clientID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	var filter apDomain.ListFilter

	if s := c.Query("status"); s != "" {
		status := apDomain.Status(s)
		if !status.Valid() {
			httperr.BadRequest(c, httperr.CodeValidation, "Unknown status filter.")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("executor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Invalid executor_id filter.")
			return
		}
		eid := uint(id)
		filter.ExecutorID = &eid
	}
	if v := c.Query("client_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Invalid client_id filter.")
			return
		}
		cid := uint(id)
		filter.ClientID = &cid
	}

	// Clients only ever see their own bookings.
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role == models.RoleClient {
		clientID := c.MustGet(middleware.ContextUserID).(uint)
		filter.ClientID = &clientID
	}

	items, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid transition request.")
		return
	}

	target := apDomain.Status(req.Status)

	// Clients may cancel their own booking; every other transition is
	// reserved for staff.
	if role == models.RoleClient {
		ap, err := h.apRepo.GetAppointment(c.Request.Context(), uint(appointmentID))
		if err != nil {
			httperr.Business(c, err)
			return
		}
		if ap.ClientID != actorID || target != apDomain.StatusCancelled {
			httperr.Forbidden(c, "insufficient_role", "Clients may only cancel their own appointments.")
			return
		}
	}

	ap, err := h.transitionUC.Execute(
		c.Request.Context(),
		uint(appointmentID),
		target,
		actorID,
	)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) AssignExecutor(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	var req AssignExecutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid assignment request.")
		return
	}

	ap, err := h.assignUC.Execute(c.Request.Context(), uint(appointmentID), req.ExecutorID, actorID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(appointmentID), actorID); err != nil {
		httperr.Business(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// MATERIAL USAGE
// ======================================================

func (h *AppointmentHandler) ConsumeMaterials(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	var req ConsumeMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid consumption request.")
		return
	}

	lines := make([]stockDomain.UsageLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, stockDomain.UsageLine{
			MaterialID: item.MaterialID,
			Quantity:   item.QuantityUsed,
			Notes:      item.Notes,
		})
	}

	usages, err := h.usageUC.Execute(c.Request.Context(), uint(appointmentID), lines, actorID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.Created(c, usages)
}

func (h *AppointmentHandler) ListUsage(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	// Clients only ever see their own bookings, same as List.
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role == models.RoleClient {
		clientID := c.MustGet(middleware.ContextUserID).(uint)
		ap, err := h.apRepo.GetAppointment(c.Request.Context(), uint(appointmentID))
		if err != nil {
			httperr.Business(c, err)
			return
		}
		if ap.ClientID != clientID {
			httperr.Forbidden(c, "insufficient_role", "Clients may only view their own appointments.")
			return
		}
	}

	usages, err := h.stockRepo.ListUsageForAppointment(c.Request.Context(), uint(appointmentID))
	if err != nil {
		httperr.Internal(c, "failed_to_list_usage", "Could not list material usage.")
		return
	}

	httpresp.List(c, usages)
}
