package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/httpresp"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

// Blocking a date only affects future bookings; appointments already on the
// date stay untouched.
type BlockedDateHandler struct {
	db *gorm.DB
}

func NewBlockedDateHandler(db *gorm.DB) *BlockedDateHandler {
	return &BlockedDateHandler{db: db}
}

type BlockDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

func (h *BlockedDateHandler) List(c *gin.Context) {
	var dates []models.BlockedDate
	if err := h.db.Order("date ASC").Find(&dates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_dates", "Could not list blocked dates.")
		return
	}

	httpresp.List(c, dates)
}

func (h *BlockedDateHandler) Create(c *gin.Context) {
	var req BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request.")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	blocked := models.BlockedDate{
		Date:   date,
		Reason: req.Reason,
	}

	// The unique index on date is the authority; a failed insert is
	// re-checked so concurrent duplicate blocks surface as validation
	// errors rather than storage failures.
	if err := h.db.Create(&blocked).Error; err != nil {
		var count int64
		h.db.Model(&models.BlockedDate{}).Where("date = ?", date).Count(&count)
		if count > 0 {
			httperr.BadRequest(c, httperr.CodeValidation, "Date is already blocked.")
			return
		}
		httperr.Internal(c, "failed_to_block_date", "Could not block date.")
		return
	}

	httpresp.Created(c, blocked)
}

func (h *BlockedDateHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.BlockedDate{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_unblock_date", "Could not unblock date.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, httperr.CodeNotFound, "Blocked date not found.")
		return
	}

	c.Status(http.StatusNoContent)
}
