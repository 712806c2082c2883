package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	stockDomain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/httpresp"
	"github.com/AutoCareServices/carcare-scheduler/internal/middleware"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
	ucStock "github.com/AutoCareServices/carcare-scheduler/internal/usecase/stock"
)

// ======================================================
// HANDLER
// ======================================================

type MaterialHandler struct {
	db        *gorm.DB
	listUC    *ucStock.ListMaterials
	restockUC *ucStock.RestockMaterial
	stockRepo stockDomain.Repository
}

func NewMaterialHandler(
	db *gorm.DB,
	listUC *ucStock.ListMaterials,
	restockUC *ucStock.RestockMaterial,
	stockRepo stockDomain.Repository,
) *MaterialHandler {
	return &MaterialHandler{
		db:        db,
		listUC:    listUC,
		restockUC: restockUC,
		stockRepo: stockRepo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateMaterialRequest struct {
	Name          string  `json:"name" binding:"required"`
	Unit          string  `json:"unit" binding:"required"`
	MinStockLevel float64 `json:"min_stock_level" binding:"min=0"`
	PricePerUnit  float64 `json:"price_per_unit" binding:"min=0"`
	Supplier      string  `json:"supplier"`
}

type UpdateMaterialRequest struct {
	Name          *string  `json:"name,omitempty"`
	Unit          *string  `json:"unit,omitempty"`
	MinStockLevel *float64 `json:"min_stock_level,omitempty"`
	PricePerUnit  *float64 `json:"price_per_unit,omitempty"`
	Supplier      *string  `json:"supplier,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

type RestockRequest struct {
	Quantity     float64 `json:"quantity" binding:"required"`
	CostPerUnit  float64 `json:"cost_per_unit" binding:"min=0"`
	SupplierInfo string  `json:"supplier_info"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *MaterialHandler) List(c *gin.Context) {
	filter := stockDomain.ListFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		LowStockOnly: c.Query("low_stock_only") == "true",
	}

	materials, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_materials", "Could not list materials.")
		return
	}

	httpresp.List(c, materials)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	unit := models.Unit(strings.ToLower(req.Unit))
	if !unit.Valid() {
		httperr.BadRequest(c, httperr.CodeValidation, "Unknown material unit.")
		return
	}

	material := models.Material{
		Name:          req.Name,
		Unit:          unit,
		MinStockLevel: req.MinStockLevel,
		PricePerUnit:  req.PricePerUnit,
		Supplier:      req.Supplier,
		Active:        true,
	}

	if err := h.db.Create(&material).Error; err != nil {
		httperr.Internal(c, "failed_to_create_material", "Could not create material.")
		return
	}

	httpresp.Created(c, material)
}

// Update edits master data only; quantity_in_stock is reachable solely
// through the consume and restock ledger operations.
func (h *MaterialHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var material models.Material
	if err := h.db.First(&material, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Material not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_material", "Could not load material.")
		return
	}

	var req UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		material.Name = *req.Name
	}
	if req.Unit != nil {
		unit := models.Unit(strings.ToLower(*req.Unit))
		if !unit.Valid() {
			httperr.BadRequest(c, httperr.CodeValidation, "Unknown material unit.")
			return
		}
		material.Unit = unit
	}
	if req.MinStockLevel != nil {
		material.MinStockLevel = *req.MinStockLevel
	}
	if req.PricePerUnit != nil {
		material.PricePerUnit = *req.PricePerUnit
	}
	if req.Supplier != nil {
		material.Supplier = *req.Supplier
	}
	if req.Active != nil {
		material.Active = *req.Active
	}

	if err := h.db.Save(&material).Error; err != nil {
		httperr.Internal(c, "failed_to_update_material", "Could not update material.")
		return
	}

	httpresp.OK(c, material)
}

// ======================================================
// LEDGER
// ======================================================

func (h *MaterialHandler) Restock(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	materialID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid material id.")
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.restockUC.Execute(c.Request.Context(), ucStock.RestockInput{
		MaterialID:   uint(materialID),
		Quantity:     req.Quantity,
		CostPerUnit:  req.CostPerUnit,
		SupplierInfo: req.SupplierInfo,
	}, actorID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, result)
}

func (h *MaterialHandler) ListRestocks(c *gin.Context) {
	materialID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid material id.")
		return
	}

	recs, err := h.stockRepo.ListRestocks(c.Request.Context(), uint(materialID))
	if err != nil {
		httperr.Internal(c, "failed_to_list_restocks", "Could not list restock history.")
		return
	}

	httpresp.List(c, recs)
}
