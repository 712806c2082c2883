package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	ucStock "github.com/AutoCareServices/carcare-scheduler/internal/usecase/stock"
)

type ReportHandler struct {
	exportUC *ucStock.ExportStockReport
}

func NewReportHandler(exportUC *ucStock.ExportStockReport) *ReportHandler {
	return &ReportHandler{exportUC: exportUC}
}

func (h *ReportHandler) StockReport(c *gin.Context) {
	f, err := h.exportUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build stock report.")
		return
	}
	defer func() { _ = f.Close() }()

	filename := "stock-report-" + time.Now().Format("2006-01-02") + ".xlsx"

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
