package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/httpresp"
	ucStock "github.com/AutoCareServices/carcare-scheduler/internal/usecase/stock"
)

type AlertsHandler struct {
	alertsUC *ucStock.ComputeAlerts
}

func NewAlertsHandler(alertsUC *ucStock.ComputeAlerts) *AlertsHandler {
	return &AlertsHandler{alertsUC: alertsUC}
}

func (h *AlertsHandler) Get(c *gin.Context) {
	summary, err := h.alertsUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_compute_alerts", "Could not compute stock alerts.")
		return
	}

	httpresp.OK(c, summary)
}
