package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carcare_appointments_created_total",
		Help: "Appointments accepted into status booked.",
	})

	AppointmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carcare_appointment_transitions_total",
		Help: "Successful appointment status transitions by target status.",
	}, []string{"status"})

	UsageRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carcare_material_usage_records_total",
		Help: "Material usage rows written by consumption batches.",
	})

	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carcare_insufficient_stock_rejections_total",
		Help: "Consumption batches rejected because a line exceeded stock.",
	})

	Restocks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carcare_restocks_total",
		Help: "Restock transactions applied.",
	})

	CriticalStockMaterials = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carcare_critical_stock_materials",
		Help: "Active materials at or below their minimum stock level, as of the last alert computation.",
	})
)
