package controller

import (
	"opportunity-report-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

const (
	confirmDeleteReport = "¿Estás seguro de que quieres eliminar este reporte?"
	confirmDeleteUpdate = "¿Estás seguro de que quieres eliminar esta actualización?"
)

// AddRoutes registra las rutas de reportes bajo el grupo recibido.
func (ctl *ReportController) AddRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")

	reports.POST("", ctl.CreateReport)
	reports.GET("", ctl.ListReports)
	reports.GET("/stats", ctl.GetStats)
	reports.GET("/:id", ctl.GetReport)
	reports.PUT("/:id", ctl.EditReport)
	reports.PATCH("/:id/status", ctl.UpdateStatus)
	reports.POST("/:id/updates", ctl.AddUpdate)

	// Rutas destructivas (requieren confirmación)
	reports.DELETE("/:id", middleware.RequireConfirmation(confirmDeleteReport), ctl.DeleteReport)
	reports.DELETE("/:id/updates/:index", middleware.RequireConfirmation(confirmDeleteUpdate), ctl.DeleteUpdate)
}
