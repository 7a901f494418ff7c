package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"opportunity-report-service/internal/dto"
	"opportunity-report-service/internal/model"
	"opportunity-report-service/internal/repository"
	"opportunity-report-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service  *service.ReportService
	Location *time.Location
}

func NewReportController(s *service.ReportService, loc *time.Location) *ReportController {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportController{Service: s, Location: loc}
}

// POST /reports
func (ctl *ReportController) CreateReport(c *gin.Context) {
	var req dto.ReportFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r := ctl.Service.CreateReport(c.Request.Context(), req.ToFields())
	c.JSON(http.StatusCreated, dto.NewReportResponse(r, ctl.Location))
}

// GET /reports?status=todos&q=ana
func (ctl *ReportController) ListReports(c *gin.Context) {
	selector := c.DefaultQuery("status", model.StatusAll)
	search := c.Query("q")

	reports, err := ctl.Service.Filter(selector, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReportListResponse(reports, ctl.Location))
}

// GET /reports/stats
func (ctl *ReportController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewStatsResponse(ctl.Service.Counts()))
}

// GET /reports/:id
func (ctl *ReportController) GetReport(c *gin.Context) {
	r, err := ctl.Service.GetReport(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReportResponse(r, ctl.Location))
}

// PUT /reports/:id — edición desde el formulario
func (ctl *ReportController) EditReport(c *gin.Context) {
	var req dto.ReportFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := ctl.Service.EditReport(c.Request.Context(), c.Param("id"), req.ToFields())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReportResponse(r, ctl.Location))
}

// PATCH /reports/:id/status
func (ctl *ReportController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ctl.Service.SetStatus(c.Request.Context(), c.Param("id"), model.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "estado actualizado"})
}

// DELETE /reports/:id — requiere confirmación
func (ctl *ReportController) DeleteReport(c *gin.Context) {
	if err := ctl.Service.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /reports/:id/updates
func (ctl *ReportController) AddUpdate(c *gin.Context) {
	var req dto.AddUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := ctl.Service.AddUpdate(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewReportResponse(r, ctl.Location))
}

// DELETE /reports/:id/updates/:index — requiere confirmación
func (ctl *ReportController) DeleteUpdate(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "índice inválido"})
		return
	}

	if err := ctl.Service.DeleteUpdate(c.Request.Context(), c.Param("id"), index); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrUpdateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidSelector),
		errors.Is(err, service.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
