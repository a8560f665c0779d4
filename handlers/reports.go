package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
	"github.com/fintrack/fintrack/backend/go-services/internal/reports"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

// ReportHandler holds dependencies
type ReportHandler struct {
	svc *reports.Service
}

func NewReportHandler(s *reports.Service) *ReportHandler {
	return &ReportHandler{svc: s}
}

// Register routes under /api/reports. The dashboard endpoints live on
// fixed segments that cannot collide with the ":type" period reports;
// gin matches static segments before params, so a series route named
// "monthly" would swallow the monthly period report.
func (h *ReportHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/api/reports", auth)
	g.GET("/summary", h.Summary)
	g.GET("/monthly-data", h.MonthlySeries)
	g.GET("/:type", h.Report)
}

func (h *ReportHandler) Report(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	year, _ := strconv.Atoi(c.Query("year"))

	rows, err := h.svc.Report(c.Request.Context(), ident.UserID, c.Param("type"), year)
	if err != nil {
		var ve *reports.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			return
		}
		logger.Errorf("report query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if rows == nil {
		rows = []models.PeriodTotals{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) Summary(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), ident.UserID)
	if err != nil {
		logger.Errorf("summary query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *ReportHandler) MonthlySeries(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	rows, err := h.svc.MonthlySeries(c.Request.Context(), ident.UserID)
	if err != nil {
		logger.Errorf("monthly series query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if rows == nil {
		rows = []models.MonthTotals{}
	}
	c.JSON(http.StatusOK, rows)
}
