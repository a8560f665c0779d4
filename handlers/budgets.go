package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/budgets"
	"github.com/fintrack/fintrack/backend/go-services/internal/models"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

// BudgetRequest is the payload for setting a monthly budget.
type BudgetRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

// BudgetHandler holds dependencies
type BudgetHandler struct {
	svc *budgets.Service
}

func NewBudgetHandler(s *budgets.Service) *BudgetHandler {
	return &BudgetHandler{svc: s}
}

func (h *BudgetHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/api/budgets", auth)
	g.POST("", h.Add)
	g.GET("", h.List)
}

func (h *BudgetHandler) Add(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b := models.Budget{Category: req.Category, Amount: req.Amount, Month: req.Month, Year: req.Year}
	id, err := h.svc.Add(c.Request.Context(), ident.UserID, &b)
	if err != nil {
		var ve *budgets.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			return
		}
		logger.Errorf("add budget failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding budget"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Budget added successfully", "budgetId": id})
}

func (h *BudgetHandler) List(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	list, err := h.svc.List(c.Request.Context(), ident.UserID, month, year)
	if err != nil {
		logger.Errorf("list budgets failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if list == nil {
		list = []models.Budget{}
	}
	c.JSON(http.StatusOK, list)
}
