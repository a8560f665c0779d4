package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/goals"
	"github.com/fintrack/fintrack/backend/go-services/internal/models"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

// GoalRequest is the payload for creating or updating a savings goal.
type GoalRequest struct {
	GoalName       string  `json:"goalName"`
	TargetAmount   float64 `json:"targetAmount"`
	CurrentSavings float64 `json:"currentSavings"`
	TargetDate     string  `json:"targetDate"`
}

// GoalHandler holds dependencies
type GoalHandler struct {
	svc *goals.Service
}

func NewGoalHandler(s *goals.Service) *GoalHandler {
	return &GoalHandler{svc: s}
}

func (h *GoalHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/api/goals", auth)
	g.GET("", h.List)
	g.POST("", h.Add)
	g.PUT("/:goalId", h.Update)
	g.DELETE("/:goalId", h.Delete)
}

func (h *GoalHandler) parseGoal(c *gin.Context) (*models.Goal, bool) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	g := &models.Goal{
		GoalName:       req.GoalName,
		TargetAmount:   req.TargetAmount,
		CurrentSavings: req.CurrentSavings,
	}
	if req.TargetDate != "" {
		day, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "targetDate must be formatted as YYYY-MM-DD"})
			return nil, false
		}
		g.TargetDate = day
	}
	return g, true
}

func (h *GoalHandler) List(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	list, err := h.svc.List(c.Request.Context(), ident.UserID)
	if err != nil {
		logger.Errorf("list goals failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if list == nil {
		list = []models.Goal{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *GoalHandler) Add(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	g, ok := h.parseGoal(c)
	if !ok {
		return
	}
	id, err := h.svc.Add(c.Request.Context(), ident.UserID, g)
	if err != nil {
		var ve *goals.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			return
		}
		logger.Errorf("add goal failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Goal added successfully", "goalId": id})
}

func (h *GoalHandler) Update(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	goalID, err := strconv.ParseInt(c.Param("goalId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}
	g, ok := h.parseGoal(c)
	if !ok {
		return
	}
	if err := h.svc.Update(c.Request.Context(), ident.UserID, goalID, g); err != nil {
		var ve *goals.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
		case errors.Is(err, goals.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		default:
			logger.Errorf("update goal failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal updated successfully"})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	goalID, err := strconv.ParseInt(c.Param("goalId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident.UserID, goalID); err != nil {
		if errors.Is(err, goals.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		logger.Errorf("delete goal failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
