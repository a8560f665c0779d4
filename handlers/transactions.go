package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
	"github.com/fintrack/fintrack/backend/go-services/internal/transactions"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

// TransactionRequest is the payload for recording a transaction.
// TransactionDate is optional and formatted as 2006-01-02.
type TransactionRequest struct {
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transactionDate"`
}

// TransactionHandler holds dependencies
type TransactionHandler struct {
	svc *transactions.Service
}

func NewTransactionHandler(s *transactions.Service) *TransactionHandler {
	return &TransactionHandler{svc: s}
}

// Register routes under /api/transactions; all of them require a verified identity.
func (h *TransactionHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/api/transactions", auth)
	g.POST("", h.Add)
	g.GET("", h.List)
	g.DELETE("/:id", h.Delete)
}

func (h *TransactionHandler) Add(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := models.Transaction{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.TransactionDate != "" {
		day, err := time.Parse("2006-01-02", req.TransactionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "transactionDate must be formatted as YYYY-MM-DD"})
			return
		}
		tx.TransactionDate = day
	}

	id, err := h.svc.Add(c.Request.Context(), ident.UserID, &tx)
	if err != nil {
		var ve *transactions.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			return
		}
		logger.Errorf("add transaction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding transaction"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Transaction added successfully", "transactionId": id})
}

func (h *TransactionHandler) List(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	list, err := h.svc.List(c.Request.Context(), ident.UserID)
	if err != nil {
		logger.Errorf("list transactions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if list == nil {
		list = []models.Transaction{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident.UserID, id); err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Errorf("delete transaction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
