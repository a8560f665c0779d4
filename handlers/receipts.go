package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/storage"
	"github.com/fintrack/fintrack/backend/go-services/internal/transactions"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

// presignTTL bounds how long a fetched receipt link stays valid.
const presignTTL = 15 * time.Minute

// ReceiptHandler stores transaction receipts in object storage. Routes are
// only registered when MinIO is configured.
type ReceiptHandler struct {
	txSvc *transactions.Service
	store *storage.ReceiptStore
}

func NewReceiptHandler(txSvc *transactions.Service, store *storage.ReceiptStore) *ReceiptHandler {
	return &ReceiptHandler{txSvc: txSvc, store: store}
}

func (h *ReceiptHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/api/transactions/:id/receipt", auth)
	g.POST("", h.Upload)
	g.GET("", h.Fetch)
}

// Upload attaches a multipart "file" to an owned transaction.
func (h *ReceiptHandler) Upload(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	txID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	// ownership check before touching object storage
	if _, err := h.txSvc.Get(c.Request.Context(), ident.UserID, txID); err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Errorf("receipt transaction lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	key := storage.ReceiptKey(ident.UserID, txID, filepath.Base(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if err := h.store.Upload(c.Request.Context(), key, src, fh.Size, contentType); err != nil {
		logger.Errorf("receipt upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing receipt"})
		return
	}
	if err := h.txSvc.AttachReceipt(c.Request.Context(), ident.UserID, txID, key); err != nil {
		logger.Errorf("receipt attach failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing receipt"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Receipt stored", "receiptKey": key})
}

// Fetch returns a time-limited download URL for the stored receipt.
func (h *ReceiptHandler) Fetch(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	txID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	tx, err := h.txSvc.Get(c.Request.Context(), ident.UserID, txID)
	if err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Errorf("receipt transaction lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if tx.ReceiptKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No receipt for this transaction"})
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), tx.ReceiptKey, presignTTL)
	if err != nil {
		logger.Errorf("receipt presign failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int(presignTTL.Seconds())})
}
