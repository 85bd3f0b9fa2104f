package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kurihiro0119/github-repo-inventory/internal/aggregator"
	apperrors "github.com/kurihiro0119/github-repo-inventory/internal/errors"
	"github.com/kurihiro0119/github-repo-inventory/internal/export"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
)

// Handler handles API requests
type Handler struct {
	storage    storage.Storage
	aggregator aggregator.Aggregator
	exporter   export.Exporter
}

// NewHandler creates a new API handler
func NewHandler(store storage.Storage, agg aggregator.Aggregator) *Handler {
	return &Handler{
		storage:    store,
		aggregator: agg,
		exporter:   export.NewHTMLExporter(),
	}
}

// HealthCheck returns the health status
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ListInventories returns all stored inventories without records
// GET /api/v1/inventories
func (h *Handler) ListInventories(c *gin.Context) {
	inventories, err := h.storage.ListInventories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": inventories,
	})
}

// GetInventory returns one inventory without records
// GET /api/v1/inventories/:id
func (h *Handler) GetInventory(c *gin.Context) {
	inv, err := h.storage.GetInventory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": inv,
	})
}

// GetRecords returns the records of an inventory in export order
// GET /api/v1/inventories/:id/records
func (h *Handler) GetRecords(c *gin.Context) {
	records, err := h.storage.GetRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
	})
}

// GetSummary returns aggregated figures of an inventory
// GET /api/v1/inventories/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.aggregator.GetInventorySummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// GetReport renders the records of an inventory as the HTML report
// GET /api/v1/inventories/:id/report
func (h *Handler) GetReport(c *gin.Context) {
	records, err := h.storage.GetRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Export(&buf, records); err != nil {
		respondError(c, apperrors.NewInternalError("failed to render report", err))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrCodeForbidden:
			status = http.StatusForbidden
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeRateLimited:
			status = http.StatusTooManyRequests
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
}
