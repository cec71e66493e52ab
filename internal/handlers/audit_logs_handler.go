package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/logger"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

type AuditLogsResponse struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if q.Page <= 0 {
		q.Page = 1
	}

	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if q.Limit <= 0 || q.Limit > maxAuditLimit {
		q.Limit = defaultAuditLimit
	}

	// Dates are whole days; "to" includes the named day.
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		q.To = &end
	}

	logs, total, err := h.store.List(c.Request.Context(), tenantID(c), q)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("audit list failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "An unexpected error occurred.")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(200, AuditLogsResponse{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Logs:  logs,
	})
}
