package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

type SettingsHandler struct {
	settings *ucCatalog.Settings
	obs      Observer
}

func NewSettingsHandler(settings *ucCatalog.Settings, obs Observer) *SettingsHandler {
	return &SettingsHandler{settings: settings, obs: observerOrNop(obs)}
}

type ToggleSettingRequest struct {
	Field string `json:"field" binding:"required"`
}

// Value may arrive as a JSON string or a bare number.
type InputSettingRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

func (r InputSettingRequest) value() string {
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(r.Value))
}

func (h *SettingsHandler) Get(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context(), tenantID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, st)
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var in ucCatalog.SettingsInput
	if !bindJSON(c, &in) {
		return
	}

	st, err := h.settings.Save(c.Request.Context(), tenantID(c), in)
	h.obs.ObserveOperation("settings", "save", err)
	writeOK(c, err, gin.H{"settings": st})
}

func (h *SettingsHandler) Toggle(c *gin.Context) {
	var req ToggleSettingRequest
	if !bindJSON(c, &req) {
		return
	}

	value, err := h.settings.Toggle(c.Request.Context(), tenantID(c), req.Field)
	h.obs.ObserveOperation("settings", "toggle", err)
	writeOK(c, err, gin.H{"field": req.Field, "value": value})
}

func (h *SettingsHandler) Input(c *gin.Context) {
	var req InputSettingRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.settings.Input(c.Request.Context(), tenantID(c), req.Field, req.value())
	h.obs.ObserveOperation("settings", "input", err)
	writeOK(c, err, gin.H{"settings": st})
}

func (h *SettingsHandler) Reset(c *gin.Context) {
	st, err := h.settings.Reset(c.Request.Context(), tenantID(c))
	h.obs.ObserveOperation("settings", "reset", err)
	writeOK(c, err, gin.H{"settings": st})
}
