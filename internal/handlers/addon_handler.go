package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

type AddonHandler struct {
	addons *ucCatalog.Addons
	obs    Observer
}

func NewAddonHandler(addons *ucCatalog.Addons, obs Observer) *AddonHandler {
	return &AddonHandler{addons: addons, obs: observerOrNop(obs)}
}

// List returns every add-on unless active_only=true.
func (h *AddonHandler) List(c *gin.Context) {
	activeOnly, err := queryBool(c, "active_only")
	if err != nil {
		badQuery(c, err)
		return
	}

	items, err := h.addons.List(c.Request.Context(), tenantID(c), activeOnly != nil && *activeOnly)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *AddonHandler) Create(c *gin.Context) {
	var in ucCatalog.AddonInput
	if !bindJSON(c, &in) {
		return
	}

	a, err := h.addons.Create(c.Request.Context(), tenantID(c), in)
	h.obs.ObserveOperation("addon", "create", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeCreated(c, nil, gin.H{"id": a.ID})
}

func (h *AddonHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in ucCatalog.AddonInput
	if !bindJSON(c, &in) {
		return
	}

	a, err := h.addons.Update(c.Request.Context(), tenantID(c), id, in)
	h.obs.ObserveOperation("addon", "update", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeOK(c, nil, gin.H{"id": a.ID})
}

func (h *AddonHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.addons.Delete(c.Request.Context(), tenantID(c), id)
	h.obs.ObserveOperation("addon", "delete", err)
	writeOK(c, err, nil)
}
