package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

type VariantHandler struct {
	variants *ucCatalog.Variants
	obs      Observer
}

func NewVariantHandler(variants *ucCatalog.Variants, obs Observer) *VariantHandler {
	return &VariantHandler{variants: variants, obs: observerOrNop(obs)}
}

// Create adds a variant to the service in the path.
func (h *VariantHandler) Create(c *gin.Context) {
	serviceID, ok := parseID(c)
	if !ok {
		return
	}

	var in ucCatalog.VariantInput
	if !bindJSON(c, &in) {
		return
	}

	v, err := h.variants.Create(c.Request.Context(), tenantID(c), serviceID, in)
	h.obs.ObserveOperation("variant", "create", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeCreated(c, nil, gin.H{"id": v.ID})
}

func (h *VariantHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in ucCatalog.VariantInput
	if !bindJSON(c, &in) {
		return
	}

	v, err := h.variants.Update(c.Request.Context(), tenantID(c), id, in)
	h.obs.ObserveOperation("variant", "update", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeOK(c, nil, gin.H{"id": v.ID})
}

func (h *VariantHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.variants.Delete(c.Request.Context(), tenantID(c), id)
	h.obs.ObserveOperation("variant", "delete", err)
	writeOK(c, err, nil)
}
