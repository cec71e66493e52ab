package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

type PackageHandler struct {
	packages *ucCatalog.Packages
	obs      Observer
}

func NewPackageHandler(packages *ucCatalog.Packages, obs Observer) *PackageHandler {
	return &PackageHandler{packages: packages, obs: observerOrNop(obs)}
}

func (h *PackageHandler) List(c *gin.Context) {
	activeOnly, err := queryBool(c, "active_only")
	if err != nil {
		badQuery(c, err)
		return
	}

	items, err := h.packages.List(c.Request.Context(), tenantID(c), activeOnly != nil && *activeOnly)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *PackageHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.packages.Get(c.Request.Context(), tenantID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PackageHandler) Create(c *gin.Context) {
	var in ucCatalog.PackageInput
	if !bindJSON(c, &in) {
		return
	}

	p, err := h.packages.Create(c.Request.Context(), tenantID(c), in)
	h.obs.ObserveOperation("package", "create", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeCreated(c, nil, gin.H{"id": p.ID, "slug": p.Slug})
}

func (h *PackageHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in ucCatalog.PackageInput
	if !bindJSON(c, &in) {
		return
	}

	p, err := h.packages.Update(c.Request.Context(), tenantID(c), id, in)
	h.obs.ObserveOperation("package", "update", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeOK(c, nil, gin.H{"id": p.ID, "slug": p.Slug})
}

func (h *PackageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.packages.Delete(c.Request.Context(), tenantID(c), id)
	h.obs.ObserveOperation("package", "delete", err)
	writeOK(c, err, nil)
}
