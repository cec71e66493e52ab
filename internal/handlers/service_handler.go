package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	services *ucCatalog.Services
	queries  *ucCatalog.Queries
	obs      Observer
}

func NewServiceHandler(
	services *ucCatalog.Services,
	queries *ucCatalog.Queries,
	obs Observer,
) *ServiceHandler {
	return &ServiceHandler{
		services: services,
		queries:  queries,
		obs:      observerOrNop(obs),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type DuplicateServiceRequest struct {
	NewName string `json:"new_name"`
}

// ======================================================
// LIST
// ======================================================

// List defaults to active services; is_active=all lists everything.
func (h *ServiceHandler) List(c *gin.Context) {
	params := ucCatalog.SearchParams{
		Query:    strings.TrimSpace(c.Query("q")),
		Ordering: c.Query("ordering"),
	}

	var err error
	if params.CategoryID, err = queryUint(c, "category"); err != nil {
		badQuery(c, err)
		return
	}

	if pt := strings.TrimSpace(c.Query("pricing_type")); pt != "" {
		params.PricingType = models.PricingType(pt)
		if !params.PricingType.Valid() {
			badQuery(c, queryError{"pricing_type"})
			return
		}
	}

	switch active := strings.ToLower(strings.TrimSpace(c.Query("is_active"))); active {
	case "all":
	case "":
		t := true
		params.IsActive = &t
	default:
		if params.IsActive, err = queryBool(c, "is_active"); err != nil {
			badQuery(c, err)
			return
		}
	}

	if params.IsBookable, err = queryBool(c, "is_bookable"); err != nil {
		badQuery(c, err)
		return
	}
	if params.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		badQuery(c, err)
		return
	}
	if params.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		badQuery(c, err)
		return
	}

	items, err := h.queries.List(c.Request.Context(), tenantID(c), params)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

// ======================================================
// DETAIL
// ======================================================

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.services.Get(c.Request.Context(), tenantID(c), id, false)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, detail)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var in ucCatalog.ServiceInput
	if !bindJSON(c, &in) {
		return
	}

	s, err := h.services.Create(c.Request.Context(), tenantID(c), in)
	h.obs.ObserveOperation("service", "create", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeCreated(c, nil, gin.H{"id": s.ID, "slug": s.Slug})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in ucCatalog.ServiceInput
	if !bindJSON(c, &in) {
		return
	}

	s, err := h.services.Update(c.Request.Context(), tenantID(c), id, in)
	h.obs.ObserveOperation("service", "update", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeOK(c, nil, gin.H{"id": s.ID, "slug": s.Slug})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.services.Delete(c.Request.Context(), tenantID(c), id)
	h.obs.ObserveOperation("service", "delete", err)
	writeOK(c, err, nil)
}

func (h *ServiceHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	active, err := h.services.ToggleActive(c.Request.Context(), tenantID(c), id)
	h.obs.ObserveOperation("service", "toggle", err)
	writeOK(c, err, gin.H{"is_active": active})
}

func (h *ServiceHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req DuplicateServiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	s, err := h.services.Duplicate(c.Request.Context(), tenantID(c), id, strings.TrimSpace(req.NewName))
	h.obs.ObserveOperation("service", "duplicate", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeCreated(c, nil, gin.H{"id": s.ID, "slug": s.Slug, "name": s.Name})
}
