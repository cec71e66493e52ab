package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

// CatalogAPIHandler serves the read-only JSON projections used by booking
// widgets and the dashboard.
type CatalogAPIHandler struct {
	services *ucCatalog.Services
	queries  *ucCatalog.Queries
}

func NewCatalogAPIHandler(services *ucCatalog.Services, queries *ucCatalog.Queries) *CatalogAPIHandler {
	return &CatalogAPIHandler{services: services, queries: queries}
}

func (h *CatalogAPIHandler) Search(c *gin.Context) {
	limit, err := queryInt(c, "limit", ucCatalog.DefaultSearchLimit)
	if err != nil {
		badQuery(c, err)
		return
	}

	results, err := h.queries.Search(c.Request.Context(), tenantID(c), strings.TrimSpace(c.Query("q")), limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"results": results})
}

// Services lists active services, optionally narrowed to a category subtree
// and to bookable ones.
func (h *CatalogAPIHandler) Services(c *gin.Context) {
	t := true
	params := ucCatalog.SearchParams{IsActive: &t, Ordering: "sort_order"}

	var err error
	if params.CategoryID, err = queryUint(c, "category"); err != nil {
		badQuery(c, err)
		return
	}
	if params.IsBookable, err = queryBool(c, "bookable"); err != nil {
		badQuery(c, err)
		return
	}

	items, err := h.queries.List(c.Request.Context(), tenantID(c), params)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"services": items})
}

func (h *CatalogAPIHandler) Service(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.services.Get(c.Request.Context(), tenantID(c), id, true)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, detail)
}

func (h *CatalogAPIHandler) Featured(c *gin.Context) {
	limit, err := queryInt(c, "limit", ucCatalog.DefaultFeaturedLimit)
	if err != nil {
		badQuery(c, err)
		return
	}

	items, err := h.queries.Featured(c.Request.Context(), tenantID(c), limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"services": items})
}

func (h *CatalogAPIHandler) Bookable(c *gin.Context) {
	items, err := h.queries.Bookable(c.Request.Context(), tenantID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"services": items})
}

// ByCategory lists a category's services; include_children defaults to true.
func (h *CatalogAPIHandler) ByCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	include, err := queryBool(c, "include_children")
	if err != nil {
		badQuery(c, err)
		return
	}

	items, err := h.queries.ByCategory(c.Request.Context(), tenantID(c), id, include == nil || *include)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"services": items})
}

func (h *CatalogAPIHandler) Stats(c *gin.Context) {
	stats, err := h.queries.Stats(c.Request.Context(), tenantID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *CatalogAPIHandler) PriceRange(c *gin.Context) {
	pr, err := h.queries.PriceRange(c.Request.Context(), tenantID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, pr)
}

func (h *CatalogAPIHandler) Dashboard(c *gin.Context) {
	d, err := h.queries.Dashboard(c.Request.Context(), tenantID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, d)
}
