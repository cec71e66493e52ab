package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

type CategoryHandler struct {
	categories *ucCatalog.Categories
	obs        Observer
}

func NewCategoryHandler(categories *ucCatalog.Categories, obs Observer) *CategoryHandler {
	return &CategoryHandler{categories: categories, obs: observerOrNop(obs)}
}

type DeleteCategoryRequest struct {
	MoveToParent *bool `json:"move_to_parent"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.categories.List(c.Request.Context(), tenantID(c), strings.TrimSpace(c.Query("q")))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categories.Tree(c.Request.Context(), tenantID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"tree": tree})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.categories.Get(c.Request.Context(), tenantID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, detail)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in ucCatalog.CategoryInput
	if !bindJSON(c, &in) {
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), tenantID(c), in)
	h.obs.ObserveOperation("category", "create", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeCreated(c, nil, gin.H{"id": cat.ID, "slug": cat.Slug})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in ucCatalog.CategoryInput
	if !bindJSON(c, &in) {
		return
	}

	cat, err := h.categories.Update(c.Request.Context(), tenantID(c), id, in)
	h.obs.ObserveOperation("category", "update", err)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	writeOK(c, nil, gin.H{"id": cat.ID, "slug": cat.Slug})
}

// Delete takes move_to_parent from the query string or the body; it
// defaults to true.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	move := true
	if raw := strings.TrimSpace(c.Query("move_to_parent")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badQuery(c, queryError{"move_to_parent"})
			return
		}
		move = v
	} else {
		var req DeleteCategoryRequest
		if !bindOptionalJSON(c, &req) {
			return
		}
		if req.MoveToParent != nil {
			move = *req.MoveToParent
		}
	}

	err := h.categories.Delete(c.Request.Context(), tenantID(c), id, move)
	h.obs.ObserveOperation("category", "delete", err)
	writeOK(c, err, nil)
}
