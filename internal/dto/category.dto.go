package dto

import (
	"github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// CategoryNodeDTO is one node of the nested category tree.
type CategoryNodeDTO struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Icon         string            `json:"icon"`
	Color        string            `json:"color"`
	ServiceCount int               `json:"service_count"`
	Children     []CategoryNodeDTO `json:"children"`
}

// NewCategoryTree renders the active categories from the roots down.
// counts holds the active service count per category id.
func NewCategoryTree(t *catalog.Tree, counts map[uint]int) []CategoryNodeDTO {
	visited := map[uint]bool{}

	var build func(nodes []*models.ServiceCategory) []CategoryNodeDTO
	build = func(nodes []*models.ServiceCategory) []CategoryNodeDTO {
		out := make([]CategoryNodeDTO, 0, len(nodes))
		for _, c := range nodes {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true

			out = append(out, CategoryNodeDTO{
				ID:           c.ID,
				Name:         c.Name,
				Slug:         c.Slug,
				Icon:         c.Icon,
				Color:        c.Color,
				ServiceCount: counts[c.ID],
				Children:     build(t.Children(c.ID, true)),
			})
		}
		return out
	}

	return build(t.Roots(true))
}

type CategoryListItemDTO struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	ParentID          *uint  `json:"parent_id"`
	Path              string `json:"path"`
	Icon              string `json:"icon"`
	Color             string `json:"color"`
	SortOrder         int    `json:"sort_order"`
	IsActive          bool   `json:"is_active"`
	ServiceCount      int    `json:"service_count"`
	TotalServiceCount int    `json:"total_service_count"`
}

func NewCategoryListItem(t *catalog.Tree, c *models.ServiceCategory, counts map[uint]int) CategoryListItemDTO {
	return CategoryListItemDTO{
		ID:                c.ID,
		Name:              c.Name,
		Slug:              c.Slug,
		ParentID:          c.ParentID,
		Path:              t.Path(c.ID),
		Icon:              c.Icon,
		Color:             c.Color,
		SortOrder:         c.SortOrder,
		IsActive:          c.IsActive,
		ServiceCount:      counts[c.ID],
		TotalServiceCount: t.TotalCount(c.ID, counts),
	}
}

type CategoryDetailDTO struct {
	CategoryListItemDTO
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Ancestors   []CategoryRefDTO `json:"ancestors"`
	Children    []CategoryRefDTO `json:"children"`
	Descendants []CategoryRefDTO `json:"descendants"`
}

func refs(cats []*models.ServiceCategory) []CategoryRefDTO {
	out := make([]CategoryRefDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryRefDTO{ID: c.ID, Name: c.Name})
	}
	return out
}

func NewCategoryDetail(t *catalog.Tree, c *models.ServiceCategory, counts map[uint]int) CategoryDetailDTO {
	return CategoryDetailDTO{
		CategoryListItemDTO: NewCategoryListItem(t, c, counts),
		Description:         c.Description,
		Image:               c.Image,
		Ancestors:           refs(t.Ancestors(c.ID)),
		Children:            refs(t.Children(c.ID, false)),
		Descendants:         refs(t.Descendants(c.ID, true)),
	}
}
