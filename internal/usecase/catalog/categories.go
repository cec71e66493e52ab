package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/dto"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/patch"
)

type CategoryInput struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	ParentID    patch.Nullable[uint] `json:"parent_id"`
	Icon        *string              `json:"icon"`
	Color       *string              `json:"color"`
	Image       *string              `json:"image"`
	SortOrder   *int                 `json:"sort_order"`
	IsActive    *bool                `json:"is_active"`
}

func (in CategoryInput) apply(c *models.ServiceCategory) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	patch.Assign(&c.Description, in.Description)
	patch.Assign(&c.Icon, in.Icon)
	patch.Assign(&c.Color, in.Color)
	patch.Assign(&c.Image, in.Image)
	patch.Assign(&c.SortOrder, in.SortOrder)
	patch.Assign(&c.IsActive, in.IsActive)
}

type Categories struct {
	base
}

func NewCategories(repo domain.Repository, audit *audit.Dispatcher) *Categories {
	return &Categories{base{repo: repo, audit: audit}}
}

func categorySlugTaken(repo domain.Repository, tenantID, excludeID uint) domain.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return repo.CategorySlugExists(ctx, tenantID, slug, excludeID)
	}
}

func (uc *Categories) Create(
	ctx context.Context,
	tenantID uint,
	in CategoryInput,
) (*models.ServiceCategory, error) {

	c := &models.ServiceCategory{TenantID: tenantID, IsActive: true}
	in.apply(c)
	if err := domain.ValidateCategory(c); err != nil {
		return nil, err
	}

	if in.ParentID.Value != nil {
		parent, err := resolveCategory(ctx, uc.repo, tenantID, *in.ParentID.Value,
			"parent_not_found", "Parent category not found")
		if err != nil {
			return nil, uc.fail(ctx, "category_created", err)
		}
		c.ParentID = &parent.ID
	}

	err := withSlug(ctx, domain.Slugify(c.Name, "category"), categorySlugTaken(uc.repo, tenantID, 0),
		func(slug string) error {
			c.Slug = slug
			return uc.repo.CreateCategory(ctx, c)
		})
	if err != nil {
		return nil, uc.fail(ctx, "category_created", err)
	}

	uc.record(ctx, tenantID, "category_created", "service_category", c.ID, map[string]any{"name": c.Name})
	return c, nil
}

func (uc *Categories) Update(
	ctx context.Context,
	tenantID uint,
	id uint,
	in CategoryInput,
) (*models.ServiceCategory, error) {

	c, err := resolveCategory(ctx, uc.repo, tenantID, id, "category_not_found", "Category not found")
	if err != nil {
		return nil, uc.fail(ctx, "category_updated", err)
	}

	oldName := c.Name
	in.apply(c)
	if err := domain.ValidateCategory(c); err != nil {
		return nil, err
	}

	if in.ParentID.Set {
		if in.ParentID.Value == nil {
			c.ParentID = nil
		} else {
			parentID := *in.ParentID.Value
			if _, err := resolveCategory(ctx, uc.repo, tenantID, parentID,
				"parent_not_found", "Parent category not found"); err != nil {
				return nil, uc.fail(ctx, "category_updated", err)
			}

			all, err := uc.repo.ListCategories(ctx, tenantID)
			if err != nil {
				return nil, uc.fail(ctx, "category_updated", err)
			}
			if domain.NewTree(all).WouldCycle(c.ID, parentID) {
				return nil, httperr.ErrValidation("circular_parent",
					"A category cannot be its own parent or the parent of one of its ancestors")
			}
			c.ParentID = &parentID
		}
	}

	if c.Name == oldName {
		err = uc.repo.SaveCategory(ctx, c)
	} else {
		err = withSlug(ctx, domain.Slugify(c.Name, "category"), categorySlugTaken(uc.repo, tenantID, c.ID),
			func(slug string) error {
				c.Slug = slug
				return uc.repo.SaveCategory(ctx, c)
			})
	}
	if err != nil {
		return nil, uc.fail(ctx, "category_updated", err)
	}

	uc.record(ctx, tenantID, "category_updated", "service_category", c.ID, nil)
	return c, nil
}

// Delete removes a category. With moveToParent its direct children and
// services move up to its parent. Otherwise the whole subtree is deleted
// and every service in it becomes uncategorized.
func (uc *Categories) Delete(
	ctx context.Context,
	tenantID uint,
	id uint,
	moveToParent bool,
) error {

	removed := 1
	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		c, err := resolveCategory(ctx, tx, tenantID, id, "category_not_found", "Category not found")
		if err != nil {
			return err
		}

		if moveToParent {
			if err := tx.MoveServicesToCategory(ctx, tenantID, c.ID, c.ParentID); err != nil {
				return err
			}
			if err := tx.ReparentCategories(ctx, tenantID, c.ID, c.ParentID); err != nil {
				return err
			}
			return tx.DeleteCategory(ctx, tenantID, c.ID)
		}

		all, err := tx.ListCategories(ctx, tenantID)
		if err != nil {
			return err
		}
		subtree := append([]uint{c.ID}, domain.NewTree(all).DescendantIDs(c.ID, false)...)
		removed = len(subtree)

		for _, cid := range subtree {
			if err := tx.MoveServicesToCategory(ctx, tenantID, cid, nil); err != nil {
				return err
			}
		}
		// Descendants come out in pre-order, so deleting in reverse
		// removes every child before its parent.
		for i := len(subtree) - 1; i >= 0; i-- {
			if err := tx.DeleteCategory(ctx, tenantID, subtree[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uc.fail(ctx, "category_deleted", err)
	}

	uc.record(ctx, tenantID, "category_deleted", "service_category", id,
		map[string]any{"move_to_parent": moveToParent, "categories_removed": removed})
	return nil
}

func (uc *Categories) load(
	ctx context.Context,
	tenantID uint,
) ([]models.ServiceCategory, *domain.Tree, map[uint]int, error) {

	all, err := uc.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, err
	}
	counts, err := uc.repo.CountActiveServicesByCategory(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, err
	}
	return all, domain.NewTree(all), counts, nil
}

func (uc *Categories) Tree(ctx context.Context, tenantID uint) ([]dto.CategoryNodeDTO, error) {
	_, tree, counts, err := uc.load(ctx, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "category_tree", err)
	}
	return dto.NewCategoryTree(tree, counts), nil
}

func (uc *Categories) Get(ctx context.Context, tenantID, id uint) (*dto.CategoryDetailDTO, error) {
	_, tree, counts, err := uc.load(ctx, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "category_get", err)
	}

	c, ok := tree.Get(id)
	if !ok {
		return nil, httperr.ErrNotFound("category_not_found", "Category not found")
	}

	out := dto.NewCategoryDetail(tree, c, counts)
	return &out, nil
}

// List returns every category in (sort_order, name) order, optionally
// narrowed by a case-insensitive name match.
func (uc *Categories) List(ctx context.Context, tenantID uint, search string) ([]dto.CategoryListItemDTO, error) {
	all, tree, counts, err := uc.load(ctx, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "category_list", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]dto.CategoryListItemDTO, 0, len(all))
	for i := range all {
		c := &all[i]
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		out = append(out, dto.NewCategoryListItem(tree, c, counts))
	}
	return out, nil
}
