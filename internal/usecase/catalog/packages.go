package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/dto"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/patch"
)

type PackageInput struct {
	Name          *string                         `json:"name"`
	Description   *string                         `json:"description"`
	DiscountType  *models.DiscountType            `json:"discount_type"`
	DiscountValue *decimal.Decimal                `json:"discount_value"`
	FixedPrice    patch.Nullable[decimal.Decimal] `json:"fixed_price"`
	ValidityDays  patch.Nullable[int]             `json:"validity_days"`
	MaxUses       patch.Nullable[int]             `json:"max_uses"`
	SortOrder     *int                            `json:"sort_order"`
	IsActive      *bool                           `json:"is_active"`
	IsFeatured    *bool                           `json:"is_featured"`

	// Items replaces the whole item list when present.
	Items *[]domain.PackageLine `json:"items"`
}

func (in PackageInput) apply(p *models.ServicePackage) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	patch.Assign(&p.Description, in.Description)
	patch.Assign(&p.DiscountType, in.DiscountType)
	patch.Assign(&p.DiscountValue, in.DiscountValue)
	in.FixedPrice.Apply(&p.FixedPrice)
	in.ValidityDays.Apply(&p.ValidityDays)
	in.MaxUses.Apply(&p.MaxUses)
	patch.Assign(&p.SortOrder, in.SortOrder)
	patch.Assign(&p.IsActive, in.IsActive)
	patch.Assign(&p.IsFeatured, in.IsFeatured)
}

type Packages struct {
	base
}

func NewPackages(repo domain.Repository, audit *audit.Dispatcher) *Packages {
	return &Packages{base{repo: repo, audit: audit}}
}

func packageSlugTaken(repo domain.Repository, tenantID, excludeID uint) domain.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return repo.PackageSlugExists(ctx, tenantID, slug, excludeID)
	}
}

// packageItems validates the lines and resolves every service. Sort order
// follows the submitted order.
func packageItems(
	ctx context.Context,
	tx domain.Repository,
	tenantID uint,
	lines []domain.PackageLine,
) ([]models.ServicePackageItem, error) {

	lines, err := domain.ValidatePackageLines(lines)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ServiceID)
	}
	if _, err := resolveServices(ctx, tx, tenantID, ids); err != nil {
		return nil, err
	}

	items := make([]models.ServicePackageItem, 0, len(lines))
	for i, l := range lines {
		items = append(items, models.ServicePackageItem{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			SortOrder: i,
		})
	}
	return items, nil
}

// Create stores the package and its items in one transaction. Any invalid
// line or unknown service leaves nothing behind.
func (uc *Packages) Create(
	ctx context.Context,
	tenantID uint,
	in PackageInput,
) (*models.ServicePackage, error) {

	p := &models.ServicePackage{
		TenantID:      tenantID,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.Zero,
		IsActive:      true,
	}
	in.apply(p)
	if err := domain.ValidatePackage(p); err != nil {
		return nil, err
	}

	var lines []domain.PackageLine
	if in.Items != nil {
		lines = *in.Items
	}

	var created *models.ServicePackage

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		items, err := packageItems(ctx, tx, tenantID, lines)
		if err != nil {
			return err
		}

		err = withSlug(ctx, domain.Slugify(p.Name, "package"), packageSlugTaken(tx, tenantID, 0),
			func(slug string) error {
				p.Slug = slug
				return tx.CreatePackage(ctx, p)
			})
		if err != nil {
			return err
		}

		if err := tx.ReplacePackageItems(ctx, p.ID, items); err != nil {
			return err
		}

		created, err = tx.GetPackage(ctx, tenantID, p.ID)
		return err
	})
	if err != nil {
		return nil, uc.fail(ctx, "package_created", err)
	}

	uc.record(ctx, tenantID, "package_created", "service_package", created.ID,
		map[string]any{"name": created.Name, "items": len(created.Items)})
	return created, nil
}

func (uc *Packages) Update(
	ctx context.Context,
	tenantID uint,
	id uint,
	in PackageInput,
) (*models.ServicePackage, error) {

	var updated *models.ServicePackage

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		p, err := tx.GetPackage(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "package_not_found", "Package not found")
		}

		oldName := p.Name
		in.apply(p)
		p.Items = nil
		if err := domain.ValidatePackage(p); err != nil {
			return err
		}

		var items []models.ServicePackageItem
		if in.Items != nil {
			if items, err = packageItems(ctx, tx, tenantID, *in.Items); err != nil {
				return err
			}
		}

		if p.Name == oldName {
			err = tx.SavePackage(ctx, p)
		} else {
			err = withSlug(ctx, domain.Slugify(p.Name, "package"), packageSlugTaken(tx, tenantID, p.ID),
				func(slug string) error {
					p.Slug = slug
					return tx.SavePackage(ctx, p)
				})
		}
		if err != nil {
			return err
		}

		if in.Items != nil {
			if err := tx.ReplacePackageItems(ctx, p.ID, items); err != nil {
				return err
			}
		}

		updated, err = tx.GetPackage(ctx, tenantID, p.ID)
		return err
	})
	if err != nil {
		return nil, uc.fail(ctx, "package_updated", err)
	}

	uc.record(ctx, tenantID, "package_updated", "service_package", updated.ID, nil)
	return updated, nil
}

func (uc *Packages) Delete(ctx context.Context, tenantID, id uint) error {
	if err := uc.repo.DeletePackage(ctx, tenantID, id); err != nil {
		return uc.fail(ctx, "package_deleted", notFound(err, "package_not_found", "Package not found"))
	}

	uc.record(ctx, tenantID, "package_deleted", "service_package", id, nil)
	return nil
}

func (uc *Packages) Get(ctx context.Context, tenantID, id uint) (*dto.PackageDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "package_get", err)
	}

	p, err := uc.repo.GetPackage(ctx, tenantID, id)
	if err != nil {
		return nil, uc.fail(ctx, "package_get", notFound(err, "package_not_found", "Package not found"))
	}

	out := dto.NewPackage(p, st)
	return &out, nil
}

func (uc *Packages) List(ctx context.Context, tenantID uint, activeOnly bool) ([]dto.PackageDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "package_list", err)
	}

	packages, err := uc.repo.ListPackages(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, uc.fail(ctx, "package_list", err)
	}
	return dto.NewPackageList(packages, st), nil
}
