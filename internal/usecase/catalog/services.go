package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/dto"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/patch"
)

// ServiceInput is both the create payload and the patch payload. Absent
// fields keep their current (or default) value.
type ServiceInput struct {
	Name             *string              `json:"name"`
	Description      *string              `json:"description"`
	ShortDescription *string              `json:"short_description"`
	CategoryID       patch.Nullable[uint] `json:"category_id"`

	PricingType *models.PricingType             `json:"pricing_type"`
	Price       *decimal.Decimal                `json:"price"`
	MinPrice    patch.Nullable[decimal.Decimal] `json:"min_price"`
	MaxPrice    patch.Nullable[decimal.Decimal] `json:"max_price"`
	Cost        *decimal.Decimal                `json:"cost"`
	TaxRate     patch.Nullable[decimal.Decimal] `json:"tax_rate"`

	DurationMinutes *int `json:"duration_minutes"`
	BufferBefore    *int `json:"buffer_before"`
	BufferAfter     *int `json:"buffer_after"`
	MaxCapacity     *int `json:"max_capacity"`

	Icon  *string `json:"icon"`
	Color *string `json:"color"`
	Image *string `json:"image"`

	IsBookable           *bool `json:"is_bookable"`
	RequiresConfirmation *bool `json:"requires_confirmation"`
	AllowOnlineBooking   *bool `json:"allow_online_booking"`
	SortOrder            *int  `json:"sort_order"`
	IsActive             *bool `json:"is_active"`
	IsFeatured           *bool `json:"is_featured"`

	SKU     patch.Nullable[string] `json:"sku"`
	Barcode *string                `json:"barcode"`
	Notes   *string                `json:"notes"`

	AddonIDs *[]uint `json:"addon_ids"`
}

func (in ServiceInput) apply(s *models.Service) {
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	patch.Assign(&s.Description, in.Description)
	patch.Assign(&s.ShortDescription, in.ShortDescription)

	patch.Assign(&s.PricingType, in.PricingType)
	patch.Assign(&s.Price, in.Price)
	in.MinPrice.Apply(&s.MinPrice)
	in.MaxPrice.Apply(&s.MaxPrice)
	patch.Assign(&s.Cost, in.Cost)
	in.TaxRate.Apply(&s.TaxRate)

	patch.Assign(&s.DurationMinutes, in.DurationMinutes)
	patch.Assign(&s.BufferBefore, in.BufferBefore)
	patch.Assign(&s.BufferAfter, in.BufferAfter)
	patch.Assign(&s.MaxCapacity, in.MaxCapacity)

	patch.Assign(&s.Icon, in.Icon)
	patch.Assign(&s.Color, in.Color)
	patch.Assign(&s.Image, in.Image)

	patch.Assign(&s.IsBookable, in.IsBookable)
	patch.Assign(&s.RequiresConfirmation, in.RequiresConfirmation)
	patch.Assign(&s.AllowOnlineBooking, in.AllowOnlineBooking)
	patch.Assign(&s.SortOrder, in.SortOrder)
	patch.Assign(&s.IsActive, in.IsActive)
	patch.Assign(&s.IsFeatured, in.IsFeatured)

	if in.SKU.Set {
		// an empty sku is stored as NULL so it never collides
		if in.SKU.Value == nil || strings.TrimSpace(*in.SKU.Value) == "" {
			s.SKU = nil
		} else {
			sku := strings.TrimSpace(*in.SKU.Value)
			s.SKU = &sku
		}
	}
	patch.Assign(&s.Barcode, in.Barcode)
	patch.Assign(&s.Notes, in.Notes)
}

type Services struct {
	base
}

func NewServices(repo domain.Repository, audit *audit.Dispatcher) *Services {
	return &Services{base{repo: repo, audit: audit}}
}

func serviceSlugTaken(repo domain.Repository, tenantID, excludeID uint) domain.SlugExists {
	return func(ctx context.Context, slug string) (bool, error) {
		return repo.ServiceSlugExists(ctx, tenantID, slug, excludeID)
	}
}

// newService carries the defaults of a service created without explicit
// values; duration and buffers come from the tenant settings.
func newService(tenantID uint, st *models.ServicesSettings) *models.Service {
	return &models.Service{
		TenantID:           tenantID,
		PricingType:        models.PricingFixed,
		Price:              decimal.Zero,
		Cost:               decimal.Zero,
		DurationMinutes:    st.DefaultDuration,
		BufferBefore:       st.DefaultBufferTime,
		BufferAfter:        st.DefaultBufferTime,
		MaxCapacity:        1,
		IsBookable:         true,
		AllowOnlineBooking: true,
		IsActive:           true,
	}
}

// checkRefs resolves the category and SKU of s against the tenant.
func checkRefs(ctx context.Context, repo domain.Repository, s *models.Service) error {
	if s.CategoryID != nil {
		if _, err := resolveCategory(ctx, repo, s.TenantID, *s.CategoryID,
			"category_not_found", "Category not found"); err != nil {
			return err
		}
	}
	if s.SKU != nil {
		taken, err := repo.ServiceSKUExists(ctx, s.TenantID, *s.SKU, s.ID)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrValidation("duplicate_sku", "A service with this SKU already exists")
		}
	}
	return nil
}

func (uc *Services) Create(
	ctx context.Context,
	tenantID uint,
	in ServiceInput,
) (*models.Service, error) {

	var created *models.Service

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		st, err := loadSettings(ctx, tx, tenantID)
		if err != nil {
			return err
		}

		s := newService(tenantID, st)
		in.apply(s)
		s.CategoryID = in.CategoryID.Value
		if err := domain.ValidateService(s); err != nil {
			return err
		}
		if err := checkRefs(ctx, tx, s); err != nil {
			return err
		}
		if in.AddonIDs != nil {
			if err := resolveAddons(ctx, tx, tenantID, *in.AddonIDs); err != nil {
				return err
			}
		}

		err = withSlug(ctx, domain.Slugify(s.Name, "service"), serviceSlugTaken(tx, tenantID, 0),
			func(slug string) error {
				s.Slug = slug
				return tx.CreateService(ctx, s)
			})
		if err != nil {
			return err
		}

		if in.AddonIDs != nil {
			if err := tx.SetServiceAddons(ctx, s.ID, uniqueIDs(*in.AddonIDs)); err != nil {
				return err
			}
		}

		created = s
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "service_created", err)
	}

	uc.record(ctx, tenantID, "service_created", "service", created.ID, map[string]any{"name": created.Name})
	return created, nil
}

func (uc *Services) Update(
	ctx context.Context,
	tenantID uint,
	id uint,
	in ServiceInput,
) (*models.Service, error) {

	var updated *models.Service

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		s, err := tx.GetService(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "service_not_found", "Service not found")
		}

		oldName := s.Name
		in.apply(s)
		in.CategoryID.Apply(&s.CategoryID)
		s.Category = nil

		if err := domain.ValidateService(s); err != nil {
			return err
		}
		if err := checkRefs(ctx, tx, s); err != nil {
			return err
		}
		if in.AddonIDs != nil {
			if err := resolveAddons(ctx, tx, tenantID, *in.AddonIDs); err != nil {
				return err
			}
		}

		if s.Name == oldName {
			err = tx.SaveService(ctx, s)
		} else {
			err = withSlug(ctx, domain.Slugify(s.Name, "service"), serviceSlugTaken(tx, tenantID, s.ID),
				func(slug string) error {
					s.Slug = slug
					return tx.SaveService(ctx, s)
				})
		}
		if err != nil {
			return err
		}

		if in.AddonIDs != nil {
			if err := tx.SetServiceAddons(ctx, s.ID, uniqueIDs(*in.AddonIDs)); err != nil {
				return err
			}
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "service_updated", err)
	}

	uc.record(ctx, tenantID, "service_updated", "service", updated.ID, nil)
	return updated, nil
}

// Delete removes the service with its variants, package items and add-on
// links.
func (uc *Services) Delete(ctx context.Context, tenantID, id uint) error {
	if err := uc.repo.DeleteService(ctx, tenantID, id); err != nil {
		return uc.fail(ctx, "service_deleted", notFound(err, "service_not_found", "Service not found"))
	}

	uc.record(ctx, tenantID, "service_deleted", "service", id, nil)
	return nil
}

// ToggleActive flips is_active and returns the new value.
func (uc *Services) ToggleActive(ctx context.Context, tenantID, id uint) (bool, error) {
	var active bool

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		s, err := tx.GetService(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "service_not_found", "Service not found")
		}
		s.IsActive = !s.IsActive
		active = s.IsActive
		return tx.SaveService(ctx, s)
	})
	if err != nil {
		return false, uc.fail(ctx, "service_toggled", err)
	}

	uc.record(ctx, tenantID, "service_toggled", "service", id, map[string]any{"is_active": active})
	return active, nil
}

// Duplicate copies a service with its variants and add-on links. The copy
// is never featured, has no barcode and no SKU, and gets a fresh slug.
func (uc *Services) Duplicate(
	ctx context.Context,
	tenantID uint,
	id uint,
	newName string,
) (*models.Service, error) {

	var copied *models.Service

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		src, err := tx.GetService(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "service_not_found", "Service not found")
		}

		name := strings.TrimSpace(newName)
		if name == "" {
			name = src.Name + " (Copy)"
		}

		cp := *src
		cp.ID = 0
		cp.Name = name
		cp.Category = nil
		cp.Variants = nil
		cp.Addons = nil
		cp.IsFeatured = false
		cp.Barcode = ""
		cp.SKU = nil
		cp.CreatedAt, cp.UpdatedAt = time.Time{}, time.Time{}
		if err := domain.ValidateService(&cp); err != nil {
			return err
		}

		err = withSlug(ctx, domain.Slugify(cp.Name, "service"), serviceSlugTaken(tx, tenantID, 0),
			func(slug string) error {
				cp.Slug = slug
				return tx.CreateService(ctx, &cp)
			})
		if err != nil {
			return err
		}

		for _, v := range src.Variants {
			nv := v
			nv.ID = 0
			nv.ServiceID = cp.ID
			nv.CreatedAt, nv.UpdatedAt = time.Time{}, time.Time{}
			if err := tx.CreateVariant(ctx, &nv); err != nil {
				return err
			}
		}

		addonIDs := make([]uint, 0, len(src.Addons))
		for _, a := range src.Addons {
			addonIDs = append(addonIDs, a.ID)
		}
		if len(addonIDs) > 0 {
			if err := tx.SetServiceAddons(ctx, cp.ID, addonIDs); err != nil {
				return err
			}
		}

		copied = &cp
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "service_duplicated", err)
	}

	uc.record(ctx, tenantID, "service_duplicated", "service", copied.ID, map[string]any{"source_id": id})
	return copied, nil
}

// Get returns the service detail with derived prices. publicView hides
// inactive variants and add-ons.
func (uc *Services) Get(
	ctx context.Context,
	tenantID uint,
	id uint,
	publicView bool,
) (*dto.ServiceDetailDTO, error) {

	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_get", err)
	}

	s, err := uc.repo.GetService(ctx, tenantID, id)
	if err != nil {
		return nil, uc.fail(ctx, "service_get", notFound(err, "service_not_found", "Service not found"))
	}

	out := dto.NewServiceDetail(s, st, publicView)
	return &out, nil
}
