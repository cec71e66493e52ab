package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/patch"
)

type VariantInput struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	PriceAdjustment    *decimal.Decimal `json:"price_adjustment"`
	DurationAdjustment *int             `json:"duration_adjustment"`
	SortOrder          *int             `json:"sort_order"`
	IsActive           *bool            `json:"is_active"`
}

func (in VariantInput) apply(v *models.ServiceVariant) {
	if in.Name != nil {
		v.Name = strings.TrimSpace(*in.Name)
	}
	patch.Assign(&v.Description, in.Description)
	patch.Assign(&v.PriceAdjustment, in.PriceAdjustment)
	patch.Assign(&v.DurationAdjustment, in.DurationAdjustment)
	patch.Assign(&v.SortOrder, in.SortOrder)
	patch.Assign(&v.IsActive, in.IsActive)
}

type Variants struct {
	base
}

func NewVariants(repo domain.Repository, audit *audit.Dispatcher) *Variants {
	return &Variants{base{repo: repo, audit: audit}}
}

var errDuplicateVariant = httperr.ErrValidation("duplicate_variant_name", "A variant with this name already exists")

func (uc *Variants) checkName(ctx context.Context, v *models.ServiceVariant) error {
	taken, err := uc.repo.VariantNameExists(ctx, v.ServiceID, v.Name, v.ID)
	if err != nil {
		return err
	}
	if taken {
		return errDuplicateVariant
	}
	return nil
}

func (uc *Variants) Create(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
	in VariantInput,
) (*models.ServiceVariant, error) {

	if _, err := uc.repo.GetService(ctx, tenantID, serviceID); err != nil {
		return nil, uc.fail(ctx, "variant_created", notFound(err, "service_not_found", "Service not found"))
	}

	v := &models.ServiceVariant{ServiceID: serviceID, IsActive: true}
	in.apply(v)
	if err := domain.ValidateVariant(v); err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, v); err != nil {
		return nil, uc.fail(ctx, "variant_created", err)
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, uc.fail(ctx, "variant_created", duplicateAs(err, errDuplicateVariant))
	}

	uc.record(ctx, tenantID, "variant_created", "service_variant", v.ID, map[string]any{"service_id": serviceID})
	return v, nil
}

func (uc *Variants) Update(
	ctx context.Context,
	tenantID uint,
	id uint,
	in VariantInput,
) (*models.ServiceVariant, error) {

	v, err := uc.repo.GetVariant(ctx, tenantID, id)
	if err != nil {
		return nil, uc.fail(ctx, "variant_updated", notFound(err, "variant_not_found", "Variant not found"))
	}

	in.apply(v)
	if err := domain.ValidateVariant(v); err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := uc.checkName(ctx, v); err != nil {
			return nil, uc.fail(ctx, "variant_updated", err)
		}
	}

	if err := uc.repo.SaveVariant(ctx, v); err != nil {
		return nil, uc.fail(ctx, "variant_updated", duplicateAs(err, errDuplicateVariant))
	}

	uc.record(ctx, tenantID, "variant_updated", "service_variant", v.ID, nil)
	return v, nil
}

func (uc *Variants) Delete(ctx context.Context, tenantID, id uint) error {
	v, err := uc.repo.GetVariant(ctx, tenantID, id)
	if err != nil {
		return uc.fail(ctx, "variant_deleted", notFound(err, "variant_not_found", "Variant not found"))
	}
	if err := uc.repo.DeleteVariant(ctx, v.ID); err != nil {
		return uc.fail(ctx, "variant_deleted", err)
	}

	uc.record(ctx, tenantID, "variant_deleted", "service_variant", id, map[string]any{"service_id": v.ServiceID})
	return nil
}
