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

type AddonInput struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"duration_minutes"`
	IsActive        *bool            `json:"is_active"`
	ServiceIDs      *[]uint          `json:"service_ids"`
}

func (in AddonInput) apply(a *models.ServiceAddon) {
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	patch.Assign(&a.Description, in.Description)
	patch.Assign(&a.Price, in.Price)
	patch.Assign(&a.DurationMinutes, in.DurationMinutes)
	patch.Assign(&a.IsActive, in.IsActive)
}

type Addons struct {
	base
}

func NewAddons(repo domain.Repository, audit *audit.Dispatcher) *Addons {
	return &Addons{base{repo: repo, audit: audit}}
}

// linkServices replaces the service set of the add-on when ids were sent.
func linkServices(
	ctx context.Context,
	tx domain.Repository,
	tenantID uint,
	addonID uint,
	ids *[]uint,
) error {
	if ids == nil {
		return nil
	}

	services, err := resolveServices(ctx, tx, tenantID, *ids)
	if err != nil {
		return err
	}

	serviceIDs := make([]uint, 0, len(services))
	for _, s := range services {
		serviceIDs = append(serviceIDs, s.ID)
	}
	return tx.SetAddonServices(ctx, addonID, serviceIDs)
}

func (uc *Addons) Create(
	ctx context.Context,
	tenantID uint,
	in AddonInput,
) (*models.ServiceAddon, error) {

	a := &models.ServiceAddon{TenantID: tenantID, Price: decimal.Zero, IsActive: true}
	in.apply(a)
	if err := domain.ValidateAddon(a); err != nil {
		return nil, err
	}

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.CreateAddon(ctx, a); err != nil {
			return err
		}
		return linkServices(ctx, tx, tenantID, a.ID, in.ServiceIDs)
	})
	if err != nil {
		return nil, uc.fail(ctx, "addon_created", err)
	}

	uc.record(ctx, tenantID, "addon_created", "service_addon", a.ID, map[string]any{"name": a.Name})
	return a, nil
}

func (uc *Addons) Update(
	ctx context.Context,
	tenantID uint,
	id uint,
	in AddonInput,
) (*models.ServiceAddon, error) {

	var updated *models.ServiceAddon

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		a, err := tx.GetAddon(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "addon_not_found", "Addon not found")
		}

		in.apply(a)
		if err := domain.ValidateAddon(a); err != nil {
			return err
		}
		a.Services = nil
		if err := tx.SaveAddon(ctx, a); err != nil {
			return err
		}
		if err := linkServices(ctx, tx, tenantID, a.ID, in.ServiceIDs); err != nil {
			return err
		}

		updated = a
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "addon_updated", err)
	}

	uc.record(ctx, tenantID, "addon_updated", "service_addon", updated.ID, nil)
	return updated, nil
}

func (uc *Addons) Delete(ctx context.Context, tenantID, id uint) error {
	if err := uc.repo.DeleteAddon(ctx, tenantID, id); err != nil {
		return uc.fail(ctx, "addon_deleted", notFound(err, "addon_not_found", "Addon not found"))
	}

	uc.record(ctx, tenantID, "addon_deleted", "service_addon", id, nil)
	return nil
}

func (uc *Addons) List(ctx context.Context, tenantID uint, activeOnly bool) ([]dto.AddonDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "addon_list", err)
	}

	addons, err := uc.repo.ListAddons(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, uc.fail(ctx, "addon_list", err)
	}

	out := make([]dto.AddonDTO, 0, len(addons))
	for i := range addons {
		out = append(out, dto.NewAddon(&addons[i], st))
	}
	return out, nil
}
