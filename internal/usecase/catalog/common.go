package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/logger"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// base is shared by every use case of the catalog.
type base struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

// fail turns a storage error into the error returned to callers. Business
// errors pass through; anything else is logged and reported generically.
func (b *base) fail(ctx context.Context, op string, err error) error {
	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrValidation("conflict", "The change conflicts with an existing record")
	}

	logger.FromContext(ctx).Error("catalog operation failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return httperr.ErrInternal("internal_error")
}

// notFound maps a missing row to a not-found error with the given code.
func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, message)
	}
	return err
}

func (b *base) record(
	ctx context.Context,
	tenantID uint,
	action string,
	entity string,
	entityID uint,
	meta any,
) {
	if b.audit == nil {
		return
	}

	id := entityID
	b.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   audit.ActorFrom(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: &id,
		Metadata: meta,
	})
}

// loadSettings returns the tenant settings, creating the default row on
// first access. Losing the creation race to another request reloads.
func loadSettings(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
) (*models.ServicesSettings, error) {

	s, err := repo.GetSettings(ctx, tenantID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = domain.DefaultSettings(tenantID)
	err = repo.CreateSettings(ctx, s)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.GetSettings(ctx, tenantID)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// withSlug picks the first free slug from base and hands it to write. When
// write loses a race on the unique index the search resumes at the next
// suffix once; a second collision is reported as a validation error.
func withSlug(
	ctx context.Context,
	base string,
	exists domain.SlugExists,
	write func(slug string) error,
) error {
	start := 0
	for attempt := 0; attempt < 2; attempt++ {
		slug, n, err := domain.UniqueSlug(ctx, base, start, exists)
		if err != nil {
			return err
		}

		err = write(slug)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		start = n + 1
	}
	return httperr.ErrValidation("slug_conflict", "A record with this name was created at the same time, please retry")
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// resolveServices checks that every id names a service of the tenant.
func resolveServices(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	ids []uint,
) ([]models.Service, error) {

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := repo.ListServices(ctx, tenantID, domain.ServiceFilter{IDs: ids})
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found")
	}
	return found, nil
}

func resolveAddons(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	ids []uint,
) error {
	for _, id := range uniqueIDs(ids) {
		if _, err := repo.GetAddon(ctx, tenantID, id); err != nil {
			return notFound(err, "addon_not_found", "Addon not found")
		}
	}
	return nil
}

func resolveCategory(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	id uint,
	code string,
	message string,
) (*models.ServiceCategory, error) {
	c, err := repo.GetCategory(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, code, message)
	}
	return c, nil
}

// duplicateAs replaces a unique violation with a specific business error.
func duplicateAs(err error, be error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return be
	}
	return err
}
