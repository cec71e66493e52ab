package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// Repository is the storage port of the catalog. Lookups that miss return
// gorm.ErrRecordNotFound and unique index violations return
// gorm.ErrDuplicatedKey, whatever the backing store.
type Repository interface {
	// WithinTx runs fn in one all-or-nothing unit of work.
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Settings --------
	GetSettings(
		ctx context.Context,
		tenantID uint,
	) (*models.ServicesSettings, error)

	CreateSettings(
		ctx context.Context,
		s *models.ServicesSettings,
	) error

	SaveSettings(
		ctx context.Context,
		s *models.ServicesSettings,
	) error

	// -------- Category --------
	ListCategories(
		ctx context.Context,
		tenantID uint,
	) ([]models.ServiceCategory, error)

	GetCategory(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (*models.ServiceCategory, error)

	CategorySlugExists(
		ctx context.Context,
		tenantID uint,
		slug string,
		excludeID uint,
	) (bool, error)

	CreateCategory(
		ctx context.Context,
		c *models.ServiceCategory,
	) error

	SaveCategory(
		ctx context.Context,
		c *models.ServiceCategory,
	) error

	// ReparentCategories points every direct child of from at to.
	ReparentCategories(
		ctx context.Context,
		tenantID uint,
		from uint,
		to *uint,
	) error

	DeleteCategory(
		ctx context.Context,
		tenantID uint,
		id uint,
	) error

	// CountActiveServicesByCategory is keyed by category id.
	CountActiveServicesByCategory(
		ctx context.Context,
		tenantID uint,
	) (map[uint]int, error)

	// -------- Service --------
	ListServices(
		ctx context.Context,
		tenantID uint,
		f ServiceFilter,
	) ([]models.Service, error)

	// GetService loads the category, variants and add-ons.
	GetService(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (*models.Service, error)

	ServiceSlugExists(
		ctx context.Context,
		tenantID uint,
		slug string,
		excludeID uint,
	) (bool, error)

	ServiceSKUExists(
		ctx context.Context,
		tenantID uint,
		sku string,
		excludeID uint,
	) (bool, error)

	CreateService(
		ctx context.Context,
		s *models.Service,
	) error

	SaveService(
		ctx context.Context,
		s *models.Service,
	) error

	MoveServicesToCategory(
		ctx context.Context,
		tenantID uint,
		from uint,
		to *uint,
	) error

	// DeleteService also removes variants, package items and add-on links.
	DeleteService(
		ctx context.Context,
		tenantID uint,
		id uint,
	) error

	// -------- Variant --------
	GetVariant(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (*models.ServiceVariant, error)

	VariantNameExists(
		ctx context.Context,
		serviceID uint,
		name string,
		excludeID uint,
	) (bool, error)

	CreateVariant(
		ctx context.Context,
		v *models.ServiceVariant,
	) error

	SaveVariant(
		ctx context.Context,
		v *models.ServiceVariant,
	) error

	DeleteVariant(
		ctx context.Context,
		id uint,
	) error

	// -------- Addon --------
	ListAddons(
		ctx context.Context,
		tenantID uint,
		activeOnly bool,
	) ([]models.ServiceAddon, error)

	GetAddon(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (*models.ServiceAddon, error)

	CreateAddon(
		ctx context.Context,
		a *models.ServiceAddon,
	) error

	SaveAddon(
		ctx context.Context,
		a *models.ServiceAddon,
	) error

	DeleteAddon(
		ctx context.Context,
		tenantID uint,
		id uint,
	) error

	SetAddonServices(
		ctx context.Context,
		addonID uint,
		serviceIDs []uint,
	) error

	SetServiceAddons(
		ctx context.Context,
		serviceID uint,
		addonIDs []uint,
	) error

	// -------- Package --------
	ListPackages(
		ctx context.Context,
		tenantID uint,
		activeOnly bool,
	) ([]models.ServicePackage, error)

	// GetPackage loads items ordered by sort order, each with its service.
	GetPackage(
		ctx context.Context,
		tenantID uint,
		id uint,
	) (*models.ServicePackage, error)

	PackageSlugExists(
		ctx context.Context,
		tenantID uint,
		slug string,
		excludeID uint,
	) (bool, error)

	CreatePackage(
		ctx context.Context,
		p *models.ServicePackage,
	) error

	SavePackage(
		ctx context.Context,
		p *models.ServicePackage,
	) error

	DeletePackage(
		ctx context.Context,
		tenantID uint,
		id uint,
	) error

	ReplacePackageItems(
		ctx context.Context,
		packageID uint,
		items []models.ServicePackageItem,
	) error
}

// ServiceFilter combines its fields with AND. Zero values mean "any".
// A nil CategoryIDs does not filter; a non-nil one restricts to those ids.
type ServiceFilter struct {
	IDs                []uint
	Query              string
	CategoryIDs        []uint
	PricingType        models.PricingType
	IsActive           *bool
	IsBookable         *bool
	IsFeatured         *bool
	AllowOnlineBooking *bool
	MinPrice           *decimal.Decimal
	MaxPrice           *decimal.Decimal
	OrderBy            Ordering
	Limit              int
}
