package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CatalogGormRepository{db: tx})
	})
}

// insert runs in its own (nested) transaction so that a unique violation
// rolls back to a savepoint and leaves any outer transaction usable.
func (r *CatalogGormRepository) insert(ctx context.Context, value any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(value).Error
	})
}

func (r *CatalogGormRepository) save(ctx context.Context, value any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(value).Error
	})
}

func (r *CatalogGormRepository) exists(
	ctx context.Context,
	model any,
	where string,
	args ...any,
) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where(where, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *CatalogGormRepository) GetSettings(
	ctx context.Context,
	tenantID uint,
) (*models.ServicesSettings, error) {

	var s models.ServicesSettings
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateSettings(
	ctx context.Context,
	s *models.ServicesSettings,
) error {
	return r.insert(ctx, s)
}

func (r *CatalogGormRepository) SaveSettings(
	ctx context.Context,
	s *models.ServicesSettings,
) error {
	return r.save(ctx, s)
}

// --------------------------------------------------
// Category
// --------------------------------------------------

func (r *CatalogGormRepository) ListCategories(
	ctx context.Context,
	tenantID uint,
) ([]models.ServiceCategory, error) {

	var cats []models.ServiceCategory
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC, id ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *CatalogGormRepository) GetCategory(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServiceCategory, error) {

	var c models.ServiceCategory
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogGormRepository) CategorySlugExists(
	ctx context.Context,
	tenantID uint,
	slug string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, &models.ServiceCategory{},
		"tenant_id = ? AND slug = ? AND id <> ?", tenantID, slug, excludeID)
}

func (r *CatalogGormRepository) CreateCategory(
	ctx context.Context,
	c *models.ServiceCategory,
) error {
	return r.insert(ctx, c)
}

func (r *CatalogGormRepository) SaveCategory(
	ctx context.Context,
	c *models.ServiceCategory,
) error {
	return r.save(ctx, c)
}

func (r *CatalogGormRepository) ReparentCategories(
	ctx context.Context,
	tenantID uint,
	from uint,
	to *uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceCategory{}).
		Where("tenant_id = ? AND parent_id = ?", tenantID, from).
		Update("parent_id", to).Error
}

func (r *CatalogGormRepository) DeleteCategory(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.ServiceCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CatalogGormRepository) CountActiveServicesByCategory(
	ctx context.Context,
	tenantID uint,
) (map[uint]int, error) {

	var rows []struct {
		CategoryID uint
		Count      int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Select("category_id, COUNT(*) AS count").
		Where("tenant_id = ? AND is_active = ? AND category_id IS NOT NULL", tenantID, true).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	tenantID uint,
	f domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("tenant_id = ?", tenantID)

	if f.IDs != nil {
		q = q.Where("id IN ?", nonEmpty(f.IDs))
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + likeEscaper.Replace(query) + "%"
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR `+
				`LOWER(COALESCE(sku, '')) LIKE ? ESCAPE '\' OR LOWER(barcode) LIKE ? ESCAPE '\'`,
			like, like, like, like,
		)
	}
	if f.CategoryIDs != nil {
		q = q.Where("category_id IN ?", nonEmpty(f.CategoryIDs))
	}
	if f.PricingType != "" {
		q = q.Where("pricing_type = ?", f.PricingType)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.IsBookable != nil {
		q = q.Where("is_bookable = ?", *f.IsBookable)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.AllowOnlineBooking != nil {
		q = q.Where("allow_online_booking = ?", *f.AllowOnlineBooking)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var services []models.Service
	if err := q.Order(f.OrderBy.SQL()).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// nonEmpty keeps "IN ?" valid SQL for an empty set; id 0 never exists.
func nonEmpty(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, name ASC")
		}).
		Preload("Addons", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) ServiceSlugExists(
	ctx context.Context,
	tenantID uint,
	slug string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, &models.Service{},
		"tenant_id = ? AND slug = ? AND id <> ?", tenantID, slug, excludeID)
}

func (r *CatalogGormRepository) ServiceSKUExists(
	ctx context.Context,
	tenantID uint,
	sku string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, &models.Service{},
		"tenant_id = ? AND sku = ? AND id <> ?", tenantID, sku, excludeID)
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.insert(ctx, s)
}

func (r *CatalogGormRepository) SaveService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.save(ctx, s)
}

func (r *CatalogGormRepository) MoveServicesToCategory(
	ctx context.Context,
	tenantID uint,
	from uint,
	to *uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("tenant_id = ? AND category_id = ?", tenantID, from).
		Update("category_id", to).Error
}

func (r *CatalogGormRepository) DeleteService(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc := models.Service{ID: id}
		if err := tx.
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&svc).Error; err != nil {
			return err
		}

		if err := tx.Model(&svc).Association("Addons").Clear(); err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.ServicePackageItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
}

// --------------------------------------------------
// Variant
// --------------------------------------------------

func (r *CatalogGormRepository) GetVariant(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServiceVariant, error) {

	var v models.ServiceVariant
	if err := r.db.WithContext(ctx).
		Joins("JOIN services ON services.id = service_variants.service_id").
		Where("service_variants.id = ? AND services.tenant_id = ?", id, tenantID).
		First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *CatalogGormRepository) VariantNameExists(
	ctx context.Context,
	serviceID uint,
	name string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, &models.ServiceVariant{},
		"service_id = ? AND name = ? AND id <> ?", serviceID, name, excludeID)
}

func (r *CatalogGormRepository) CreateVariant(
	ctx context.Context,
	v *models.ServiceVariant,
) error {
	return r.insert(ctx, v)
}

func (r *CatalogGormRepository) SaveVariant(
	ctx context.Context,
	v *models.ServiceVariant,
) error {
	return r.save(ctx, v)
}

func (r *CatalogGormRepository) DeleteVariant(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ServiceVariant{}, id).Error
}

// --------------------------------------------------
// Addon
// --------------------------------------------------

func (r *CatalogGormRepository) ListAddons(
	ctx context.Context,
	tenantID uint,
	activeOnly bool,
) ([]models.ServiceAddon, error) {

	q := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("tenant_id = ?", tenantID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var addons []models.ServiceAddon
	if err := q.Order("name ASC, id ASC").Find(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}

func (r *CatalogGormRepository) GetAddon(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServiceAddon, error) {

	var a models.ServiceAddon
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *CatalogGormRepository) CreateAddon(
	ctx context.Context,
	a *models.ServiceAddon,
) error {
	return r.insert(ctx, a)
}

func (r *CatalogGormRepository) SaveAddon(
	ctx context.Context,
	a *models.ServiceAddon,
) error {
	return r.save(ctx, a)
}

func (r *CatalogGormRepository) DeleteAddon(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.ServiceAddon
		if err := tx.
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&a).Error; err != nil {
			return err
		}
		if err := tx.Model(&a).Association("Services").Clear(); err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}

func (r *CatalogGormRepository) SetAddonServices(
	ctx context.Context,
	addonID uint,
	serviceIDs []uint,
) error {
	services := make([]models.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		services = append(services, models.Service{ID: id})
	}

	addon := models.ServiceAddon{ID: addonID}
	return r.db.WithContext(ctx).
		Model(&addon).
		Omit("Services.*").
		Association("Services").
		Replace(services)
}

func (r *CatalogGormRepository) SetServiceAddons(
	ctx context.Context,
	serviceID uint,
	addonIDs []uint,
) error {
	addons := make([]models.ServiceAddon, 0, len(addonIDs))
	for _, id := range addonIDs {
		addons = append(addons, models.ServiceAddon{ID: id})
	}

	svc := models.Service{ID: serviceID}
	return r.db.WithContext(ctx).
		Model(&svc).
		Omit("Addons.*").
		Association("Addons").
		Replace(addons)
}

// --------------------------------------------------
// Package
// --------------------------------------------------

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Items.Service")
}

func (r *CatalogGormRepository) ListPackages(
	ctx context.Context,
	tenantID uint,
	activeOnly bool,
) ([]models.ServicePackage, error) {

	q := preloadItems(r.db.WithContext(ctx)).
		Where("tenant_id = ?", tenantID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var pkgs []models.ServicePackage
	if err := q.Order("sort_order ASC, name ASC, id ASC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *CatalogGormRepository) GetPackage(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServicePackage, error) {

	var p models.ServicePackage
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogGormRepository) PackageSlugExists(
	ctx context.Context,
	tenantID uint,
	slug string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, &models.ServicePackage{},
		"tenant_id = ? AND slug = ? AND id <> ?", tenantID, slug, excludeID)
}

func (r *CatalogGormRepository) CreatePackage(
	ctx context.Context,
	p *models.ServicePackage,
) error {
	return r.insert(ctx, p)
}

func (r *CatalogGormRepository) SavePackage(
	ctx context.Context,
	p *models.ServicePackage,
) error {
	return r.save(ctx, p)
}

func (r *CatalogGormRepository) DeletePackage(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.ServicePackage
		if err := tx.
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&p).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", id).Delete(&models.ServicePackageItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func (r *CatalogGormRepository) ReplacePackageItems(
	ctx context.Context,
	packageID uint,
	items []models.ServicePackageItem,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", packageID).Delete(&models.ServicePackageItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].PackageID = packageID
		}
		return tx.Omit(clause.Associations).Create(&items).Error
	})
}

var _ domain.Repository = (*CatalogGormRepository)(nil)
