package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// Store is the shared state behind every Repository handle.
type Store struct {
	mu   sync.Mutex // guards st and last
	txMu sync.Mutex // serializes writers and transactions
	st   *state
	last time.Time
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// now is strictly increasing so created_at ordering is deterministic.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

type Repository struct {
	store *Store
	inTx  bool
}

func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// write runs fn with the state locked. Outside a transaction it also takes
// the writer lock so it cannot interleave with a running transaction.
func (r *Repository) write(fn func(st *state) error) error {
	if !r.inTx {
		r.store.txMu.Lock()
		defer r.store.txMu.Unlock()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.st)
}

func (r *Repository) read(fn func(st *state) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.st)
}

func (r *Repository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	if r.inTx {
		return fn(r)
	}

	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.Lock()
	snapshot := r.store.st.clone()
	r.store.mu.Unlock()

	if err := fn(&Repository{store: r.store, inTx: true}); err != nil {
		r.store.mu.Lock()
		r.store.st = snapshot
		r.store.mu.Unlock()
		return err
	}
	return nil
}

func idIn(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *Repository) GetSettings(
	ctx context.Context,
	tenantID uint,
) (*models.ServicesSettings, error) {

	var out *models.ServicesSettings
	err := r.read(func(st *state) error {
		for _, s := range st.settings {
			if s.TenantID == tenantID {
				cp := s
				out = &cp
				return nil
			}
		}
		return gorm.ErrRecordNotFound
	})
	return out, err
}

func (r *Repository) CreateSettings(
	ctx context.Context,
	s *models.ServicesSettings,
) error {
	return r.write(func(st *state) error {
		for _, existing := range st.settings {
			if existing.TenantID == s.TenantID {
				return gorm.ErrDuplicatedKey
			}
		}
		s.ID = st.id()
		s.CreatedAt = r.store.now()
		s.UpdatedAt = s.CreatedAt
		st.settings[s.ID] = *s
		return nil
	})
}

func (r *Repository) SaveSettings(
	ctx context.Context,
	s *models.ServicesSettings,
) error {
	return r.write(func(st *state) error {
		if _, ok := st.settings[s.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
		s.UpdatedAt = r.store.now()
		st.settings[s.ID] = *s
		return nil
	})
}

// --------------------------------------------------
// Category
// --------------------------------------------------

func (r *Repository) ListCategories(
	ctx context.Context,
	tenantID uint,
) ([]models.ServiceCategory, error) {

	var out []models.ServiceCategory
	err := r.read(func(st *state) error {
		for _, c := range st.categories {
			if c.TenantID == tenantID {
				out = append(out, cloneCategory(c))
			}
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, err
}

func (r *Repository) GetCategory(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServiceCategory, error) {

	var out *models.ServiceCategory
	err := r.read(func(st *state) error {
		c, ok := st.categories[id]
		if !ok || c.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}
		cp := cloneCategory(c)
		out = &cp
		return nil
	})
	return out, err
}

func (r *Repository) CategorySlugExists(
	ctx context.Context,
	tenantID uint,
	slug string,
	excludeID uint,
) (bool, error) {

	found := false
	err := r.read(func(st *state) error {
		for _, c := range st.categories {
			if c.TenantID == tenantID && c.Slug == slug && c.ID != excludeID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func categorySlugTaken(st *state, c *models.ServiceCategory) bool {
	for _, other := range st.categories {
		if other.ID != c.ID && other.TenantID == c.TenantID && other.Slug == c.Slug {
			return true
		}
	}
	return false
}

func (r *Repository) CreateCategory(
	ctx context.Context,
	c *models.ServiceCategory,
) error {
	return r.write(func(st *state) error {
		if categorySlugTaken(st, c) {
			return gorm.ErrDuplicatedKey
		}
		c.ID = st.id()
		c.CreatedAt = r.store.now()
		c.UpdatedAt = c.CreatedAt
		st.categories[c.ID] = cloneCategory(*c)
		return nil
	})
}

func (r *Repository) SaveCategory(
	ctx context.Context,
	c *models.ServiceCategory,
) error {
	return r.write(func(st *state) error {
		if _, ok := st.categories[c.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
		if categorySlugTaken(st, c) {
			return gorm.ErrDuplicatedKey
		}
		c.UpdatedAt = r.store.now()
		st.categories[c.ID] = cloneCategory(*c)
		return nil
	})
}

func (r *Repository) ReparentCategories(
	ctx context.Context,
	tenantID uint,
	from uint,
	to *uint,
) error {
	return r.write(func(st *state) error {
		for id, c := range st.categories {
			if c.TenantID == tenantID && c.ParentID != nil && *c.ParentID == from {
				c.ParentID = cloneUint(to)
				st.categories[id] = c
			}
		}
		return nil
	})
}

// DeleteCategory mirrors ON DELETE SET NULL on children and services.
func (r *Repository) DeleteCategory(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.write(func(st *state) error {
		c, ok := st.categories[id]
		if !ok || c.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}

		// Children cascade and services are set null, as the schema does.
		doomed := map[uint]bool{id: true}
		for grew := true; grew; {
			grew = false
			for cid, child := range st.categories {
				if !doomed[cid] && child.ParentID != nil && doomed[*child.ParentID] {
					doomed[cid] = true
					grew = true
				}
			}
		}
		for sid, svc := range st.services {
			if svc.CategoryID != nil && doomed[*svc.CategoryID] {
				svc.CategoryID = nil
				st.services[sid] = svc
			}
		}

		for cid := range doomed {
			delete(st.categories, cid)
		}
		return nil
	})
}

func (r *Repository) CountActiveServicesByCategory(
	ctx context.Context,
	tenantID uint,
) (map[uint]int, error) {

	counts := map[uint]int{}
	err := r.read(func(st *state) error {
		for _, s := range st.services {
			if s.TenantID == tenantID && s.IsActive && s.CategoryID != nil {
				counts[*s.CategoryID]++
			}
		}
		return nil
	})
	return counts, err
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func matchService(s models.Service, tenantID uint, f domain.ServiceFilter) bool {
	if s.TenantID != tenantID {
		return false
	}
	if f.IDs != nil && !idIn(f.IDs, s.ID) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		sku := ""
		if s.SKU != nil {
			sku = *s.SKU
		}
		if !containsFold(s.Name, q) && !containsFold(s.Description, q) &&
			!containsFold(sku, q) && !containsFold(s.Barcode, q) {
			return false
		}
	}
	if f.CategoryIDs != nil && (s.CategoryID == nil || !idIn(f.CategoryIDs, *s.CategoryID)) {
		return false
	}
	if f.PricingType != "" && s.PricingType != f.PricingType {
		return false
	}
	if f.IsActive != nil && s.IsActive != *f.IsActive {
		return false
	}
	if f.IsBookable != nil && s.IsBookable != *f.IsBookable {
		return false
	}
	if f.IsFeatured != nil && s.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.AllowOnlineBooking != nil && s.AllowOnlineBooking != *f.AllowOnlineBooking {
		return false
	}
	if f.MinPrice != nil && s.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && s.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func attachCategory(st *state, s *models.Service) {
	if s.CategoryID == nil {
		return
	}
	if c, ok := st.categories[*s.CategoryID]; ok {
		cp := cloneCategory(c)
		s.Category = &cp
	}
}

func (r *Repository) ListServices(
	ctx context.Context,
	tenantID uint,
	f domain.ServiceFilter,
) ([]models.Service, error) {

	var out []models.Service
	err := r.read(func(st *state) error {
		for _, s := range st.services {
			if !matchService(s, tenantID, f) {
				continue
			}
			cp := cloneService(s)
			attachCategory(st, &cp)
			out = append(out, cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.OrderBy.Sort(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *Repository) GetService(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.Service, error) {

	var out *models.Service
	err := r.read(func(st *state) error {
		s, ok := st.services[id]
		if !ok || s.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}

		cp := cloneService(s)
		attachCategory(st, &cp)

		for _, v := range st.variants {
			if v.ServiceID == id {
				cp.Variants = append(cp.Variants, v)
			}
		}
		sort.Slice(cp.Variants, func(i, j int) bool {
			a, b := cp.Variants[i], cp.Variants[j]
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.Name < b.Name
		})

		for addonID, set := range st.addonLinks {
			if set[id] {
				cp.Addons = append(cp.Addons, cloneAddon(st.addons[addonID]))
			}
		}
		sort.Slice(cp.Addons, func(i, j int) bool {
			return cp.Addons[i].Name < cp.Addons[j].Name
		})

		out = &cp
		return nil
	})
	return out, err
}

func (r *Repository) ServiceSlugExists(
	ctx context.Context,
	tenantID uint,
	slug string,
	excludeID uint,
) (bool, error) {

	found := false
	err := r.read(func(st *state) error {
		for _, s := range st.services {
			if s.TenantID == tenantID && s.Slug == slug && s.ID != excludeID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *Repository) ServiceSKUExists(
	ctx context.Context,
	tenantID uint,
	sku string,
	excludeID uint,
) (bool, error) {

	found := false
	err := r.read(func(st *state) error {
		for _, s := range st.services {
			if s.TenantID == tenantID && s.SKU != nil && *s.SKU == sku && s.ID != excludeID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func serviceKeysTaken(st *state, s *models.Service) bool {
	for _, other := range st.services {
		if other.ID == s.ID || other.TenantID != s.TenantID {
			continue
		}
		if other.Slug == s.Slug {
			return true
		}
		if s.SKU != nil && other.SKU != nil && *s.SKU == *other.SKU {
			return true
		}
	}
	return false
}

func (r *Repository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.write(func(st *state) error {
		if serviceKeysTaken(st, s) {
			return gorm.ErrDuplicatedKey
		}
		s.ID = st.id()
		s.CreatedAt = r.store.now()
		s.UpdatedAt = s.CreatedAt
		st.services[s.ID] = cloneService(*s)
		return nil
	})
}

func (r *Repository) SaveService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.write(func(st *state) error {
		if _, ok := st.services[s.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
		if serviceKeysTaken(st, s) {
			return gorm.ErrDuplicatedKey
		}
		s.UpdatedAt = r.store.now()
		st.services[s.ID] = cloneService(*s)
		return nil
	})
}

func (r *Repository) MoveServicesToCategory(
	ctx context.Context,
	tenantID uint,
	from uint,
	to *uint,
) error {
	return r.write(func(st *state) error {
		for id, s := range st.services {
			if s.TenantID == tenantID && s.CategoryID != nil && *s.CategoryID == from {
				s.CategoryID = cloneUint(to)
				st.services[id] = s
			}
		}
		return nil
	})
}

func (r *Repository) DeleteService(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.write(func(st *state) error {
		s, ok := st.services[id]
		if !ok || s.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}

		for vid, v := range st.variants {
			if v.ServiceID == id {
				delete(st.variants, vid)
			}
		}
		for iid, it := range st.items {
			if it.ServiceID == id {
				delete(st.items, iid)
			}
		}
		for _, set := range st.addonLinks {
			delete(set, id)
		}

		delete(st.services, id)
		return nil
	})
}

// --------------------------------------------------
// Variant
// --------------------------------------------------

func (r *Repository) GetVariant(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServiceVariant, error) {

	var out *models.ServiceVariant
	err := r.read(func(st *state) error {
		v, ok := st.variants[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		if s, ok := st.services[v.ServiceID]; !ok || s.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}
		out = &v
		return nil
	})
	return out, err
}

func (r *Repository) VariantNameExists(
	ctx context.Context,
	serviceID uint,
	name string,
	excludeID uint,
) (bool, error) {

	found := false
	err := r.read(func(st *state) error {
		for _, v := range st.variants {
			if v.ServiceID == serviceID && v.Name == name && v.ID != excludeID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func variantNameTaken(st *state, v *models.ServiceVariant) bool {
	for _, other := range st.variants {
		if other.ID != v.ID && other.ServiceID == v.ServiceID && other.Name == v.Name {
			return true
		}
	}
	return false
}

func (r *Repository) CreateVariant(
	ctx context.Context,
	v *models.ServiceVariant,
) error {
	return r.write(func(st *state) error {
		if variantNameTaken(st, v) {
			return gorm.ErrDuplicatedKey
		}
		v.ID = st.id()
		v.CreatedAt = r.store.now()
		v.UpdatedAt = v.CreatedAt
		st.variants[v.ID] = *v
		return nil
	})
}

func (r *Repository) SaveVariant(
	ctx context.Context,
	v *models.ServiceVariant,
) error {
	return r.write(func(st *state) error {
		if _, ok := st.variants[v.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
		if variantNameTaken(st, v) {
			return gorm.ErrDuplicatedKey
		}
		v.UpdatedAt = r.store.now()
		st.variants[v.ID] = *v
		return nil
	})
}

func (r *Repository) DeleteVariant(
	ctx context.Context,
	id uint,
) error {
	return r.write(func(st *state) error {
		delete(st.variants, id)
		return nil
	})
}

// --------------------------------------------------
// Addon
// --------------------------------------------------

func attachServices(st *state, a *models.ServiceAddon) {
	for sid := range st.addonLinks[a.ID] {
		if s, ok := st.services[sid]; ok {
			a.Services = append(a.Services, cloneService(s))
		}
	}
	sort.Slice(a.Services, func(i, j int) bool {
		return a.Services[i].Name < a.Services[j].Name
	})
}

func (r *Repository) ListAddons(
	ctx context.Context,
	tenantID uint,
	activeOnly bool,
) ([]models.ServiceAddon, error) {

	var out []models.ServiceAddon
	err := r.read(func(st *state) error {
		for _, a := range st.addons {
			if a.TenantID != tenantID || (activeOnly && !a.IsActive) {
				continue
			}
			cp := cloneAddon(a)
			attachServices(st, &cp)
			out = append(out, cp)
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *Repository) GetAddon(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServiceAddon, error) {

	var out *models.ServiceAddon
	err := r.read(func(st *state) error {
		a, ok := st.addons[id]
		if !ok || a.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}
		cp := cloneAddon(a)
		attachServices(st, &cp)
		out = &cp
		return nil
	})
	return out, err
}

func (r *Repository) CreateAddon(
	ctx context.Context,
	a *models.ServiceAddon,
) error {
	return r.write(func(st *state) error {
		a.ID = st.id()
		a.CreatedAt = r.store.now()
		a.UpdatedAt = a.CreatedAt
		st.addons[a.ID] = cloneAddon(*a)
		return nil
	})
}

func (r *Repository) SaveAddon(
	ctx context.Context,
	a *models.ServiceAddon,
) error {
	return r.write(func(st *state) error {
		if _, ok := st.addons[a.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
		a.UpdatedAt = r.store.now()
		st.addons[a.ID] = cloneAddon(*a)
		return nil
	})
}

func (r *Repository) DeleteAddon(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.write(func(st *state) error {
		a, ok := st.addons[id]
		if !ok || a.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}
		delete(st.addonLinks, id)
		delete(st.addons, id)
		return nil
	})
}

func (r *Repository) SetAddonServices(
	ctx context.Context,
	addonID uint,
	serviceIDs []uint,
) error {
	return r.write(func(st *state) error {
		set := make(map[uint]bool, len(serviceIDs))
		for _, id := range serviceIDs {
			set[id] = true
		}
		st.addonLinks[addonID] = set
		return nil
	})
}

func (r *Repository) SetServiceAddons(
	ctx context.Context,
	serviceID uint,
	addonIDs []uint,
) error {
	return r.write(func(st *state) error {
		for _, set := range st.addonLinks {
			delete(set, serviceID)
		}
		for _, id := range addonIDs {
			if st.addonLinks[id] == nil {
				st.addonLinks[id] = map[uint]bool{}
			}
			st.addonLinks[id][serviceID] = true
		}
		return nil
	})
}

// --------------------------------------------------
// Package
// --------------------------------------------------

func attachItems(st *state, p *models.ServicePackage) {
	for _, it := range st.items {
		if it.PackageID != p.ID {
			continue
		}
		cp := it
		if s, ok := st.services[it.ServiceID]; ok {
			cp.Service = cloneService(s)
		}
		p.Items = append(p.Items, cp)
	}
	sort.Slice(p.Items, func(i, j int) bool {
		a, b := p.Items[i], p.Items[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
}

func (r *Repository) ListPackages(
	ctx context.Context,
	tenantID uint,
	activeOnly bool,
) ([]models.ServicePackage, error) {

	var out []models.ServicePackage
	err := r.read(func(st *state) error {
		for _, p := range st.packages {
			if p.TenantID != tenantID || (activeOnly && !p.IsActive) {
				continue
			}
			cp := clonePackage(p)
			attachItems(st, &cp)
			out = append(out, cp)
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, err
}

func (r *Repository) GetPackage(
	ctx context.Context,
	tenantID uint,
	id uint,
) (*models.ServicePackage, error) {

	var out *models.ServicePackage
	err := r.read(func(st *state) error {
		p, ok := st.packages[id]
		if !ok || p.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}
		cp := clonePackage(p)
		attachItems(st, &cp)
		out = &cp
		return nil
	})
	return out, err
}

func (r *Repository) PackageSlugExists(
	ctx context.Context,
	tenantID uint,
	slug string,
	excludeID uint,
) (bool, error) {

	found := false
	err := r.read(func(st *state) error {
		for _, p := range st.packages {
			if p.TenantID == tenantID && p.Slug == slug && p.ID != excludeID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func packageSlugTaken(st *state, p *models.ServicePackage) bool {
	for _, other := range st.packages {
		if other.ID != p.ID && other.TenantID == p.TenantID && other.Slug == p.Slug {
			return true
		}
	}
	return false
}

func (r *Repository) CreatePackage(
	ctx context.Context,
	p *models.ServicePackage,
) error {
	return r.write(func(st *state) error {
		if packageSlugTaken(st, p) {
			return gorm.ErrDuplicatedKey
		}
		p.ID = st.id()
		p.CreatedAt = r.store.now()
		p.UpdatedAt = p.CreatedAt
		st.packages[p.ID] = clonePackage(*p)
		return nil
	})
}

func (r *Repository) SavePackage(
	ctx context.Context,
	p *models.ServicePackage,
) error {
	return r.write(func(st *state) error {
		if _, ok := st.packages[p.ID]; !ok {
			return gorm.ErrRecordNotFound
		}
		if packageSlugTaken(st, p) {
			return gorm.ErrDuplicatedKey
		}
		p.UpdatedAt = r.store.now()
		st.packages[p.ID] = clonePackage(*p)
		return nil
	})
}

func (r *Repository) DeletePackage(
	ctx context.Context,
	tenantID uint,
	id uint,
) error {
	return r.write(func(st *state) error {
		p, ok := st.packages[id]
		if !ok || p.TenantID != tenantID {
			return gorm.ErrRecordNotFound
		}
		for iid, it := range st.items {
			if it.PackageID == id {
				delete(st.items, iid)
			}
		}
		delete(st.packages, id)
		return nil
	})
}

func (r *Repository) ReplacePackageItems(
	ctx context.Context,
	packageID uint,
	items []models.ServicePackageItem,
) error {
	return r.write(func(st *state) error {
		seen := make(map[uint]bool, len(items))
		for _, it := range items {
			if seen[it.ServiceID] {
				return gorm.ErrDuplicatedKey
			}
			seen[it.ServiceID] = true
		}

		for iid, it := range st.items {
			if it.PackageID == packageID {
				delete(st.items, iid)
			}
		}
		for i := range items {
			items[i].ID = st.id()
			items[i].PackageID = packageID
			st.items[items[i].ID] = cloneItem(items[i])
		}
		return nil
	})
}

var _ domain.Repository = (*Repository)(nil)
