// Package memory keeps the catalog in process memory. It honours the same
// unique keys and error values as the postgres adapter, which makes it the
// storage used by tests and by STORAGE_DRIVER=memory.
package memory

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

type state struct {
	nextID uint

	settings   map[uint]models.ServicesSettings
	categories map[uint]models.ServiceCategory
	services   map[uint]models.Service
	variants   map[uint]models.ServiceVariant
	addons     map[uint]models.ServiceAddon
	addonLinks map[uint]map[uint]bool // addon id -> service ids
	packages   map[uint]models.ServicePackage
	items      map[uint]models.ServicePackageItem
}

func newState() *state {
	return &state{
		settings:   map[uint]models.ServicesSettings{},
		categories: map[uint]models.ServiceCategory{},
		services:   map[uint]models.Service{},
		variants:   map[uint]models.ServiceVariant{},
		addons:     map[uint]models.ServiceAddon{},
		addonLinks: map[uint]map[uint]bool{},
		packages:   map[uint]models.ServicePackage{},
		items:      map[uint]models.ServicePackageItem{},
	}
}

func (s *state) id() uint {
	s.nextID++
	return s.nextID
}

func copyMap[V any](m map[uint]V, cp func(V) V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

func same[V any](v V) V { return v }

func (s *state) clone() *state {
	links := make(map[uint]map[uint]bool, len(s.addonLinks))
	for addonID, set := range s.addonLinks {
		inner := make(map[uint]bool, len(set))
		for id := range set {
			inner[id] = true
		}
		links[addonID] = inner
	}

	return &state{
		nextID:     s.nextID,
		settings:   copyMap(s.settings, same[models.ServicesSettings]),
		categories: copyMap(s.categories, cloneCategory),
		services:   copyMap(s.services, cloneService),
		variants:   copyMap(s.variants, same[models.ServiceVariant]),
		addons:     copyMap(s.addons, cloneAddon),
		addonLinks: links,
		packages:   copyMap(s.packages, clonePackage),
		items:      copyMap(s.items, cloneItem),
	}
}

func cloneUint(p *uint) *uint {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneDecimal(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// The clone helpers detach pointer fields and drop loaded associations so
// that stored rows never alias caller memory.

func cloneCategory(c models.ServiceCategory) models.ServiceCategory {
	c.ParentID = cloneUint(c.ParentID)
	c.Parent = nil
	return c
}

func cloneService(s models.Service) models.Service {
	s.CategoryID = cloneUint(s.CategoryID)
	s.Category = nil
	s.MinPrice = cloneDecimal(s.MinPrice)
	s.MaxPrice = cloneDecimal(s.MaxPrice)
	s.TaxRate = cloneDecimal(s.TaxRate)
	s.SKU = cloneString(s.SKU)
	s.Variants = nil
	s.Addons = nil
	return s
}

func cloneAddon(a models.ServiceAddon) models.ServiceAddon {
	a.Services = nil
	return a
}

func clonePackage(p models.ServicePackage) models.ServicePackage {
	p.FixedPrice = cloneDecimal(p.FixedPrice)
	p.ValidityDays = cloneInt(p.ValidityDays)
	p.MaxUses = cloneInt(p.MaxUses)
	p.Items = nil
	return p
}

func cloneItem(it models.ServicePackageItem) models.ServicePackageItem {
	it.Service = models.Service{}
	return it
}
