package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

func money(d decimal.Decimal, st *models.ServicesSettings) string {
	return catalog.FormatMoney(d, st)
}

func optionalMoney(d *decimal.Decimal, st *models.ServicesSettings) *string {
	if d == nil {
		return nil
	}
	s := money(*d, st)
	return &s
}

func categoryName(s *models.Service) *string {
	if s.Category == nil {
		return nil
	}
	name := s.Category.Name
	return &name
}

type ServiceListItemDTO struct {
	ID              uint               `json:"id"`
	Name            string             `json:"name"`
	Slug            string             `json:"slug"`
	PricingType     models.PricingType `json:"pricing_type"`
	Price           string             `json:"price"`
	PriceDisplay    string             `json:"price_display"`
	DurationMinutes int                `json:"duration_minutes"`
	TotalDuration   int                `json:"total_duration"`
	CategoryID      *uint              `json:"category_id"`
	CategoryName    *string            `json:"category_name"`
	IsBookable      bool               `json:"is_bookable"`
	IsActive        bool               `json:"is_active"`
	IsFeatured      bool               `json:"is_featured"`
	MaxCapacity     int                `json:"max_capacity"`
	SortOrder       int                `json:"sort_order"`
	Icon            string             `json:"icon"`
	Color           string             `json:"color"`
}

func NewServiceListItem(s *models.Service, st *models.ServicesSettings) ServiceListItemDTO {
	return ServiceListItemDTO{
		ID:              s.ID,
		Name:            s.Name,
		Slug:            s.Slug,
		PricingType:     s.PricingType,
		Price:           money(s.Price, st),
		PriceDisplay:    catalog.PriceDisplay(s, st),
		DurationMinutes: s.DurationMinutes,
		TotalDuration:   catalog.TotalDuration(s),
		CategoryID:      s.CategoryID,
		CategoryName:    categoryName(s),
		IsBookable:      s.IsBookable,
		IsActive:        s.IsActive,
		IsFeatured:      s.IsFeatured,
		MaxCapacity:     s.MaxCapacity,
		SortOrder:       s.SortOrder,
		Icon:            s.Icon,
		Color:           s.Color,
	}
}

func NewServiceList(services []models.Service, st *models.ServicesSettings) []ServiceListItemDTO {
	out := make([]ServiceListItemDTO, 0, len(services))
	for i := range services {
		out = append(out, NewServiceListItem(&services[i], st))
	}
	return out
}

// SearchResultDTO is the compact row returned by the search endpoint.
type SearchResultDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Price           string  `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Category        *string `json:"category"`
	IsBookable      bool    `json:"is_bookable"`
}

func NewSearchResults(services []models.Service, st *models.ServicesSettings) []SearchResultDTO {
	out := make([]SearchResultDTO, 0, len(services))
	for i := range services {
		s := &services[i]
		out = append(out, SearchResultDTO{
			ID:              s.ID,
			Name:            s.Name,
			Price:           money(s.Price, st),
			DurationMinutes: s.DurationMinutes,
			Category:        categoryName(s),
			IsBookable:      s.IsBookable,
		})
	}
	return out
}

type VariantDTO struct {
	ID                 uint   `json:"id"`
	ServiceID          uint   `json:"service_id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	PriceAdjustment    string `json:"price_adjustment"`
	DurationAdjustment int    `json:"duration_adjustment"`
	FinalPrice         string `json:"final_price"`
	FinalDuration      int    `json:"final_duration"`
	SortOrder          int    `json:"sort_order"`
	IsActive           bool   `json:"is_active"`
}

func NewVariant(v *models.ServiceVariant, s *models.Service, st *models.ServicesSettings) VariantDTO {
	return VariantDTO{
		ID:                 v.ID,
		ServiceID:          v.ServiceID,
		Name:               v.Name,
		Description:        v.Description,
		PriceAdjustment:    money(v.PriceAdjustment, st),
		DurationAdjustment: v.DurationAdjustment,
		FinalPrice:         money(catalog.VariantFinalPrice(v, s), st),
		FinalDuration:      catalog.VariantFinalDuration(v, s),
		SortOrder:          v.SortOrder,
		IsActive:           v.IsActive,
	}
}

type AddonDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
	ServiceIDs      []uint `json:"service_ids"`
}

func NewAddon(a *models.ServiceAddon, st *models.ServicesSettings) AddonDTO {
	ids := make([]uint, 0, len(a.Services))
	for _, s := range a.Services {
		ids = append(ids, s.ID)
	}

	return AddonDTO{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		Price:           money(a.Price, st),
		DurationMinutes: a.DurationMinutes,
		IsActive:        a.IsActive,
		ServiceIDs:      ids,
	}
}

type CategoryRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ServiceDetailDTO struct {
	ID               uint               `json:"id"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"short_description"`
	Category         *CategoryRefDTO    `json:"category"`
	PricingType      models.PricingType `json:"pricing_type"`

	Price            string  `json:"price"`
	MinPrice         *string `json:"min_price"`
	MaxPrice         *string `json:"max_price"`
	Cost             string  `json:"cost"`
	TaxRate          *string `json:"tax_rate"`
	EffectiveTaxRate string  `json:"effective_tax_rate"`
	PriceWithTax     string  `json:"price_with_tax"`
	PriceWithoutTax  string  `json:"price_without_tax"`
	TaxAmount        string  `json:"tax_amount"`
	Profit           string  `json:"profit"`
	ProfitMargin     string  `json:"profit_margin"`
	PriceDisplay     string  `json:"price_display"`

	DurationMinutes int `json:"duration_minutes"`
	BufferBefore    int `json:"buffer_before"`
	BufferAfter     int `json:"buffer_after"`
	TotalDuration   int `json:"total_duration"`
	MaxCapacity     int `json:"max_capacity"`

	Icon  string `json:"icon"`
	Color string `json:"color"`
	Image string `json:"image"`

	IsBookable           bool `json:"is_bookable"`
	RequiresConfirmation bool `json:"requires_confirmation"`
	AllowOnlineBooking   bool `json:"allow_online_booking"`
	SortOrder            int  `json:"sort_order"`
	IsActive             bool `json:"is_active"`
	IsFeatured           bool `json:"is_featured"`

	SKU     *string `json:"sku"`
	Barcode string  `json:"barcode"`
	Notes   string  `json:"notes"`

	Variants []VariantDTO `json:"variants"`
	Addons   []AddonDTO   `json:"addons"`
}

// NewServiceDetail expects Category, Variants and Addons to be loaded.
// With activeOnly, inactive variants and add-ons are left out.
func NewServiceDetail(s *models.Service, st *models.ServicesSettings, activeOnly bool) ServiceDetailDTO {
	out := ServiceDetailDTO{
		ID:               s.ID,
		Name:             s.Name,
		Slug:             s.Slug,
		Description:      s.Description,
		ShortDescription: s.ShortDescription,
		PricingType:      s.PricingType,

		Price:            money(s.Price, st),
		MinPrice:         optionalMoney(s.MinPrice, st),
		MaxPrice:         optionalMoney(s.MaxPrice, st),
		Cost:             money(s.Cost, st),
		TaxRate:          optionalMoney(s.TaxRate, st),
		EffectiveTaxRate: catalog.EffectiveTaxRate(s, st).StringFixed(2),
		PriceWithTax:     money(catalog.PriceWithTax(s, st), st),
		PriceWithoutTax:  money(catalog.PriceWithoutTax(s, st), st),
		TaxAmount:        money(catalog.TaxAmount(s, st), st),
		Profit:           money(catalog.Profit(s, st), st),
		ProfitMargin:     catalog.ProfitMargin(s, st).StringFixed(2),
		PriceDisplay:     catalog.PriceDisplay(s, st),

		DurationMinutes: s.DurationMinutes,
		BufferBefore:    s.BufferBefore,
		BufferAfter:     s.BufferAfter,
		TotalDuration:   catalog.TotalDuration(s),
		MaxCapacity:     s.MaxCapacity,

		Icon:  s.Icon,
		Color: s.Color,
		Image: s.Image,

		IsBookable:           s.IsBookable,
		RequiresConfirmation: s.RequiresConfirmation,
		AllowOnlineBooking:   s.AllowOnlineBooking,
		SortOrder:            s.SortOrder,
		IsActive:             s.IsActive,
		IsFeatured:           s.IsFeatured,

		SKU:     s.SKU,
		Barcode: s.Barcode,
		Notes:   s.Notes,

		Variants: []VariantDTO{},
		Addons:   []AddonDTO{},
	}

	if s.Category != nil {
		out.Category = &CategoryRefDTO{ID: s.Category.ID, Name: s.Category.Name}
	}
	for i := range s.Variants {
		v := &s.Variants[i]
		if activeOnly && !v.IsActive {
			continue
		}
		out.Variants = append(out.Variants, NewVariant(v, s, st))
	}
	for i := range s.Addons {
		a := &s.Addons[i]
		if activeOnly && !a.IsActive {
			continue
		}
		out.Addons = append(out.Addons, NewAddon(a, st))
	}
	return out
}
