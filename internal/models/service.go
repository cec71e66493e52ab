package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricingType string

const (
	PricingFixed    PricingType = "fixed"
	PricingHourly   PricingType = "hourly"
	PricingFrom     PricingType = "from"
	PricingVariable PricingType = "variable"
	PricingFree     PricingType = "free"
)

func (p PricingType) Valid() bool {
	switch p {
	case PricingFixed, PricingHourly, PricingFrom, PricingVariable, PricingFree:
		return true
	}
	return false
}

type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index;uniqueIndex:idx_service_tenant_slug;uniqueIndex:idx_service_tenant_sku" json:"tenant_id"`

	Name             string `gorm:"size:200;not null" json:"name"`
	Slug             string `gorm:"size:220;not null;uniqueIndex:idx_service_tenant_slug" json:"slug"`
	Description      string `gorm:"type:text" json:"description"`
	ShortDescription string `gorm:"size:500" json:"short_description"`

	CategoryID *uint            `gorm:"index" json:"category_id"`
	Category   *ServiceCategory `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`

	PricingType PricingType      `gorm:"size:20;not null" json:"pricing_type"`
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	MinPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"min_price"`
	MaxPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"max_price"`
	Cost        decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"cost"`
	TaxRate     *decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_rate"`

	DurationMinutes int `gorm:"not null" json:"duration_minutes"`
	BufferBefore    int `gorm:"not null" json:"buffer_before"`
	BufferAfter     int `gorm:"not null" json:"buffer_after"`
	MaxCapacity     int `gorm:"not null" json:"max_capacity"`

	Icon  string `gorm:"size:50" json:"icon"`
	Color string `gorm:"size:7" json:"color"`
	Image string `gorm:"size:255" json:"image"`

	IsBookable           bool `gorm:"not null" json:"is_bookable"`
	RequiresConfirmation bool `gorm:"not null" json:"requires_confirmation"`
	AllowOnlineBooking   bool `gorm:"not null" json:"allow_online_booking"`
	SortOrder            int  `gorm:"not null" json:"sort_order"`
	IsActive             bool `gorm:"not null;index" json:"is_active"`
	IsFeatured           bool `gorm:"not null" json:"is_featured"`

	SKU     *string `gorm:"column:sku;size:50;uniqueIndex:idx_service_tenant_sku" json:"sku"`
	Barcode string  `gorm:"size:50" json:"barcode"`
	Notes   string  `gorm:"type:text" json:"notes"`

	Variants []ServiceVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Addons   []ServiceAddon   `gorm:"many2many:service_addon_services" json:"addons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceVariant is a price/duration delta over its owning service.
type ServiceVariant struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ServiceID uint `gorm:"not null;uniqueIndex:idx_variant_service_name" json:"service_id"`

	Name               string          `gorm:"size:100;not null;uniqueIndex:idx_variant_service_name" json:"name"`
	Description        string          `gorm:"type:text" json:"description"`
	PriceAdjustment    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_adjustment"`
	DurationAdjustment int             `gorm:"not null" json:"duration_adjustment"`
	SortOrder          int             `gorm:"not null" json:"sort_order"`
	IsActive           bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
