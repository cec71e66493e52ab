package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServicesSettings holds the catalog defaults of one tenant. There is
// exactly one row per tenant, created lazily on first read.
type ServicesSettings struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex;not null" json:"tenant_id"`

	DefaultDuration   int             `gorm:"not null" json:"default_duration"`
	DefaultBufferTime int             `gorm:"not null" json:"default_buffer_time"`
	DefaultTaxRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"default_tax_rate"`

	ShowPrices         bool `gorm:"not null" json:"show_prices"`
	ShowDuration       bool `gorm:"not null" json:"show_duration"`
	AllowOnlineBooking bool `gorm:"not null" json:"allow_online_booking"`
	IncludeTaxInPrice  bool `gorm:"not null" json:"include_tax_in_price"`

	Currency           string `gorm:"size:3;not null" json:"currency"`
	PriceDecimalPlaces int    `gorm:"not null" json:"price_decimal_places"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServicesSettings) TableName() string {
	return "services_settings"
}
