package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type ServicePackage struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index;uniqueIndex:idx_package_tenant_slug" json:"tenant_id"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Slug        string `gorm:"size:220;not null;uniqueIndex:idx_package_tenant_slug" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	Items []ServicePackageItem `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	DiscountType  DiscountType     `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	FixedPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"fixed_price"`

	ValidityDays *int `json:"validity_days"`
	MaxUses      *int `json:"max_uses"`

	SortOrder  int  `gorm:"not null" json:"sort_order"`
	IsActive   bool `gorm:"not null" json:"is_active"`
	IsFeatured bool `gorm:"not null" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServicePackageItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	PackageID uint    `gorm:"not null;uniqueIndex:idx_package_item_pair" json:"package_id"`
	ServiceID uint    `gorm:"not null;uniqueIndex:idx_package_item_pair" json:"service_id"`
	Service   Service `gorm:"constraint:OnDelete:CASCADE" json:"service"`

	Quantity  int `gorm:"not null" json:"quantity"`
	SortOrder int `gorm:"not null" json:"sort_order"`
}
