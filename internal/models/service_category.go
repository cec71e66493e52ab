package models

import "time"

type ServiceCategory struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index;uniqueIndex:idx_category_tenant_slug" json:"tenant_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;not null;uniqueIndex:idx_category_tenant_slug" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// Parent is only declared so the foreign key gets ON DELETE SET NULL.
	// Traversal goes through catalog.Tree, never through this pointer.
	ParentID *uint            `gorm:"index" json:"parent_id"`
	Parent   *ServiceCategory `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`

	Icon      string `gorm:"size:50" json:"icon"`
	Color     string `gorm:"size:7" json:"color"`
	Image     string `gorm:"size:255" json:"image"`
	SortOrder int    `gorm:"not null" json:"sort_order"`
	IsActive  bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
