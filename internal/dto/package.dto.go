package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

type PackageItemDTO struct {
	ServiceID       uint   `json:"service_id"`
	ServiceName     string `json:"service_name"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
	Subtotal        string `json:"subtotal"`
	DurationMinutes int    `json:"duration_minutes"`
	SortOrder       int    `json:"sort_order"`
}

type PackageDTO struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description"`
	DiscountType  models.DiscountType `json:"discount_type"`
	DiscountValue string              `json:"discount_value"`
	FixedPrice    *string             `json:"fixed_price"`
	ValidityDays  *int                `json:"validity_days"`
	MaxUses       *int                `json:"max_uses"`
	SortOrder     int                 `json:"sort_order"`
	IsActive      bool                `json:"is_active"`
	IsFeatured    bool                `json:"is_featured"`

	OriginalPrice     string `json:"original_price"`
	FinalPrice        string `json:"final_price"`
	Savings           string `json:"savings"`
	SavingsPercentage string `json:"savings_percentage"`
	TotalDuration     int    `json:"total_duration"`

	Items []PackageItemDTO `json:"items"`
}

// NewPackage expects Items with their Service loaded.
func NewPackage(p *models.ServicePackage, st *models.ServicesSettings) PackageDTO {
	out := PackageDTO{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		DiscountType:  p.DiscountType,
		DiscountValue: money(p.DiscountValue, st),
		FixedPrice:    optionalMoney(p.FixedPrice, st),
		ValidityDays:  p.ValidityDays,
		MaxUses:       p.MaxUses,
		SortOrder:     p.SortOrder,
		IsActive:      p.IsActive,
		IsFeatured:    p.IsFeatured,

		OriginalPrice:     money(catalog.PackageOriginalPrice(p), st),
		FinalPrice:        money(catalog.PackageFinalPrice(p), st),
		Savings:           money(catalog.PackageSavings(p), st),
		SavingsPercentage: catalog.PackageSavingsPercentage(p).StringFixed(2),
		TotalDuration:     catalog.PackageTotalDuration(p),

		Items: make([]PackageItemDTO, 0, len(p.Items)),
	}

	for _, it := range p.Items {
		out.Items = append(out.Items, PackageItemDTO{
			ServiceID:       it.ServiceID,
			ServiceName:     it.Service.Name,
			Quantity:        it.Quantity,
			UnitPrice:       money(it.Service.Price, st),
			Subtotal:        money(it.Service.Price.Mul(decimal.NewFromInt(int64(it.Quantity))), st),
			DurationMinutes: it.Service.DurationMinutes,
			SortOrder:       it.SortOrder,
		})
	}
	return out
}

func NewPackageList(packages []models.ServicePackage, st *models.ServicesSettings) []PackageDTO {
	out := make([]PackageDTO, 0, len(packages))
	for i := range packages {
		out = append(out, NewPackage(&packages[i], st))
	}
	return out
}
