package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// Package derivations expect Items with their Service loaded.

func PackageOriginalPrice(p *models.ServicePackage) decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Service.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// PackageFinalPrice returns the fixed price when one is set. Otherwise the
// discount is applied to the original price, floored at zero.
func PackageFinalPrice(p *models.ServicePackage) decimal.Decimal {
	if p.FixedPrice != nil {
		return *p.FixedPrice
	}

	original := PackageOriginalPrice(p)

	var final decimal.Decimal
	switch p.DiscountType {
	case models.DiscountFixed:
		final = original.Sub(p.DiscountValue)
	default:
		final = original.Sub(original.Mul(p.DiscountValue).Div(hundred))
	}

	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

func PackageSavings(p *models.ServicePackage) decimal.Decimal {
	return PackageOriginalPrice(p).Sub(PackageFinalPrice(p))
}

func PackageSavingsPercentage(p *models.ServicePackage) decimal.Decimal {
	original := PackageOriginalPrice(p)
	if original.IsZero() {
		return decimal.Zero
	}
	return PackageSavings(p).Div(original).Mul(hundred)
}

func PackageTotalDuration(p *models.ServicePackage) int {
	total := 0
	for _, it := range p.Items {
		total += it.Service.DurationMinutes * it.Quantity
	}
	return total
}
