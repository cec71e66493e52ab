package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// The derivations below take the settings as an argument on every call;
// callers load them per request and nothing here remembers them.

func EffectiveTaxRate(s *models.Service, st *models.ServicesSettings) decimal.Decimal {
	if s.TaxRate != nil {
		return *s.TaxRate
	}
	return st.DefaultTaxRate
}

func taxFactor(rate decimal.Decimal) decimal.Decimal {
	return one.Add(rate.Div(hundred))
}

func PriceWithTax(s *models.Service, st *models.ServicesSettings) decimal.Decimal {
	if st.IncludeTaxInPrice {
		return s.Price
	}
	return s.Price.Mul(taxFactor(EffectiveTaxRate(s, st)))
}

func PriceWithoutTax(s *models.Service, st *models.ServicesSettings) decimal.Decimal {
	if !st.IncludeTaxInPrice {
		return s.Price
	}
	factor := taxFactor(EffectiveTaxRate(s, st))
	if factor.IsZero() {
		return s.Price
	}
	return s.Price.Div(factor)
}

func TaxAmount(s *models.Service, st *models.ServicesSettings) decimal.Decimal {
	return PriceWithTax(s, st).Sub(PriceWithoutTax(s, st))
}

func Profit(s *models.Service, st *models.ServicesSettings) decimal.Decimal {
	return PriceWithoutTax(s, st).Sub(s.Cost)
}

// ProfitMargin is a percentage of the net price, 0 when that price is 0.
func ProfitMargin(s *models.Service, st *models.ServicesSettings) decimal.Decimal {
	net := PriceWithoutTax(s, st)
	if net.IsZero() {
		return decimal.Zero
	}
	return Profit(s, st).Div(net).Mul(hundred)
}

func TotalDuration(s *models.Service) int {
	return s.BufferBefore + s.DurationMinutes + s.BufferAfter
}

func FormatMoney(d decimal.Decimal, st *models.ServicesSettings) string {
	return d.StringFixed(int32(st.PriceDecimalPlaces))
}

func PriceDisplay(s *models.Service, st *models.ServicesSettings) string {
	switch s.PricingType {
	case models.PricingFree:
		return "Free"
	case models.PricingFrom:
		return "From " + FormatMoney(s.Price, st)
	case models.PricingVariable:
		if s.MinPrice != nil && s.MaxPrice != nil {
			return fmt.Sprintf("%s - %s", FormatMoney(*s.MinPrice, st), FormatMoney(*s.MaxPrice, st))
		}
		return "Variable"
	case models.PricingHourly:
		return FormatMoney(s.Price, st) + "/hour"
	}
	return FormatMoney(s.Price, st)
}

// -------- Variant --------

func VariantFinalPrice(v *models.ServiceVariant, s *models.Service) decimal.Decimal {
	return s.Price.Add(v.PriceAdjustment)
}

func VariantFinalDuration(v *models.ServiceVariant, s *models.Service) int {
	return s.DurationMinutes + v.DurationAdjustment
}
