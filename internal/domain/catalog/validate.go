package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/validators"
)

const (
	MinServiceDuration = 5
	maxNameLen         = 200
	maxCategoryNameLen = 100
	maxVariantNameLen  = 100
)

func requireName(name string, maxLen int, what string) error {
	if strings.TrimSpace(name) == "" {
		return httperr.ErrValidation("name_required", what+" name is required")
	}
	if utf8.RuneCountInString(name) > maxLen {
		return httperr.ErrValidation("name_too_long", what+" name is too long")
	}
	return nil
}

func validColor(color string) error {
	if color != "" && !validators.IsHexColor(color) {
		return httperr.ErrValidation("invalid_color", "Color must be a hex value like #1a2b3c")
	}
	return nil
}

// Money columns are decimal(10,2) and rate columns decimal(5,2).
const (
	amountScale    = 2
	moneyIntDigits = 8
	rateIntDigits  = 3
)

// fitsColumn reports whether d can be stored without rounding or overflow
// in a column with intDigits integer digits and two decimals.
func fitsColumn(d decimal.Decimal, intDigits int) bool {
	if !d.Equal(d.Truncate(amountScale)) {
		return false
	}
	limit := decimal.New(1, int32(intDigits))
	return d.Abs().LessThan(limit)
}

// validAmount accepts signed amounts such as variant adjustments.
func validAmount(d decimal.Decimal, field string) error {
	if !fitsColumn(d, moneyIntDigits) {
		return httperr.ErrValidation("invalid_"+field,
			field+" must have at most 8 integer digits and 2 decimal places")
	}
	return nil
}

func validMoney(d decimal.Decimal, field string) error {
	if d.IsNegative() {
		return httperr.ErrValidation("invalid_"+field, field+" cannot be negative")
	}
	return validAmount(d, field)
}

func validRate(d decimal.Decimal, code, message string) error {
	if d.IsNegative() || d.GreaterThan(hundred) || !fitsColumn(d, rateIntDigits) {
		return httperr.ErrValidation(code, message)
	}
	return nil
}

func validSortOrder(n int) error {
	if n < 0 {
		return httperr.ErrValidation("invalid_sort_order", "sort_order cannot be negative")
	}
	return nil
}

// ValidateService checks field ranges and the variable price range on the
// state that is about to be persisted.
func ValidateService(s *models.Service) error {
	if err := requireName(s.Name, maxNameLen, "Service"); err != nil {
		return err
	}
	if !s.PricingType.Valid() {
		return httperr.ErrValidation("invalid_pricing_type", "Unknown pricing type")
	}
	if err := validMoney(s.Price, "price"); err != nil {
		return err
	}
	if err := validMoney(s.Cost, "cost"); err != nil {
		return err
	}
	if s.MinPrice != nil {
		if err := validMoney(*s.MinPrice, "min_price"); err != nil {
			return err
		}
	}
	if s.MaxPrice != nil {
		if err := validMoney(*s.MaxPrice, "max_price"); err != nil {
			return err
		}
	}
	if s.TaxRate != nil {
		if err := validRate(*s.TaxRate, "invalid_tax_rate", "Tax rate must be between 0 and 100 with at most 2 decimal places"); err != nil {
			return err
		}
	}
	if s.DurationMinutes < MinServiceDuration {
		return httperr.ErrValidation("invalid_duration", "Duration must be at least 5 minutes")
	}
	if s.BufferBefore < 0 || s.BufferAfter < 0 {
		return httperr.ErrValidation("invalid_buffer", "Buffer times cannot be negative")
	}
	if s.MaxCapacity < 1 {
		return httperr.ErrValidation("invalid_capacity", "Maximum capacity must be at least 1")
	}
	if err := validSortOrder(s.SortOrder); err != nil {
		return err
	}
	if err := validColor(s.Color); err != nil {
		return err
	}
	if s.PricingType == models.PricingVariable && s.MinPrice != nil && s.MaxPrice != nil &&
		s.MinPrice.GreaterThan(*s.MaxPrice) {
		return httperr.ErrValidation("invalid_price_range", "Minimum price cannot be greater than maximum price")
	}
	return nil
}

func ValidateCategory(c *models.ServiceCategory) error {
	if err := requireName(c.Name, maxCategoryNameLen, "Category"); err != nil {
		return err
	}
	if err := validSortOrder(c.SortOrder); err != nil {
		return err
	}
	return validColor(c.Color)
}

func ValidateVariant(v *models.ServiceVariant) error {
	if err := requireName(v.Name, maxVariantNameLen, "Variant"); err != nil {
		return err
	}
	if err := validAmount(v.PriceAdjustment, "price_adjustment"); err != nil {
		return err
	}
	return validSortOrder(v.SortOrder)
}

func ValidateAddon(a *models.ServiceAddon) error {
	if err := requireName(a.Name, maxVariantNameLen, "Addon"); err != nil {
		return err
	}
	if err := validMoney(a.Price, "price"); err != nil {
		return err
	}
	if a.DurationMinutes < 0 {
		return httperr.ErrValidation("invalid_duration", "Addon duration cannot be negative")
	}
	return nil
}

func ValidatePackage(p *models.ServicePackage) error {
	if err := requireName(p.Name, maxNameLen, "Package"); err != nil {
		return err
	}

	switch p.DiscountType {
	case models.DiscountPercentage:
		if err := validRate(p.DiscountValue, "invalid_discount", "Percentage discount must be between 0 and 100 with at most 2 decimal places"); err != nil {
			return err
		}
	case models.DiscountFixed:
		if err := validMoney(p.DiscountValue, "discount_value"); err != nil {
			return err
		}
	default:
		return httperr.ErrValidation("invalid_discount_type", "Unknown discount type")
	}

	if p.FixedPrice != nil {
		if err := validMoney(*p.FixedPrice, "fixed_price"); err != nil {
			return err
		}
	}
	if p.ValidityDays != nil && *p.ValidityDays < 1 {
		return httperr.ErrValidation("invalid_validity_days", "Validity must be at least 1 day")
	}
	if p.MaxUses != nil && *p.MaxUses < 1 {
		return httperr.ErrValidation("invalid_max_uses", "Maximum uses must be at least 1")
	}
	return validSortOrder(p.SortOrder)
}

// PackageLine is one requested (service, quantity) pair.
type PackageLine struct {
	ServiceID uint `json:"service_id"`
	Quantity  int  `json:"quantity"`
}

// ValidatePackageLines rejects empty lists, repeated services and
// non-positive quantities. A zero quantity is read as 1.
func ValidatePackageLines(lines []PackageLine) ([]PackageLine, error) {
	if len(lines) == 0 {
		return nil, httperr.ErrValidation("package_items_required", "At least one service is required")
	}

	seen := make(map[uint]bool, len(lines))
	out := make([]PackageLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity == 0 {
			l.Quantity = 1
		}
		if l.Quantity < 1 {
			return nil, httperr.ErrValidation("invalid_quantity", "Quantity must be at least 1")
		}
		if seen[l.ServiceID] {
			return nil, httperr.ErrValidation("duplicate_package_service", "A service can only appear once in a package")
		}
		seen[l.ServiceID] = true
		out = append(out, l)
	}
	return out, nil
}
