package catalog

import (
	"testing"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

func validService() models.Service {
	return models.Service{
		Name:            "Haircut",
		PricingType:     models.PricingFixed,
		Price:           dec("25"),
		DurationMinutes: 30,
		MaxCapacity:     1,
	}
}

func TestValidateService(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Service)
		code   string
	}{
		{"ok", func(*models.Service) {}, ""},
		{"blank name", func(s *models.Service) { s.Name = "   " }, "name_required"},
		{"unknown pricing", func(s *models.Service) { s.PricingType = "barter" }, "invalid_pricing_type"},
		{"negative price", func(s *models.Service) { s.Price = dec("-1") }, "invalid_price"},
		{"price with three decimals", func(s *models.Service) { s.Price = dec("10.555") }, "invalid_price"},
		{"price over eight digits", func(s *models.Service) { s.Price = dec("123456789.99") }, "invalid_price"},
		{"price at column limit", func(s *models.Service) { s.Price = dec("99999999.99") }, ""},
		{"trailing zero decimals", func(s *models.Service) { s.Price = dec("10.5000") }, ""},
		{"cost with three decimals", func(s *models.Service) { s.Cost = dec("1.001") }, "invalid_cost"},
		{"min price over eight digits", func(s *models.Service) { s.MinPrice = decp("100000000") }, "invalid_min_price"},
		{"max price with three decimals", func(s *models.Service) { s.MaxPrice = decp("20.125") }, "invalid_max_price"},
		{"tax with three decimals", func(s *models.Service) { s.TaxRate = decp("21.005") }, "invalid_tax_rate"},
		{"short duration", func(s *models.Service) { s.DurationMinutes = 4 }, "invalid_duration"},
		{"negative buffer", func(s *models.Service) { s.BufferAfter = -5 }, "invalid_buffer"},
		{"no capacity", func(s *models.Service) { s.MaxCapacity = 0 }, "invalid_capacity"},
		{"tax above 100", func(s *models.Service) { s.TaxRate = decp("100.01") }, "invalid_tax_rate"},
		{"bad color", func(s *models.Service) { s.Color = "red" }, "invalid_color"},
		{"inverted range", func(s *models.Service) {
			s.PricingType = models.PricingVariable
			s.MinPrice = decp("50")
			s.MaxPrice = decp("20")
		}, "invalid_price_range"},
		{"inverted range ignored when fixed", func(s *models.Service) {
			s.MinPrice = decp("50")
			s.MaxPrice = decp("20")
		}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validService()
			tc.mutate(&s)
			err := ValidateService(&s)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("got %v, want %s", err, tc.code)
			}
			if httperr.KindOf(err) != httperr.KindValidation {
				t.Fatalf("kind = %s, want validation", httperr.KindOf(err))
			}
		})
	}
}

func TestValidatePackage(t *testing.T) {
	p := models.ServicePackage{Name: "Combo", DiscountType: models.DiscountPercentage, DiscountValue: dec("120")}
	if err := ValidatePackage(&p); !httperr.IsBusiness(err, "invalid_discount") {
		t.Fatalf("got %v, want invalid_discount", err)
	}

	p.DiscountType = models.DiscountFixed
	if err := ValidatePackage(&p); err != nil {
		t.Fatalf("fixed discount above 100 is fine: %v", err)
	}

	zero := 0
	p.MaxUses = &zero
	if err := ValidatePackage(&p); !httperr.IsBusiness(err, "invalid_max_uses") {
		t.Fatalf("got %v, want invalid_max_uses", err)
	}
}

func TestValidatePackageLines(t *testing.T) {
	if _, err := ValidatePackageLines(nil); !httperr.IsBusiness(err, "package_items_required") {
		t.Fatalf("got %v, want package_items_required", err)
	}

	lines, err := ValidatePackageLines([]PackageLine{{ServiceID: 1}, {ServiceID: 2, Quantity: 3}})
	if err != nil || lines[0].Quantity != 1 || lines[1].Quantity != 3 {
		t.Fatalf("lines = %+v, %v", lines, err)
	}

	if _, err := ValidatePackageLines([]PackageLine{{ServiceID: 1}, {ServiceID: 1}}); !httperr.IsBusiness(err, "duplicate_package_service") {
		t.Fatalf("got %v, want duplicate_package_service", err)
	}
	if _, err := ValidatePackageLines([]PackageLine{{ServiceID: 1, Quantity: -2}}); !httperr.IsBusiness(err, "invalid_quantity") {
		t.Fatalf("got %v, want invalid_quantity", err)
	}
}

func TestValidateAmountsFitColumns(t *testing.T) {
	cases := []struct {
		name  string
		check func() error
		code  string
	}{
		{"variant negative adjustment", func() error {
			return ValidateVariant(&models.ServiceVariant{Name: "Short", PriceAdjustment: dec("-5.50")})
		}, ""},
		{"variant adjustment three decimals", func() error {
			return ValidateVariant(&models.ServiceVariant{Name: "Short", PriceAdjustment: dec("-5.505")})
		}, "invalid_price_adjustment"},
		{"variant adjustment over eight digits", func() error {
			return ValidateVariant(&models.ServiceVariant{Name: "Long", PriceAdjustment: dec("123456789")})
		}, "invalid_price_adjustment"},
		{"addon price three decimals", func() error {
			return ValidateAddon(&models.ServiceAddon{Name: "Wash", Price: dec("3.333")})
		}, "invalid_price"},
		{"addon price over eight digits", func() error {
			return ValidateAddon(&models.ServiceAddon{Name: "Wash", Price: dec("100000000")})
		}, "invalid_price"},
		{"percentage discount three decimals", func() error {
			return ValidatePackage(&models.ServicePackage{Name: "Combo", DiscountType: models.DiscountPercentage, DiscountValue: dec("12.345")})
		}, "invalid_discount"},
		{"fixed discount over eight digits", func() error {
			return ValidatePackage(&models.ServicePackage{Name: "Combo", DiscountType: models.DiscountFixed, DiscountValue: dec("123456789")})
		}, "invalid_discount_value"},
		{"fixed price three decimals", func() error {
			return ValidatePackage(&models.ServicePackage{Name: "Combo", DiscountType: models.DiscountFixed, FixedPrice: decp("49.999")})
		}, "invalid_fixed_price"},
		{"fixed price at limit", func() error {
			return ValidatePackage(&models.ServicePackage{Name: "Combo", DiscountType: models.DiscountFixed, FixedPrice: decp("99999999.99")})
		}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check()
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("got %v, want %s", err, tc.code)
			}
		})
	}
}
