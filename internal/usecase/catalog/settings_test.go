package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
)

func TestSettingsAreCreatedOnFirstRead(t *testing.T) {
	ctx := context.Background()
	uc := NewSettings(newRepo(), nil)

	first, err := uc.Get(ctx, tenant)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.DefaultDuration != 60 || first.Currency != "EUR" || !first.IncludeTaxInPrice {
		t.Fatalf("unexpected defaults: %+v", first)
	}

	second, _ := uc.Get(ctx, tenant)
	if second.ID != first.ID {
		t.Fatalf("second read created another row: %d != %d", second.ID, first.ID)
	}
}

func TestSettingsConcurrentFirstReadsShareOneRow(t *testing.T) {
	ctx := context.Background()
	uc := NewSettings(newRepo(), nil)

	var wg sync.WaitGroup
	ids := make([]uint, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := uc.Get(ctx, 7)
			errs[i] = err
			if s != nil {
				ids[i] = s.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		if errs[i] != nil {
			t.Fatalf("reader %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("reader %d saw row %d, want %d", i, ids[i], ids[0])
		}
	}
}

func TestSettingsToggleAllowList(t *testing.T) {
	ctx := context.Background()
	uc := NewSettings(newRepo(), nil)

	v, err := uc.Toggle(ctx, tenant, "show_prices")
	if err != nil || v {
		t.Fatalf("toggle show_prices = %v, %v; want false", v, err)
	}

	_, err = uc.Toggle(ctx, tenant, "currency")
	requireKind(t, err, httperr.KindValidation, "invalid_setting")

	s, _ := uc.Get(ctx, tenant)
	if s.ShowPrices {
		t.Fatalf("toggle was not persisted")
	}
}

func TestSettingsSaveInputAndReset(t *testing.T) {
	ctx := context.Background()
	uc := NewSettings(newRepo(), nil)

	s, err := uc.Save(ctx, tenant, SettingsInput{
		DefaultTaxRate: decp("10"),
		Currency:       strp("usd"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Currency != "USD" || !s.DefaultTaxRate.Equal(*decp("10")) || s.DefaultDuration != 60 {
		t.Fatalf("unexpected settings: %+v", s)
	}

	_, err = uc.Save(ctx, tenant, SettingsInput{DefaultTaxRate: decp("150")})
	requireKind(t, err, httperr.KindValidation, "invalid_default_tax_rate")

	_, err = uc.Input(ctx, tenant, "default_duration", "abc")
	requireKind(t, err, httperr.KindValidation, "invalid_setting_value")

	_, err = uc.Input(ctx, tenant, "default_duration", "0")
	requireKind(t, err, httperr.KindValidation, "invalid_default_duration")

	s, err = uc.Input(ctx, tenant, "price_decimal_places", "3")
	if err != nil || s.PriceDecimalPlaces != 3 {
		t.Fatalf("input = %+v, %v", s, err)
	}

	s, err = uc.Reset(ctx, tenant)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.Currency != "EUR" || s.PriceDecimalPlaces != 2 || !s.DefaultTaxRate.Equal(*decp("21")) {
		t.Fatalf("reset left %+v", s)
	}
}
