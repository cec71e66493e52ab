package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/validators"
)

const (
	DefaultDuration           = 60
	DefaultBufferTime         = 0
	DefaultCurrency           = "EUR"
	DefaultPriceDecimalPlaces = 2
	MaxPriceDecimalPlaces     = 4
)

var DefaultTaxRate = decimal.RequireFromString("21.00")

func DefaultSettings(tenantID uint) *models.ServicesSettings {
	s := &models.ServicesSettings{TenantID: tenantID}
	ResetSettings(s)
	return s
}

// ResetSettings restores the defaults in place, keeping identity fields.
func ResetSettings(s *models.ServicesSettings) {
	s.DefaultDuration = DefaultDuration
	s.DefaultBufferTime = DefaultBufferTime
	s.DefaultTaxRate = DefaultTaxRate
	s.ShowPrices = true
	s.ShowDuration = true
	s.AllowOnlineBooking = true
	s.IncludeTaxInPrice = true
	s.Currency = DefaultCurrency
	s.PriceDecimalPlaces = DefaultPriceDecimalPlaces
}

func ValidateSettings(s *models.ServicesSettings) error {
	if s.DefaultDuration <= 0 {
		return httperr.ErrValidation("invalid_default_duration", "Default duration must be greater than 0")
	}
	if s.DefaultBufferTime < 0 {
		return httperr.ErrValidation("invalid_default_buffer_time", "Default buffer time cannot be negative")
	}
	if err := validRate(s.DefaultTaxRate, "invalid_default_tax_rate", "Default tax rate must be between 0 and 100 with at most 2 decimal places"); err != nil {
		return err
	}
	if !validators.IsCurrencyCode(s.Currency) {
		return httperr.ErrValidation("invalid_currency", "Currency must be a 3-letter ISO 4217 code")
	}
	if s.PriceDecimalPlaces < 0 || s.PriceDecimalPlaces > MaxPriceDecimalPlaces {
		return httperr.ErrValidation("invalid_price_decimal_places", "Price decimal places must be between 0 and 4")
	}
	return nil
}

// ToggleSetting flips one of the boolean switches and returns its new value.
// Only the switches listed here can be toggled.
func ToggleSetting(s *models.ServicesSettings, field string) (bool, error) {
	var target *bool
	switch field {
	case "show_prices":
		target = &s.ShowPrices
	case "show_duration":
		target = &s.ShowDuration
	case "allow_online_booking":
		target = &s.AllowOnlineBooking
	case "include_tax_in_price":
		target = &s.IncludeTaxInPrice
	default:
		return false, httperr.ErrValidation("invalid_setting", "Invalid setting name")
	}
	*target = !*target
	return *target, nil
}

// SetSetting assigns one scalar setting from its text form. The caller
// validates the whole row afterwards.
func SetSetting(s *models.ServicesSettings, field, value string) error {
	value = strings.TrimSpace(value)
	badValue := httperr.ErrValidation("invalid_setting_value", "Invalid value for "+field)

	switch field {
	case "default_duration", "default_buffer_time", "price_decimal_places":
		n, err := strconv.Atoi(value)
		if err != nil {
			return badValue
		}
		switch field {
		case "default_duration":
			s.DefaultDuration = n
		case "default_buffer_time":
			s.DefaultBufferTime = n
		default:
			s.PriceDecimalPlaces = n
		}
	case "default_tax_rate":
		d, err := decimal.NewFromString(value)
		if err != nil {
			return badValue
		}
		s.DefaultTaxRate = d
	case "currency":
		s.Currency = validators.NormalizeCurrency(value)
	default:
		return httperr.ErrValidation("invalid_setting", "Invalid setting name")
	}
	return nil
}
