package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/patch"
	"github.com/BruksfildServices01/service-catalog/internal/validators"
)

type SettingsInput struct {
	DefaultDuration    *int             `json:"default_duration"`
	DefaultBufferTime  *int             `json:"default_buffer_time"`
	DefaultTaxRate     *decimal.Decimal `json:"default_tax_rate"`
	ShowPrices         *bool            `json:"show_prices"`
	ShowDuration       *bool            `json:"show_duration"`
	AllowOnlineBooking *bool            `json:"allow_online_booking"`
	IncludeTaxInPrice  *bool            `json:"include_tax_in_price"`
	Currency           *string          `json:"currency"`
	PriceDecimalPlaces *int             `json:"price_decimal_places"`
}

type Settings struct {
	base
}

func NewSettings(repo domain.Repository, audit *audit.Dispatcher) *Settings {
	return &Settings{base{repo: repo, audit: audit}}
}

func (uc *Settings) Get(ctx context.Context, tenantID uint) (*models.ServicesSettings, error) {
	s, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "settings_get", err)
	}
	return s, nil
}

// mutate loads the row, applies fn, validates and saves.
func (uc *Settings) mutate(
	ctx context.Context,
	tenantID uint,
	op string,
	fn func(s *models.ServicesSettings) error,
) (*models.ServicesSettings, error) {

	s, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, op, err)
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := domain.ValidateSettings(s); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveSettings(ctx, s); err != nil {
		return nil, uc.fail(ctx, op, err)
	}

	uc.record(ctx, tenantID, op, "services_settings", s.ID, nil)
	return s, nil
}

func (uc *Settings) Save(ctx context.Context, tenantID uint, in SettingsInput) (*models.ServicesSettings, error) {
	return uc.mutate(ctx, tenantID, "settings_saved", func(s *models.ServicesSettings) error {
		patch.Assign(&s.DefaultDuration, in.DefaultDuration)
		patch.Assign(&s.DefaultBufferTime, in.DefaultBufferTime)
		patch.Assign(&s.DefaultTaxRate, in.DefaultTaxRate)
		patch.Assign(&s.ShowPrices, in.ShowPrices)
		patch.Assign(&s.ShowDuration, in.ShowDuration)
		patch.Assign(&s.AllowOnlineBooking, in.AllowOnlineBooking)
		patch.Assign(&s.IncludeTaxInPrice, in.IncludeTaxInPrice)
		patch.Assign(&s.PriceDecimalPlaces, in.PriceDecimalPlaces)
		if in.Currency != nil {
			s.Currency = validators.NormalizeCurrency(*in.Currency)
		}
		return nil
	})
}

// Toggle flips an allow-listed boolean and returns its new value.
func (uc *Settings) Toggle(ctx context.Context, tenantID uint, field string) (bool, error) {
	var value bool
	_, err := uc.mutate(ctx, tenantID, "settings_toggled", func(s *models.ServicesSettings) error {
		v, err := domain.ToggleSetting(s, field)
		value = v
		return err
	})
	return value, err
}

func (uc *Settings) Input(ctx context.Context, tenantID uint, field, value string) (*models.ServicesSettings, error) {
	return uc.mutate(ctx, tenantID, "settings_updated", func(s *models.ServicesSettings) error {
		return domain.SetSetting(s, field, value)
	})
}

func (uc *Settings) Reset(ctx context.Context, tenantID uint) (*models.ServicesSettings, error) {
	return uc.mutate(ctx, tenantID, "settings_reset", func(s *models.ServicesSettings) error {
		domain.ResetSettings(s)
		return nil
	})
}
