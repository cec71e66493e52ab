package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsHexColor accepts "#rgb" and "#rrggbb".
func IsHexColor(s string) bool {
	return validate.Var(s, "hexcolor,max=7") == nil
}

func IsCurrencyCode(code string) bool {
	return validate.Var(code, "len=3,iso4217") == nil
}

func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
