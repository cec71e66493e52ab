package validators

import "testing"

func TestIsHexColor(t *testing.T) {
	cases := map[string]bool{
		"#fff":      true,
		"#A1B2C3":   true,
		"fff":       false,
		"#12345":    false,
		"#a1b2c3d4": false,
		"":          false,
	}
	for in, want := range cases {
		if got := IsHexColor(in); got != want {
			t.Fatalf("IsHexColor(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsCurrencyCode(t *testing.T) {
	if !IsCurrencyCode("EUR") || !IsCurrencyCode(NormalizeCurrency(" usd ")) {
		t.Fatalf("expected EUR and USD to be valid")
	}
	if IsCurrencyCode("EU") || IsCurrencyCode("XYZW") || IsCurrencyCode("ABC") {
		t.Fatalf("expected malformed codes to be rejected")
	}
}
