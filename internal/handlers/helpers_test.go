package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestInputSettingRequestValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"usd"`, "usd"},
		{`45`, "45"},
		{`12.5`, "12.5"},
		{`true`, "true"},
	}

	for _, tc := range cases {
		req := InputSettingRequest{Field: "x", Value: json.RawMessage(tc.raw)}
		if got := req.value(); got != tc.want {
			t.Fatalf("value(%s) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestQueryHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?category=4&bookable=false&min=9.90&limit=&bad=x", nil)

	if id, err := queryUint(c, "category"); err != nil || id == nil || *id != 4 {
		t.Fatalf("category = %v, %v", id, err)
	}
	if b, err := queryBool(c, "bookable"); err != nil || b == nil || *b {
		t.Fatalf("bookable = %v, %v", b, err)
	}
	if d, err := queryDecimal(c, "min"); err != nil || d == nil || d.String() != "9.9" {
		t.Fatalf("min = %v, %v", d, err)
	}
	if n, err := queryInt(c, "limit", 20); err != nil || n != 20 {
		t.Fatalf("limit = %d, %v", n, err)
	}
	if v, err := queryUint(c, "missing"); err != nil || v != nil {
		t.Fatalf("missing = %v, %v", v, err)
	}
	if _, err := queryBool(c, "bad"); err == nil || err.Error() != "invalid bad" {
		t.Fatalf("bad = %v", err)
	}
}

func TestParseIDRejectsZero(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	if _, ok := parseID(c); ok {
		t.Fatalf("id 0 accepted")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
