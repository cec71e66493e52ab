package patch

import (
	"encoding/json"
	"testing"
)

type payload struct {
	Parent Nullable[uint] `json:"parent_id"`
}

func TestNullableStates(t *testing.T) {
	seven := uint(7)

	cases := []struct {
		name    string
		body    string
		start   *uint
		want    *uint
		wantSet bool
	}{
		{"absent keeps value", `{}`, &seven, &seven, false},
		{"null clears", `{"parent_id":null}`, &seven, nil, true},
		{"value replaces", `{"parent_id":3}`, nil, uintp(3), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tc.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Parent.Set != tc.wantSet {
				t.Fatalf("Set = %v, want %v", p.Parent.Set, tc.wantSet)
			}

			dst := tc.start
			p.Parent.Apply(&dst)
			switch {
			case tc.want == nil && dst != nil:
				t.Fatalf("dst = %d, want nil", *dst)
			case tc.want != nil && (dst == nil || *dst != *tc.want):
				t.Fatalf("dst = %v, want %d", dst, *tc.want)
			}
		})
	}
}

func TestNullableRejectsWrongType(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{"parent_id":"x"}`), &p); err == nil {
		t.Fatalf("expected an error for a string id")
	}
}

func TestAssign(t *testing.T) {
	name := "old"
	Assign(&name, nil)
	if name != "old" {
		t.Fatalf("nil src changed dst to %q", name)
	}

	next := "new"
	Assign(&name, &next)
	if name != "new" {
		t.Fatalf("name = %q", name)
	}
}

func uintp(n uint) *uint { return &n }
