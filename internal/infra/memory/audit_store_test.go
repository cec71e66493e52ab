package memory

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
)

func TestAuditStoreListsNewestFirstWithPaging(t *testing.T) {
	ctx := context.Background()
	s := NewAuditStore()

	for _, action := range []string{"create", "update", "delete"} {
		_ = s.Record(ctx, audit.Event{TenantID: 1, Action: action, Entity: "service"})
	}
	_ = s.Record(ctx, audit.Event{TenantID: 2, Action: "create", Entity: "service"})

	rows, total, err := s.List(ctx, 1, audit.Query{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(rows) != 2 || rows[0].Action != "delete" || rows[1].Action != "update" {
		t.Fatalf("unexpected page: %+v", rows)
	}

	rows, _, _ = s.List(ctx, 1, audit.Query{Action: "create", Page: 1, Limit: 10})
	if len(rows) != 1 {
		t.Fatalf("action filter returned %d rows", len(rows))
	}
}
