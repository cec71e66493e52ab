package catalog

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	"github.com/BruksfildServices01/service-catalog/internal/infra/memory"
)

func TestMutationsAreAudited(t *testing.T) {
	store := memory.NewAuditStore()
	dispatcher := audit.NewDispatcher(store, zap.NewNop(), 10)

	ctx := audit.WithActor(context.Background(), 42)
	uc := NewServices(newRepo(), dispatcher)

	s, err := uc.Create(ctx, tenant, ServiceInput{Name: strp("Cut")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.ToggleActive(ctx, tenant, s.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := uc.Update(ctx, tenant, 999, ServiceInput{}); err == nil {
		t.Fatalf("update of a missing service should fail")
	}
	dispatcher.Close()

	rows, total, err := store.List(context.Background(), tenant, audit.Query{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (failures are not audited)", total)
	}
	if rows[0].Action != "service_toggled" || rows[1].Action != "service_created" {
		t.Fatalf("actions = %s, %s", rows[0].Action, rows[1].Action)
	}
	if rows[1].UserID == nil || *rows[1].UserID != 42 {
		t.Fatalf("actor not recorded: %v", rows[1].UserID)
	}
}
