package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/infra/memory"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

const tenant uint = 1

func newRepo() *memory.Repository {
	return memory.NewRepository(memory.NewStore())
}

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func requireKind(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()

	be, ok := httperr.AsBusiness(err)
	if !ok {
		t.Fatalf("expected business error %s, got %v", code, err)
	}
	if be.Kind != kind || be.Code != code {
		t.Fatalf("got %s/%s, want %s/%s", be.Kind, be.Code, kind, code)
	}
}

func mustService(t *testing.T, uc *Services, in ServiceInput) *models.Service {
	t.Helper()

	s, err := uc.Create(context.Background(), tenant, in)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return s
}

func mustCategory(t *testing.T, uc *Categories, name string, parent *uint) *models.ServiceCategory {
	t.Helper()

	in := CategoryInput{Name: strp(name)}
	if parent != nil {
		in.ParentID.Set = true
		in.ParentID.Value = parent
	}
	c, err := uc.Create(context.Background(), tenant, in)
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

// racyRepo makes the service slug lookup report "free" for a set of slugs,
// as if another request inserted them between lookup and insert.
type racyRepo struct {
	*memory.Repository
	hidden map[string]bool
}

func (r *racyRepo) ServiceSlugExists(ctx context.Context, tenantID uint, slug string, excludeID uint) (bool, error) {
	if r.hidden[slug] {
		return false, nil
	}
	return r.Repository.ServiceSlugExists(ctx, tenantID, slug, excludeID)
}

func (r *racyRepo) WithinTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.WithinTx(ctx, func(tx domain.Repository) error {
		return fn(&racyRepo{Repository: tx.(*memory.Repository), hidden: r.hidden})
	})
}
