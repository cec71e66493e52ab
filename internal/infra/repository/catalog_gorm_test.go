package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/db"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

const tenant uint = 1

func newTestRepo(t *testing.T) *CatalogGormRepository {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Every connection to ":memory:" is a separate database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewCatalogGormRepository(gdb)
}

func newService(tenantID uint, name, slug string) *models.Service {
	return &models.Service{
		TenantID:        tenantID,
		Name:            name,
		Slug:            slug,
		PricingType:     models.PricingFixed,
		Price:           decimal.RequireFromString("25.50"),
		DurationMinutes: 30,
		MaxCapacity:     1,
		IsActive:        true,
	}
}

func mustCreateService(t *testing.T, repo *CatalogGormRepository, s *models.Service) *models.Service {
	t.Helper()
	if err := repo.CreateService(context.Background(), s); err != nil {
		t.Fatalf("create service %q: %v", s.Name, err)
	}
	return s
}

func TestServiceRoundTripIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cat := &models.ServiceCategory{TenantID: tenant, Name: "Hair", Slug: "hair", IsActive: true}
	if err := repo.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	s := newService(tenant, "Haircut", "haircut")
	s.CategoryID = &cat.ID
	mustCreateService(t, repo, s)

	got, err := repo.GetService(ctx, tenant, s.ID)
	if err != nil {
		t.Fatalf("get service: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("25.5")) {
		t.Fatalf("price = %s", got.Price)
	}
	if got.Category == nil || got.Category.Name != "Hair" {
		t.Fatalf("category not preloaded: %+v", got.Category)
	}

	if _, err := repo.GetService(ctx, tenant+1, s.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("other tenant lookup = %v, want ErrRecordNotFound", err)
	}
}

func TestCreateServiceDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	mustCreateService(t, repo, newService(tenant, "Haircut", "haircut"))

	err := repo.CreateService(ctx, newService(tenant, "Haircut", "haircut"))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate slug = %v, want ErrDuplicatedKey", err)
	}

	mustCreateService(t, repo, newService(tenant+1, "Haircut", "haircut"))

	taken, err := repo.ServiceSlugExists(ctx, tenant, "haircut", 0)
	if err != nil || !taken {
		t.Fatalf("slug exists = %v, %v", taken, err)
	}
}

func TestDuplicateInsertLeavesTransactionUsable(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	err := repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.CreateService(ctx, newService(tenant, "Cut", "cut")); err != nil {
			return err
		}
		if err := tx.CreateService(ctx, newService(tenant, "Cut", "cut")); !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Fatalf("second insert = %v, want ErrDuplicatedKey", err)
		}
		return tx.CreateService(ctx, newService(tenant, "Cut", "cut-1"))
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	got, err := repo.ListServices(ctx, tenant, domain.ServiceFilter{})
	if err != nil || len(got) != 2 {
		t.Fatalf("services = %d, %v", len(got), err)
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	boom := errors.New("boom")
	err := repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.CreateCategory(ctx, &models.ServiceCategory{TenantID: tenant, Name: "Hair", Slug: "hair"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("tx error = %v", err)
	}

	cats, err := repo.ListCategories(ctx, tenant)
	if err != nil || len(cats) != 0 {
		t.Fatalf("categories after rollback = %+v, %v", cats, err)
	}
}

func TestListServicesMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	mustCreateService(t, repo, newService(tenant, "Haircut", "haircut"))
	mustCreateService(t, repo, newService(tenant, "Color 50% off", "color-50-off"))
	mustCreateService(t, repo, newService(tenant, "Nail_art", "nail-art"))

	cases := []struct {
		query string
		want  string
	}{
		{"%", "Color 50% off"},
		{"50%", "Color 50% off"},
		{"_", "Nail_art"},
		{"CUT", "Haircut"},
	}

	for _, tc := range cases {
		got, err := repo.ListServices(ctx, tenant, domain.ServiceFilter{Query: tc.query})
		if err != nil {
			t.Fatalf("query %q: %v", tc.query, err)
		}
		if len(got) != 1 || got[0].Name != tc.want {
			t.Fatalf("query %q = %d results, want only %q", tc.query, len(got), tc.want)
		}
	}
}

func TestDeleteServiceRemovesDependents(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cut := mustCreateService(t, repo, newService(tenant, "Cut", "cut"))
	wash := mustCreateService(t, repo, newService(tenant, "Wash", "wash"))

	v := &models.ServiceVariant{ServiceID: cut.ID, Name: "Long hair", PriceAdjustment: decimal.NewFromInt(5)}
	if err := repo.CreateVariant(ctx, v); err != nil {
		t.Fatalf("create variant: %v", err)
	}

	addon := &models.ServiceAddon{TenantID: tenant, Name: "Mask", Price: decimal.NewFromInt(3), IsActive: true}
	if err := repo.CreateAddon(ctx, addon); err != nil {
		t.Fatalf("create addon: %v", err)
	}
	if err := repo.SetAddonServices(ctx, addon.ID, []uint{cut.ID, wash.ID}); err != nil {
		t.Fatalf("link addon: %v", err)
	}

	pkg := &models.ServicePackage{TenantID: tenant, Name: "Combo", Slug: "combo", DiscountType: models.DiscountPercentage, IsActive: true}
	if err := repo.CreatePackage(ctx, pkg); err != nil {
		t.Fatalf("create package: %v", err)
	}
	items := []models.ServicePackageItem{{ServiceID: cut.ID, Quantity: 1}, {ServiceID: wash.ID, Quantity: 2, SortOrder: 1}}
	if err := repo.ReplacePackageItems(ctx, pkg.ID, items); err != nil {
		t.Fatalf("package items: %v", err)
	}

	if err := repo.DeleteService(ctx, tenant, cut.ID); err != nil {
		t.Fatalf("delete service: %v", err)
	}

	if _, err := repo.GetVariant(ctx, tenant, v.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("variant lookup = %v, want ErrRecordNotFound", err)
	}

	a, err := repo.GetAddon(ctx, tenant, addon.ID)
	if err != nil {
		t.Fatalf("get addon: %v", err)
	}
	if len(a.Services) != 1 || a.Services[0].ID != wash.ID {
		t.Fatalf("addon services = %+v", a.Services)
	}

	p, err := repo.GetPackage(ctx, tenant, pkg.ID)
	if err != nil {
		t.Fatalf("get package: %v", err)
	}
	if len(p.Items) != 1 || p.Items[0].ServiceID != wash.ID || p.Items[0].Service.Name != "Wash" {
		t.Fatalf("package items = %+v", p.Items)
	}

	if err := repo.DeleteService(ctx, tenant, cut.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete = %v, want ErrRecordNotFound", err)
	}
}

func TestReplacePackageItemsKeepsSubmittedOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cut := mustCreateService(t, repo, newService(tenant, "Cut", "cut"))
	wash := mustCreateService(t, repo, newService(tenant, "Wash", "wash"))

	pkg := &models.ServicePackage{TenantID: tenant, Name: "Combo", Slug: "combo", DiscountType: models.DiscountFixed}
	if err := repo.CreatePackage(ctx, pkg); err != nil {
		t.Fatalf("create package: %v", err)
	}

	first := []models.ServicePackageItem{{ServiceID: cut.ID, Quantity: 1}, {ServiceID: wash.ID, Quantity: 1, SortOrder: 1}}
	if err := repo.ReplacePackageItems(ctx, pkg.ID, first); err != nil {
		t.Fatalf("replace: %v", err)
	}
	second := []models.ServicePackageItem{{ServiceID: wash.ID, Quantity: 3}, {ServiceID: cut.ID, Quantity: 1, SortOrder: 1}}
	if err := repo.ReplacePackageItems(ctx, pkg.ID, second); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	p, err := repo.GetPackage(ctx, tenant, pkg.ID)
	if err != nil {
		t.Fatalf("get package: %v", err)
	}
	if len(p.Items) != 2 || p.Items[0].ServiceID != wash.ID || p.Items[0].Quantity != 3 || p.Items[1].ServiceID != cut.ID {
		t.Fatalf("items = %+v", p.Items)
	}
}

func TestDeleteCategoryMissing(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.DeleteCategory(context.Background(), tenant, 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("delete = %v, want ErrRecordNotFound", err)
	}
}
