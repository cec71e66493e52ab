package catalog

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/service-catalog/internal/patch"
)

func TestListByPriceRange(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	queries := NewQueries(repo)

	mustService(t, services, ServiceInput{Name: strp("Cheap"), Price: decp("25.00")})
	mustService(t, services, ServiceInput{Name: strp("Middle"), Price: decp("75.00")})
	mustService(t, services, ServiceInput{Name: strp("Premium"), Price: decp("150.00")})

	got, err := queries.List(ctx, tenant, SearchParams{
		MinPrice: decp("50"),
		MaxPrice: decp("100"),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Middle" || got[0].Price != "75.00" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListCategoryFilterIncludesDescendants(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	categories := NewCategories(repo, nil)
	services := NewServices(repo, nil)
	queries := NewQueries(repo)

	hair := mustCategory(t, categories, "Hair", nil)
	cuts := mustCategory(t, categories, "Cuts", &hair.ID)
	beard := mustCategory(t, categories, "Beard", nil)

	mustService(t, services, ServiceInput{Name: strp("Wash"), CategoryID: patch.Of(hair.ID)})
	mustService(t, services, ServiceInput{Name: strp("Fade"), CategoryID: patch.Of(cuts.ID)})
	mustService(t, services, ServiceInput{Name: strp("Trim"), CategoryID: patch.Of(beard.ID)})

	got, err := queries.List(ctx, tenant, SearchParams{CategoryID: &hair.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Fade" || got[1].Name != "Wash" {
		t.Fatalf("unexpected result: %+v", got)
	}

	byCat, err := queries.ByCategory(ctx, tenant, hair.ID, false)
	if err != nil || len(byCat) != 1 || byCat[0].Name != "Wash" {
		t.Fatalf("direct only = %+v, %v", byCat, err)
	}

	missing := uint(999)
	got, err = queries.List(ctx, tenant, SearchParams{CategoryID: &missing})
	if err != nil || len(got) != 0 {
		t.Fatalf("unknown category = %+v, %v", got, err)
	}
}

func TestSearchMatchesTextAndSkipsInactive(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	queries := NewQueries(repo)

	mustService(t, services, ServiceInput{Name: strp("Deep Tissue"), SKU: patch.Of("MAS-01")})
	mustService(t, services, ServiceInput{Name: strp("Hot Stone"), Description: strp("A warm massage")})
	mustService(t, services, ServiceInput{Name: strp("Old massage"), IsActive: boolp(false)})
	mustService(t, services, ServiceInput{Name: strp("Haircut")})

	got, err := queries.Search(ctx, tenant, "mas", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Deep Tissue" || got[1].Name != "Hot Stone" {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, _ = queries.Search(ctx, tenant, "mas", 1)
	if len(got) != 1 {
		t.Fatalf("limit ignored: %d results", len(got))
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	queries := NewQueries(repo)

	mustService(t, services, ServiceInput{Name: strp("Haircut")})
	mustService(t, services, ServiceInput{Name: strp("Color 50% off")})

	for _, q := range []string{"%", "50%", "_"} {
		got, err := queries.Search(ctx, tenant, q, 0)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		want := 1
		if q == "_" {
			want = 0
		}
		if len(got) != want {
			t.Fatalf("search %q = %+v, want %d results", q, got, want)
		}
	}
}

func TestFeaturedAndBookable(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	categories := NewCategories(repo, nil)
	queries := NewQueries(repo)

	second := mustCategory(t, categories, "Second", nil)
	first := mustCategory(t, categories, "First", nil)
	if _, err := categories.Update(ctx, tenant, second.ID, CategoryInput{SortOrder: intp(5)}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	mustService(t, services, ServiceInput{Name: strp("Z"), IsFeatured: boolp(true), SortOrder: intp(2)})
	mustService(t, services, ServiceInput{Name: strp("Y"), IsFeatured: boolp(true), SortOrder: intp(1), CategoryID: patch.Of(second.ID)})
	mustService(t, services, ServiceInput{Name: strp("X"), IsBookable: boolp(false), CategoryID: patch.Of(first.ID)})
	mustService(t, services, ServiceInput{Name: strp("W"), AllowOnlineBooking: boolp(false)})
	mustService(t, services, ServiceInput{Name: strp("V"), CategoryID: patch.Of(first.ID)})

	featured, err := queries.Featured(ctx, tenant, 0)
	if err != nil || len(featured) != 2 || featured[0].Name != "Y" {
		t.Fatalf("featured = %+v, %v", featured, err)
	}

	bookable, err := queries.Bookable(ctx, tenant)
	if err != nil {
		t.Fatalf("bookable: %v", err)
	}
	names := []string{}
	for _, s := range bookable {
		names = append(names, s.Name)
	}
	if len(names) != 3 || names[0] != "V" || names[1] != "Y" || names[2] != "Z" {
		t.Fatalf("bookable order = %v, want [V Y Z]", names)
	}
}

func TestStatsAndPriceRange(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	categories := NewCategories(repo, nil)
	queries := NewQueries(repo)

	empty, err := queries.PriceRange(ctx, tenant)
	if err != nil || empty.Min != "0.00" || empty.Max != "0.00" {
		t.Fatalf("empty range = %+v, %v", empty, err)
	}

	hair := mustCategory(t, categories, "Hair", nil)
	mustService(t, services, ServiceInput{Name: strp("A"), Price: decp("10"), DurationMinutes: intp(30), CategoryID: patch.Of(hair.ID)})
	mustService(t, services, ServiceInput{Name: strp("B"), Price: decp("30"), DurationMinutes: intp(45), IsFeatured: boolp(true)})
	mustService(t, services, ServiceInput{Name: strp("C"), Price: decp("99"), IsActive: boolp(false)})

	stats, err := queries.Stats(ctx, tenant)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalServices != 3 || stats.ActiveServices != 2 || stats.InactiveServices != 1 {
		t.Fatalf("counts = %+v", stats)
	}
	if stats.FeaturedServices != 1 || stats.BookableServices != 2 || stats.Categories != 1 {
		t.Fatalf("flags = %+v", stats)
	}
	if stats.AvgPrice != "20.00" || stats.MinPrice != "10.00" || stats.MaxPrice != "30.00" || stats.TotalValue != "40.00" {
		t.Fatalf("prices = %+v", stats)
	}
	if stats.AvgDuration != 37.5 || stats.MinDuration != 30 || stats.MaxDuration != 45 {
		t.Fatalf("durations = %+v", stats)
	}
	if len(stats.CategoriesBreakdown) != 1 || stats.CategoriesBreakdown[0].Count != 1 {
		t.Fatalf("breakdown = %+v", stats.CategoriesBreakdown)
	}

	rng, err := queries.PriceRange(ctx, tenant)
	if err != nil || rng.Min != "10.00" || rng.Max != "30.00" {
		t.Fatalf("range = %+v, %v", rng, err)
	}

	dash, err := queries.Dashboard(ctx, tenant)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dash.RecentServices) != 2 || dash.RecentServices[0].Name != "B" {
		t.Fatalf("recent = %+v", dash.RecentServices)
	}
	if len(dash.FeaturedServices) != 1 {
		t.Fatalf("featured = %+v", dash.FeaturedServices)
	}
}
