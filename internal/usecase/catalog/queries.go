package catalog

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/dto"
	"github.com/BruksfildServices01/service-catalog/internal/models"
)

const (
	DefaultFeaturedLimit = 10
	DefaultSearchLimit   = 20
	dashboardListSize    = 5
)

// SearchParams are combined with AND. A nil pointer does not filter.
type SearchParams struct {
	Query       string
	CategoryID  *uint
	PricingType models.PricingType
	IsActive    *bool
	IsBookable  *bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Ordering    string
	Limit       int
}

type Queries struct {
	base
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{base{repo: repo}}
}

func boolPtr(b bool) *bool { return &b }

// categoryScope returns the category and its active descendants. An
// unknown category yields an empty, non-nil scope so nothing matches.
func (uc *Queries) categoryScope(
	ctx context.Context,
	tenantID uint,
	categoryID uint,
	includeChildren bool,
) ([]uint, error) {

	all, err := uc.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tree := domain.NewTree(all)
	if _, ok := tree.Get(categoryID); !ok {
		return []uint{}, nil
	}

	ids := []uint{categoryID}
	if includeChildren {
		ids = append(ids, tree.DescendantIDs(categoryID, true)...)
	}
	return ids, nil
}

func (uc *Queries) search(
	ctx context.Context,
	tenantID uint,
	p SearchParams,
) ([]models.Service, error) {

	f := domain.ServiceFilter{
		Query:       p.Query,
		PricingType: p.PricingType,
		IsActive:    p.IsActive,
		IsBookable:  p.IsBookable,
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		OrderBy:     domain.ParseOrdering(p.Ordering),
		Limit:       p.Limit,
	}

	if p.CategoryID != nil {
		ids, err := uc.categoryScope(ctx, tenantID, *p.CategoryID, true)
		if err != nil {
			return nil, err
		}
		f.CategoryIDs = ids
	}

	return uc.repo.ListServices(ctx, tenantID, f)
}

// List is the filtered service listing with display fields.
func (uc *Queries) List(ctx context.Context, tenantID uint, p SearchParams) ([]dto.ServiceListItemDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_list", err)
	}

	services, err := uc.search(ctx, tenantID, p)
	if err != nil {
		return nil, uc.fail(ctx, "service_list", err)
	}
	return dto.NewServiceList(services, st), nil
}

// Search is the quick lookup over active services.
func (uc *Queries) Search(ctx context.Context, tenantID uint, query string, limit int) ([]dto.SearchResultDTO, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_search", err)
	}

	services, err := uc.search(ctx, tenantID, SearchParams{
		Query:    query,
		IsActive: boolPtr(true),
		Limit:    limit,
	})
	if err != nil {
		return nil, uc.fail(ctx, "service_search", err)
	}
	return dto.NewSearchResults(services, st), nil
}

func (uc *Queries) featured(ctx context.Context, tenantID uint, limit int) ([]models.Service, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return uc.repo.ListServices(ctx, tenantID, domain.ServiceFilter{
		IsActive:   boolPtr(true),
		IsFeatured: boolPtr(true),
		OrderBy:    domain.OrderSortOrder,
		Limit:      limit,
	})
}

func (uc *Queries) Featured(ctx context.Context, tenantID uint, limit int) ([]dto.ServiceListItemDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_featured", err)
	}

	services, err := uc.featured(ctx, tenantID, limit)
	if err != nil {
		return nil, uc.fail(ctx, "service_featured", err)
	}
	return dto.NewServiceList(services, st), nil
}

// Bookable lists active services that can be booked online, grouped by
// category order. Uncategorized services come last.
func (uc *Queries) Bookable(ctx context.Context, tenantID uint) ([]dto.ServiceListItemDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_bookable", err)
	}

	services, err := uc.repo.ListServices(ctx, tenantID, domain.ServiceFilter{
		IsActive:           boolPtr(true),
		IsBookable:         boolPtr(true),
		AllowOnlineBooking: boolPtr(true),
		OrderBy:            domain.OrderSortOrder,
	})
	if err != nil {
		return nil, uc.fail(ctx, "service_bookable", err)
	}

	sort.SliceStable(services, func(i, j int) bool {
		a, b := services[i].Category, services[j].Category
		switch {
		case a == nil || b == nil:
			return a != nil && b == nil
		case a.SortOrder != b.SortOrder:
			return a.SortOrder < b.SortOrder
		default:
			return a.Name < b.Name
		}
	})
	return dto.NewServiceList(services, st), nil
}

// ByCategory lists active services of a category, optionally including
// its active descendants. An unknown category gives an empty list.
func (uc *Queries) ByCategory(
	ctx context.Context,
	tenantID uint,
	categoryID uint,
	includeChildren bool,
) ([]dto.ServiceListItemDTO, error) {

	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_by_category", err)
	}

	ids, err := uc.categoryScope(ctx, tenantID, categoryID, includeChildren)
	if err != nil {
		return nil, uc.fail(ctx, "service_by_category", err)
	}

	services, err := uc.repo.ListServices(ctx, tenantID, domain.ServiceFilter{
		CategoryIDs: ids,
		IsActive:    boolPtr(true),
		OrderBy:     domain.OrderSortOrder,
	})
	if err != nil {
		return nil, uc.fail(ctx, "service_by_category", err)
	}
	return dto.NewServiceList(services, st), nil
}

func (uc *Queries) stats(ctx context.Context, tenantID uint, st *models.ServicesSettings) (*dto.ServiceStatsDTO, error) {
	services, err := uc.repo.ListServices(ctx, tenantID, domain.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	packages, err := uc.repo.ListPackages(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}
	addons, err := uc.repo.ListAddons(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}

	out := &dto.ServiceStatsDTO{
		TotalServices:       len(services),
		Packages:            len(packages),
		Addons:              len(addons),
		CategoriesBreakdown: []dto.CategoryBreakdownDTO{},
	}

	var (
		total         = decimal.Zero
		minP, maxP    decimal.Decimal
		durationTotal int
		perCategory   = map[uint]int{}
	)

	for _, s := range services {
		if !s.IsActive {
			out.InactiveServices++
			continue
		}

		out.ActiveServices++
		if s.IsBookable {
			out.BookableServices++
		}
		if s.IsFeatured {
			out.FeaturedServices++
		}
		if s.CategoryID != nil {
			perCategory[*s.CategoryID]++
		}

		if out.ActiveServices == 1 {
			minP, maxP = s.Price, s.Price
			out.MinDuration, out.MaxDuration = s.DurationMinutes, s.DurationMinutes
		}
		minP = decimal.Min(minP, s.Price)
		maxP = decimal.Max(maxP, s.Price)
		out.MinDuration = min(out.MinDuration, s.DurationMinutes)
		out.MaxDuration = max(out.MaxDuration, s.DurationMinutes)

		total = total.Add(s.Price)
		durationTotal += s.DurationMinutes
	}

	avg := decimal.Zero
	if out.ActiveServices > 0 {
		n := decimal.NewFromInt(int64(out.ActiveServices))
		avg = total.Div(n)
		out.AvgDuration = decimal.NewFromInt(int64(durationTotal)).Div(n).Round(2).InexactFloat64()
	}

	out.AvgPrice = money(avg, st)
	out.MinPrice = money(minP, st)
	out.MaxPrice = money(maxP, st)
	out.TotalValue = money(total, st)

	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		out.Categories++
		out.CategoriesBreakdown = append(out.CategoriesBreakdown, dto.CategoryBreakdownDTO{
			ID:    c.ID,
			Name:  c.Name,
			Count: perCategory[c.ID],
		})
	}
	return out, nil
}

func money(d decimal.Decimal, st *models.ServicesSettings) string {
	return domain.FormatMoney(d, st)
}

func (uc *Queries) Stats(ctx context.Context, tenantID uint) (*dto.ServiceStatsDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "service_stats", err)
	}

	out, err := uc.stats(ctx, tenantID, st)
	if err != nil {
		return nil, uc.fail(ctx, "service_stats", err)
	}
	return out, nil
}

// PriceRange spans the prices of active services, zero when there are none.
func (uc *Queries) PriceRange(ctx context.Context, tenantID uint) (*dto.PriceRangeDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "price_range", err)
	}

	services, err := uc.repo.ListServices(ctx, tenantID, domain.ServiceFilter{
		IsActive: boolPtr(true),
		OrderBy:  domain.OrderPrice,
	})
	if err != nil {
		return nil, uc.fail(ctx, "price_range", err)
	}

	lo, hi := decimal.Zero, decimal.Zero
	if n := len(services); n > 0 {
		lo, hi = services[0].Price, services[n-1].Price
	}
	return &dto.PriceRangeDTO{Min: money(lo, st), Max: money(hi, st)}, nil
}

func (uc *Queries) Dashboard(ctx context.Context, tenantID uint) (*dto.DashboardDTO, error) {
	st, err := loadSettings(ctx, uc.repo, tenantID)
	if err != nil {
		return nil, uc.fail(ctx, "dashboard", err)
	}

	stats, err := uc.stats(ctx, tenantID, st)
	if err != nil {
		return nil, uc.fail(ctx, "dashboard", err)
	}

	recent, err := uc.repo.ListServices(ctx, tenantID, domain.ServiceFilter{
		IsActive: boolPtr(true),
		OrderBy:  domain.OrderCreatedDesc,
		Limit:    dashboardListSize,
	})
	if err != nil {
		return nil, uc.fail(ctx, "dashboard", err)
	}

	featured, err := uc.featured(ctx, tenantID, dashboardListSize)
	if err != nil {
		return nil, uc.fail(ctx, "dashboard", err)
	}

	return &dto.DashboardDTO{
		Stats:            *stats,
		RecentServices:   dto.NewServiceList(recent, st),
		FeaturedServices: dto.NewServiceList(featured, st),
	}, nil
}
