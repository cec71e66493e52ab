package catalog

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

type Ordering string

const (
	OrderName         Ordering = "name"
	OrderNameDesc     Ordering = "-name"
	OrderPrice        Ordering = "price"
	OrderPriceDesc    Ordering = "-price"
	OrderDuration     Ordering = "duration_minutes"
	OrderDurationDesc Ordering = "-duration_minutes"
	OrderSortOrder    Ordering = "sort_order"
	OrderCreated      Ordering = "created_at"
	OrderCreatedDesc  Ordering = "-created_at"
)

// ParseOrdering falls back to name for anything it does not know.
func ParseOrdering(s string) Ordering {
	o := Ordering(strings.TrimSpace(s))
	switch o {
	case OrderName, OrderNameDesc, OrderPrice, OrderPriceDesc,
		OrderDuration, OrderDurationDesc, OrderSortOrder,
		OrderCreated, OrderCreatedDesc:
		return o
	case "order":
		return OrderSortOrder
	}
	return OrderName
}

// SQL is the ORDER BY clause. Ties always break on id.
func (o Ordering) SQL() string {
	switch o {
	case OrderNameDesc:
		return "name DESC, id DESC"
	case OrderPrice:
		return "price ASC, name ASC, id ASC"
	case OrderPriceDesc:
		return "price DESC, name ASC, id ASC"
	case OrderDuration:
		return "duration_minutes ASC, name ASC, id ASC"
	case OrderDurationDesc:
		return "duration_minutes DESC, name ASC, id ASC"
	case OrderSortOrder:
		return "sort_order ASC, name ASC, id ASC"
	case OrderCreated:
		return "created_at ASC, id ASC"
	case OrderCreatedDesc:
		return "created_at DESC, id DESC"
	}
	return "name ASC, id ASC"
}

// Sort orders services in memory the same way SQL does.
func (o Ordering) Sort(services []models.Service) {
	byName := func(a, b models.Service) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	}

	var less func(a, b models.Service) bool
	switch o {
	case OrderNameDesc:
		less = func(a, b models.Service) bool { return byName(b, a) }
	case OrderPrice, OrderPriceDesc:
		less = func(a, b models.Service) bool {
			if c := a.Price.Cmp(b.Price); c != 0 {
				return (c < 0) == (o == OrderPrice)
			}
			return byName(a, b)
		}
	case OrderDuration, OrderDurationDesc:
		less = func(a, b models.Service) bool {
			if a.DurationMinutes != b.DurationMinutes {
				return (a.DurationMinutes < b.DurationMinutes) == (o == OrderDuration)
			}
			return byName(a, b)
		}
	case OrderSortOrder:
		less = func(a, b models.Service) bool {
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return byName(a, b)
		}
	case OrderCreated, OrderCreatedDesc:
		less = func(a, b models.Service) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt) == (o == OrderCreated)
			}
			return (a.ID < b.ID) == (o == OrderCreated)
		}
	default:
		less = byName
	}

	sort.SliceStable(services, func(i, j int) bool {
		return less(services[i], services[j])
	})
}
