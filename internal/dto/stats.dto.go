package dto

type CategoryBreakdownDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ServiceStatsDTO aggregates prices and durations over active services.
type ServiceStatsDTO struct {
	TotalServices    int `json:"total_services"`
	ActiveServices   int `json:"active_services"`
	InactiveServices int `json:"inactive_services"`
	BookableServices int `json:"bookable_services"`
	FeaturedServices int `json:"featured_services"`
	Categories       int `json:"categories"`
	Packages         int `json:"packages"`
	Addons           int `json:"addons"`

	AvgPrice   string `json:"avg_price"`
	MinPrice   string `json:"min_price"`
	MaxPrice   string `json:"max_price"`
	TotalValue string `json:"total_value"`

	AvgDuration float64 `json:"avg_duration"`
	MinDuration int     `json:"min_duration"`
	MaxDuration int     `json:"max_duration"`

	CategoriesBreakdown []CategoryBreakdownDTO `json:"categories_breakdown"`
}

type PriceRangeDTO struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type DashboardDTO struct {
	Stats            ServiceStatsDTO      `json:"stats"`
	RecentServices   []ServiceListItemDTO `json:"recent_services"`
	FeaturedServices []ServiceListItemDTO `json:"featured_services"`
}
