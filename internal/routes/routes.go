package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	"github.com/BruksfildServices01/service-catalog/internal/config"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/handlers"
	"github.com/BruksfildServices01/service-catalog/internal/metrics"
	"github.com/BruksfildServices01/service-catalog/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/service-catalog/internal/usecase/catalog"
)

// Deps are the singletons built by main. Metrics may be nil.
type Deps struct {
	Config     *config.Config
	Repo       domain.Repository
	AuditStore audit.Store
	Dispatcher *audit.Dispatcher
	Metrics    *metrics.Metrics
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	servicesUC := ucCatalog.NewServices(d.Repo, d.Dispatcher)
	variantsUC := ucCatalog.NewVariants(d.Repo, d.Dispatcher)
	categoriesUC := ucCatalog.NewCategories(d.Repo, d.Dispatcher)
	addonsUC := ucCatalog.NewAddons(d.Repo, d.Dispatcher)
	packagesUC := ucCatalog.NewPackages(d.Repo, d.Dispatcher)
	settingsUC := ucCatalog.NewSettings(d.Repo, d.Dispatcher)
	queriesUC := ucCatalog.NewQueries(d.Repo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	var obs handlers.Observer
	if d.Metrics != nil {
		obs = d.Metrics
	}

	serviceHandler := handlers.NewServiceHandler(servicesUC, queriesUC, obs)
	variantHandler := handlers.NewVariantHandler(variantsUC, obs)
	categoryHandler := handlers.NewCategoryHandler(categoriesUC, obs)
	addonHandler := handlers.NewAddonHandler(addonsUC, obs)
	packageHandler := handlers.NewPackageHandler(packagesUC, obs)
	settingsHandler := handlers.NewSettingsHandler(settingsUC, obs)
	apiHandler := handlers.NewCatalogAPIHandler(servicesUC, queriesUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore)

	// ======================================================
	// 🌍 PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// 🔐 SECURED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Config))
	{
		// ------------------------------
		// SERVICES
		// ------------------------------
		secured.GET("/services", serviceHandler.List)
		secured.POST("/services/create", serviceHandler.Create)
		secured.GET("/services/:id", serviceHandler.Get)
		secured.POST("/services/:id/edit", serviceHandler.Update)
		secured.POST("/services/:id/delete", serviceHandler.Delete)
		secured.POST("/services/:id/toggle", serviceHandler.Toggle)
		secured.POST("/services/:id/duplicate", serviceHandler.Duplicate)

		secured.POST("/services/:id/variants/add", variantHandler.Create)
		secured.POST("/variants/:id/edit", variantHandler.Update)
		secured.POST("/variants/:id/delete", variantHandler.Delete)

		// ------------------------------
		// CATEGORIES
		// ------------------------------
		secured.GET("/categories", categoryHandler.List)
		secured.GET("/categories/tree", categoryHandler.Tree)
		secured.POST("/categories/add", categoryHandler.Create)
		secured.GET("/categories/:id", categoryHandler.Get)
		secured.POST("/categories/:id/edit", categoryHandler.Update)
		secured.POST("/categories/:id/delete", categoryHandler.Delete)

		// ------------------------------
		// ADD-ONS & PACKAGES
		// ------------------------------
		secured.GET("/addons", addonHandler.List)
		secured.POST("/addons/add", addonHandler.Create)
		secured.POST("/addons/:id/edit", addonHandler.Update)
		secured.POST("/addons/:id/delete", addonHandler.Delete)

		secured.GET("/packages", packageHandler.List)
		secured.POST("/packages/add", packageHandler.Create)
		secured.GET("/packages/:id", packageHandler.Get)
		secured.POST("/packages/:id/edit", packageHandler.Update)
		secured.POST("/packages/:id/delete", packageHandler.Delete)

		// ------------------------------
		// JSON PROJECTIONS
		// ------------------------------
		api := secured.Group("/api")
		{
			api.GET("/search", apiHandler.Search)
			api.GET("/services", apiHandler.Services)
			api.GET("/services/bookable", apiHandler.Bookable)
			api.GET("/services/:id", apiHandler.Service)
			api.GET("/categories/:id/services", apiHandler.ByCategory)
			api.GET("/featured", apiHandler.Featured)
			api.GET("/stats", apiHandler.Stats)
			api.GET("/price-range", apiHandler.PriceRange)
		}
		secured.GET("/dashboard", apiHandler.Dashboard)

		// ------------------------------
		// SETTINGS
		// ------------------------------
		secured.GET("/settings", settingsHandler.Get)
		secured.POST("/settings/save", settingsHandler.Save)
		secured.POST("/settings/toggle", settingsHandler.Toggle)
		secured.POST("/settings/input", settingsHandler.Input)
		secured.POST("/settings/reset", settingsHandler.Reset)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
