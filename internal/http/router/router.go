package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/config"
	"github.com/ignatzorin/agency-site/internal/http/handlers"
	"github.com/ignatzorin/agency-site/internal/http/middleware"
)

// Handlers: все обработчики, которые монтирует роутер.
type Handlers struct {
	Health    *handlers.HealthHandler
	Catalog   *handlers.CatalogHandler
	Careers   *handlers.CareersHandler
	Contact   *handlers.ContactHandler
	Auth      *handlers.AuthHandler
	WS        *handlers.WSHandler
	Toasts    *handlers.ToastHandler
	Dashboard *handlers.DashboardHandler
	Contacts  *handlers.ContactsAdminHandler
	Dialogs   *handlers.DialogHandler
	Audit     *handlers.AuditHandler
}

func SetupRouter(cfg *config.Config, h Handlers, sessions middleware.SessionAuthenticator) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = 1 << 20

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	// Публичный сайт
	api.GET("/jobs", h.Catalog.ListJobs)
	api.GET("/jobs/:id", h.Catalog.GetJob)
	api.GET("/projects", h.Catalog.ListProjects)
	api.GET("/projects/:id", h.Catalog.GetProject)

	submissions := api.Group("/")
	submissions.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		submissions.POST("/applications/:kind", h.Careers.Submit)
		submissions.POST("/contact", h.Contact.Submit)
	}

	// Консоль администратора
	admin := api.Group("/admin")
	admin.POST("/login", middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod), h.Auth.Login)

	protected := admin.Group("/")
	protected.Use(middleware.AuthMiddleware(sessions))
	{
		protected.POST("/logout", h.Auth.Logout)
		protected.GET("/me", h.Auth.Me)
		protected.GET("/ws", h.WS.Handle)

		protected.GET("/toasts", h.Toasts.List)
		protected.DELETE("/toasts/:id", h.Toasts.Dismiss)

		protected.POST("/refresh", h.Dashboard.Refresh)
		protected.GET("/applications", h.Dashboard.Applications)
		protected.GET("/applications/stats", h.Dashboard.Stats)
		protected.GET("/applications/export", h.Dashboard.Export)
		protected.PATCH("/applications/:kind/:id/status", middleware.ResourceIDValidator("id"), h.Dashboard.UpdateStatus)
		protected.POST("/applications/:kind/:id/detail", middleware.ResourceIDValidator("id"), h.Dialogs.OpenApplication)
		protected.POST("/applications/:kind/:id/delete", middleware.ResourceIDValidator("id"), h.Dialogs.RequestApplicationDelete)

		protected.POST("/detail/advance", h.Dialogs.Advance)
		protected.DELETE("/detail", h.Dialogs.Close)
		protected.POST("/delete/confirm", h.Dialogs.ConfirmDelete)
		protected.DELETE("/delete", h.Dialogs.CancelDelete)

		protected.GET("/contacts", h.Contacts.List)
		protected.GET("/contacts/stats", h.Contacts.Stats)
		protected.GET("/contacts/:id", middleware.ResourceIDValidator("id"), h.Contacts.Get)
		protected.PATCH("/contacts/:id/status", middleware.ResourceIDValidator("id"), h.Contacts.UpdateStatus)
		protected.POST("/contacts/:id/detail", middleware.ResourceIDValidator("id"), h.Dialogs.OpenContact)
		protected.POST("/contacts/:id/delete", middleware.ResourceIDValidator("id"), h.Dialogs.RequestContactDelete)

		protected.GET("/audit", h.Audit.List)
		protected.GET("/audit/:id", h.Audit.Get)
	}

	return r
}
