package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/jomedical/clinicverify/app/controllers"
	"github.com/jomedical/clinicverify/internal/pkg/env"
	"github.com/jomedical/clinicverify/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	// Public verification forms
	group.Get("/check", loggedInMiddleware, controllers.HandleCheck)
	group.Post("/check", loggedInMiddleware, controllers.HandleCheck)
	group.Post("/scan/upload", loggedInMiddleware, controllers.HandleScanUpload)

	// Staff login
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)

	// Admin pages render forms, so they need the CSRF token in Locals
	group.Get("/admin", middleware.RequireAuth, controllers.HandleAdminDashboard)
	group.Get("/admin/analytics", middleware.RequireAuth, controllers.HandleAdminAnalytics)
	group.Get("/admin/clinics", middleware.RequireAuth, controllers.HandleAdminClinics)
	group.Get("/admin/clinics/new", middleware.RequireAuth, controllers.HandleAdminClinicCreate)
	group.Get("/admin/clinics/:id/edit", middleware.RequireAuth, controllers.HandleAdminClinicEdit)
	group.Get("/admin/specializations", middleware.RequireAuth, controllers.HandleAdminSpecializations)
	group.Get("/admin/settings", middleware.RequireAdmin, controllers.HandleAdminSettings)
	group.Get("/admin/import", middleware.RequireAuth, controllers.HandleAdminImportPage)

	// Admin clinic management forms
	group.Post("/admin/clinics", middleware.RequireAuth, controllers.HandleAdminClinicStore)
	group.Post("/admin/clinics/clear", middleware.RequireAdmin, controllers.HandleAdminClinicsClear)
	group.Post("/admin/clinics/expire-sweep", middleware.RequireAdmin, controllers.HandleAdminExpireSweep)
	group.Post("/admin/clinics/:id", middleware.RequireAuth, controllers.HandleAdminClinicUpdate)
	group.Post("/admin/clinics/:id/delete", middleware.RequireAuth, controllers.HandleAdminClinicDelete)

	// Admin specialization forms
	group.Post("/admin/specializations", middleware.RequireAuth, controllers.HandleAdminSpecializationStore)
	group.Post("/admin/specializations/:id", middleware.RequireAuth, controllers.HandleAdminSpecializationUpdate)
	group.Post("/admin/specializations/:id/delete", middleware.RequireAuth, controllers.HandleAdminSpecializationDelete)

	// Admin settings (admin role only)
	group.Post("/admin/settings", middleware.RequireAdmin, controllers.HandleAdminSettingsUpdate)

	// Admin import/export forms
	group.Post("/admin/import", middleware.RequireAuth, controllers.HandleAdminImportUpload)
	group.Post("/admin/export/backup", middleware.RequireAdmin, controllers.HandleAdminExportBackup)
}
