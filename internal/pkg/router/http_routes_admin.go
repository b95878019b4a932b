package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jomedical/clinicverify/app/controllers"
	"github.com/jomedical/clinicverify/internal/pkg/middleware"
)

// Admin file downloads; the admin pages themselves are registered in the
// CSRF group because they render forms.
func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAuth)
	adminGroup.Get("/import/template", controllers.HandleAdminImportTemplate)
	adminGroup.Get("/export/csv", controllers.HandleAdminExportCSV)
}
