package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jomedical/clinicverify/app/controllers"
	"github.com/jomedical/clinicverify/internal/pkg/middleware"
	"github.com/jomedical/clinicverify/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers with repositories
	controllers.InitializeAdminController()
	controllers.InitializeAdminClinicController()
	controllers.InitializeAdminSpecializationController()
	controllers.InitializeAdminSettingsController()
	controllers.InitializeAdminImportController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	return c.Next()
}
