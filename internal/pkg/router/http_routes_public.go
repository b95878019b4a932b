package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jomedical/clinicverify/app/controllers"
	"github.com/jomedical/clinicverify/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public QR code download for printed certificates
	app.Get("/clinics/:uuid/qr.png", loggedInMiddleware, controllers.HandleClinicQR)

	// Camera scan page and its result endpoint
	app.Get("/scan", loggedInMiddleware, controllers.HandleScanPage)
	app.Post("/scan/result", loggedInMiddleware, controllers.HandleScanResult)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}
