package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jomedical/clinicverify/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// The verify endpoint is public, so rate limit per client IP
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return controllers.GetClientIP(c)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "too many requests, slow down",
			})
		},
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "clinic verification api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	v1.Post("/verify", controllers.HandleVerifyAPI)
	v1.Get("/clinics/:license/qr", controllers.HandleClinicQRPayloadAPI)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
