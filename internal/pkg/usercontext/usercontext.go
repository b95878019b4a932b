package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext carries the authenticated state of the current request. It is
// resolved once by the middleware and read by handlers and views.
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"is_logged_in"`
	IsAdmin    bool   `json:"is_admin"`
}

// Anonymous is the context used when no session is present.
func Anonymous() UserContext {
	return UserContext{}
}

// GetUserContext returns the UserContext attached to the request, or an
// anonymous one when the middleware has not run.
func GetUserContext(c *fiber.Ctx) UserContext {
	if v, ok := c.Locals(LocalsKey).(UserContext); ok {
		return v
	}
	return Anonymous()
}

func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}

func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

func GetUsername(c *fiber.Ctx) string {
	return GetUserContext(c).Username
}
