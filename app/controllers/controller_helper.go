package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/usercontext"
	"github.com/jomedical/clinicverify/internal/pkg/verification"
)

const (
	AUTH_KEY       string = usercontext.AuthKey
	USER_ID        string = usercontext.KeyUserID
	USER_NAME      string = usercontext.KeyUsername
	USER_IS_ADMIN  string = usercontext.KeyIsAdmin
	FROM_PROTECTED string = usercontext.KeyFromProtected
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

func isAdmin(c *fiber.Ctx) bool {
	if adminValue := c.Locals(USER_IS_ADMIN); adminValue != nil {
		if admin, ok := adminValue.(bool); ok {
			return admin
		}
	}
	return false
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// GetClientIP determines the actual client IP address considering proxies
func GetClientIP(c *fiber.Ctx) string {
	// Cloudflare provides the original client IP in this header
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	// X-Forwarded-For can contain a list of IPs, the first one is the client
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	ipAddr := c.IP()

	// Unwrap IPv4-mapped-IPv6 addresses (::ffff:192.168.1.1)
	if strings.HasPrefix(ipAddr, "::ffff:") && strings.Contains(ipAddr, ".") {
		return strings.TrimPrefix(ipAddr, "::ffff:")
	}

	return ipAddr
}

// requestMeta captures the client metadata stored with a verification attempt
func requestMeta(c *fiber.Ctx) verification.RequestMeta {
	return verification.RequestMeta{
		UserAgent: c.Get("User-Agent"),
		IPAddress: GetClientIP(c),
	}
}

type auditLogAdapter struct {
	repo repository.VerificationRepository
}

func (a auditLogAdapter) Record(attempt *models.Verification) error {
	return a.repo.Create(attempt)
}

// verifyEngine builds the verification pipeline on the global repositories
func verifyEngine() *verification.Engine {
	repos := repository.GetGlobalRepositories()
	return verification.NewEngine(repos.Clinic, auditLogAdapter{repo: repos.Verification})
}

// viewData assembles the fiber.Map every page template expects
func viewData(c *fiber.Ctx, title string) fiber.Map {
	settings := models.GetAppSettings()

	data := fiber.Map{
		"Title":       title,
		"SiteTitle":   settings.SiteTitle,
		"SiteDesc":    settings.SiteDescription,
		"ContactMail": settings.ContactEmail,
		"ContactTel":  settings.ContactPhone,
		"ScanEnabled": settings.ScanPageEnabled,
		"IsLoggedIn":  isLoggedIn(c),
		"IsAdmin":     isAdmin(c),
		"Username":    ExtractUsername(c),
		"Flash":       flash.Get(c),
	}
	if token, ok := c.Locals("csrf").(string); ok {
		data["CSRFToken"] = token
	}
	return data
}
