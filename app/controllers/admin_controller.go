package controllers

import (
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mssola/useragent"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/expiry"
)

// AdminController handles admin-related HTTP requests using repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

// HandleDashboard renders the admin dashboard
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalClinics, err := ac.repos.Clinic.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get clinic count", err)
	}

	totalVerifications, err := ac.repos.Verification.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get verification count", err)
	}

	statusCounts, err := ac.repos.Clinic.CountByStatus()
	if err != nil {
		return ac.handleError(c, "Failed to get status breakdown", err)
	}

	recentVerifications, err := ac.repos.Verification.GetRecent(10)
	if err != nil {
		return ac.handleError(c, "Failed to get recent verifications", err)
	}

	// Last seven days for the dashboard chart
	end := time.Now()
	start := end.AddDate(0, 0, -6)
	dailyStats, err := ac.repos.Verification.GetDailyStats(start, end)
	if err != nil {
		log.Printf("Failed to get daily verification stats: %v", err)
	}

	expiringSoon, err := ac.repos.Clinic.GetExpiringBetween(end, end.AddDate(0, 0, 30))
	if err != nil {
		log.Printf("Failed to get expiring clinics: %v", err)
	}

	data := viewData(c, "Admin Dashboard")
	data["TotalClinics"] = totalClinics
	data["TotalVerifications"] = totalVerifications
	data["StatusCounts"] = statusCounts
	data["RecentVerifications"] = recentVerifications
	data["DailyStats"] = fillMissingDays(dailyStats, start, end)
	data["ExpiringSoon"] = expiringSoon

	return c.Render("admin/dashboard", data, "layouts/admin")
}

// HandleAnalytics renders verification analytics with breakdowns
func (ac *AdminController) HandleAnalytics(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	dailyStats, err := ac.repos.Verification.GetDailyStats(start, end)
	if err != nil {
		return ac.handleError(c, "Failed to get daily statistics", err)
	}

	statusCounts, err := ac.repos.Verification.CountByStatus()
	if err != nil {
		return ac.handleError(c, "Failed to get status breakdown", err)
	}

	specializationCounts, err := ac.repos.Clinic.CountBySpecialization()
	if err != nil {
		return ac.handleError(c, "Failed to get specialization breakdown", err)
	}

	userAgents, err := ac.repos.Verification.GetRecentUserAgents(500)
	if err != nil {
		return ac.handleError(c, "Failed to get client breakdown", err)
	}

	data := viewData(c, "Analytics")
	data["Days"] = days
	data["DailyStats"] = fillMissingDays(dailyStats, start, end)
	data["StatusCounts"] = statusCounts
	data["SpecializationCounts"] = specializationCounts
	data["Browsers"] = summarizeUserAgents(userAgents)

	return c.Render("admin/analytics", data, "layouts/admin")
}

// HandleExpireSweep marks all overdue active clinics as expired
func (ac *AdminController) HandleExpireSweep(c *fiber.Ctx) error {
	updated, err := expiry.Sweep(ac.repos.Clinic)
	if err != nil {
		return ac.handleError(c, "Failed to run expiry sweep", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": strconv.FormatInt(updated, 10) + " clinics marked as expired",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// fillMissingDays pads the daily series so the chart has one point per day
func fillMissingDays(stats []models.DailyStats, start, end time.Time) []models.DailyStats {
	byDate := make(map[string]int, len(stats))
	for _, s := range stats {
		byDate[s.Date] = s.Count
	}

	var filled []models.DailyStats
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		filled = append(filled, models.DailyStats{Date: key, Count: byDate[key]})
	}
	return filled
}

// summarizeUserAgents groups raw user agent strings by browser family
func summarizeUserAgents(agents []string) []models.NameCount {
	counts := make(map[string]int64)
	for _, raw := range agents {
		if raw == "" {
			continue
		}
		ua := useragent.New(raw)
		name := "Other"
		if ua.Bot() {
			name = "Bot"
		} else if browser, _ := ua.Browser(); browser != "" {
			name = browser
			if ua.Mobile() {
				name += " (Mobile)"
			}
		}
		counts[name]++
	}

	result := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, models.NameCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("Admin Controller Error: %s - %v", message, err)

	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}

	return flash.WithError(c, fm).Redirect("/admin")
}
