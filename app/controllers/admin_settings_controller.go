package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
)

// AdminSettingsController manages the editable site texts and toggles
type AdminSettingsController struct {
	settingRepo repository.SettingRepository
}

var adminSettingsController *AdminSettingsController

func NewAdminSettingsController(settingRepo repository.SettingRepository) *AdminSettingsController {
	return &AdminSettingsController{settingRepo: settingRepo}
}

// InitializeAdminSettingsController sets up the controller with global repositories
func InitializeAdminSettingsController() {
	adminSettingsController = NewAdminSettingsController(repository.GetGlobalRepositories().Setting)
}

// GetAdminSettingsController returns the singleton controller instance
func GetAdminSettingsController() *AdminSettingsController {
	if adminSettingsController == nil {
		InitializeAdminSettingsController()
	}
	return adminSettingsController
}

// HandleAdminSettings renders the settings form
func (asc *AdminSettingsController) HandleAdminSettings(c *fiber.Ctx) error {
	settings := models.GetAppSettings()

	data := viewData(c, "Site Settings")
	data["Settings"] = settings
	return c.Render("admin/settings", data, "layouts/admin")
}

// HandleAdminSettingsUpdate stores the submitted settings
func (asc *AdminSettingsController) HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	settings := &models.AppSettings{
		SiteTitle:       c.FormValue("site_title"),
		SiteDescription: c.FormValue("site_description"),
		ContactEmail:    c.FormValue("contact_email"),
		ContactPhone:    c.FormValue("contact_phone"),
		ScanPageEnabled: c.FormValue("scan_page_enabled") == "on",
	}

	if err := asc.settingRepo.Save(settings); err != nil {
		log.Printf("Admin Settings Controller Error: %v", err)
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("Failed to save settings: %v", err),
		}
		return flash.WithError(c, fm).Redirect("/admin/settings")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Settings saved",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/settings")
}
