package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jomedical/clinicverify/app/repository"
)

// Global admin controller instance
var adminController *AdminController

// InitializeAdminController initializes the global admin controller with repositories
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()
	adminController = NewAdminController(repos)
}

// GetAdminController returns the global admin controller instance
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

// Adapter functions to maintain a flat handler surface for the router

// HandleAdminDashboard - Adapter for the admin dashboard
func HandleAdminDashboard(c *fiber.Ctx) error {
	return GetAdminController().HandleDashboard(c)
}

// HandleAdminAnalytics - Adapter for verification analytics
func HandleAdminAnalytics(c *fiber.Ctx) error {
	return GetAdminController().HandleAnalytics(c)
}

// HandleAdminExpireSweep - Adapter for the manual expiry sweep
func HandleAdminExpireSweep(c *fiber.Ctx) error {
	return GetAdminController().HandleExpireSweep(c)
}

// HandleAdminClinics - Adapter for the clinic list
func HandleAdminClinics(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinics(c)
}

// HandleAdminClinicCreate - Adapter for the new clinic form
func HandleAdminClinicCreate(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinicCreate(c)
}

// HandleAdminClinicStore - Adapter for clinic creation
func HandleAdminClinicStore(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinicStore(c)
}

// HandleAdminClinicEdit - Adapter for the clinic edit form
func HandleAdminClinicEdit(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinicEdit(c)
}

// HandleAdminClinicUpdate - Adapter for clinic updates
func HandleAdminClinicUpdate(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinicUpdate(c)
}

// HandleAdminClinicDelete - Adapter for clinic deletion
func HandleAdminClinicDelete(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinicDelete(c)
}

// HandleAdminClinicsClear - Adapter for clearing all clinics
func HandleAdminClinicsClear(c *fiber.Ctx) error {
	return GetAdminClinicController().HandleAdminClinicsClear(c)
}

// HandleAdminSpecializations - Adapter for the specialization list
func HandleAdminSpecializations(c *fiber.Ctx) error {
	return GetAdminSpecializationController().HandleAdminSpecializations(c)
}

// HandleAdminSpecializationStore - Adapter for specialization creation
func HandleAdminSpecializationStore(c *fiber.Ctx) error {
	return GetAdminSpecializationController().HandleAdminSpecializationStore(c)
}

// HandleAdminSpecializationUpdate - Adapter for specialization updates
func HandleAdminSpecializationUpdate(c *fiber.Ctx) error {
	return GetAdminSpecializationController().HandleAdminSpecializationUpdate(c)
}

// HandleAdminSpecializationDelete - Adapter for specialization deletion
func HandleAdminSpecializationDelete(c *fiber.Ctx) error {
	return GetAdminSpecializationController().HandleAdminSpecializationDelete(c)
}

// HandleAdminSettings - Adapter for the settings form
func HandleAdminSettings(c *fiber.Ctx) error {
	return GetAdminSettingsController().HandleAdminSettings(c)
}

// HandleAdminSettingsUpdate - Adapter for saving settings
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	return GetAdminSettingsController().HandleAdminSettingsUpdate(c)
}

// HandleAdminImportPage - Adapter for the import/export page
func HandleAdminImportPage(c *fiber.Ctx) error {
	return GetAdminImportController().HandleAdminImportPage(c)
}

// HandleAdminImportTemplate - Adapter for the XLSX template download
func HandleAdminImportTemplate(c *fiber.Ctx) error {
	return GetAdminImportController().HandleAdminImportTemplate(c)
}

// HandleAdminImportUpload - Adapter for the XLSX import
func HandleAdminImportUpload(c *fiber.Ctx) error {
	return GetAdminImportController().HandleAdminImportUpload(c)
}

// HandleAdminExportCSV - Adapter for the CSV export download
func HandleAdminExportCSV(c *fiber.Ctx) error {
	return GetAdminImportController().HandleAdminExportCSV(c)
}

// HandleAdminExportBackup - Adapter for the S3 snapshot upload
func HandleAdminExportBackup(c *fiber.Ctx) error {
	return GetAdminImportController().HandleAdminExportBackup(c)
}
