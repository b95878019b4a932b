package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/internal/pkg/statistics"
)

// HandleStart renders the public landing page with the portal counters
func HandleStart(c *fiber.Ctx) error {
	stats := statistics.GetStatistics()

	data := viewData(c, "")
	data["TotalClinics"] = stats.TotalClinics
	data["ActiveClinics"] = stats.ActiveClinics
	data["TotalVerifications"] = stats.TotalVerifications
	data["TodayVerifications"] = stats.TodayVerifications

	return c.Render("home", data, "layouts/main")
}

// HandleCheck renders the manual license check form and processes submissions
func HandleCheck(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		license := c.FormValue("license_number")
		if license == "" {
			fm := fiber.Map{
				"type":    "error",
				"message": "Please enter a license number",
			}
			return flash.WithError(c, fm).Redirect("/check")
		}

		result, err := verifyEngine().Verify(license, models.VERIFICATION_METHOD_MANUAL, requestMeta(c))

		data := viewData(c, "Verification Result")
		data["Result"] = result
		data["Invalid"] = err != nil
		return c.Render("result", data, "layouts/main")
	}

	data := viewData(c, "Check a License")
	return c.Render("check", data, "layouts/main")
}

// HandleScanPage renders the camera scan page when it is enabled
func HandleScanPage(c *fiber.Ctx) error {
	if !models.GetAppSettings().IsScanPageEnabled() {
		fm := fiber.Map{
			"type":    "error",
			"message": "QR scanning is currently disabled",
		}
		return flash.WithError(c, fm).Redirect("/check")
	}

	data := viewData(c, "Scan QR Code")
	return c.Render("scan", data, "layouts/main")
}

// HandleScanResult verifies the text decoded by the in-browser camera scanner
func HandleScanResult(c *fiber.Ctx) error {
	if !models.GetAppSettings().IsScanPageEnabled() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "scanning disabled",
		})
	}

	payload := c.FormValue("payload")
	if payload == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing payload",
		})
	}

	result, err := verifyEngine().Verify(payload, models.VERIFICATION_METHOD_QR, requestMeta(c))

	return c.JSON(fiber.Map{
		"status":         result.Status,
		"license_number": result.LicenseNumber,
		"clinic":         result.Clinic,
		"invalid":        err != nil,
	})
}
