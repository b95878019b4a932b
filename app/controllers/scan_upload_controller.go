package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/qrimage"
)

// uploads above this size are rejected before decoding
const maxUploadBytes = 10 * 1024 * 1024

// HandleScanUpload extracts a QR code from an uploaded image and verifies it
func HandleScanUpload(c *fiber.Ctx) error {
	if !models.GetAppSettings().IsScanPageEnabled() {
		fm := fiber.Map{
			"type":    "error",
			"message": "QR scanning is currently disabled",
		}
		return flash.WithError(c, fm).Redirect("/check")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please choose an image to upload",
		}
		return flash.WithError(c, fm).Redirect("/scan")
	}

	if fileHeader.Size > maxUploadBytes {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("Image too large, maximum is %d MB", maxUploadBytes/(1024*1024)),
		}
		return flash.WithError(c, fm).Redirect("/scan")
	}

	file, err := fileHeader.Open()
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not read the uploaded image",
		}
		return flash.WithError(c, fm).Redirect("/scan")
	}
	defer file.Close()

	payload, err := qrimage.DecodeReader(file)
	if err != nil {
		message := "Could not read the uploaded image"
		if errors.Is(err, qrimage.ErrNoCode) {
			message = "No QR code was found in the image"
		}
		fm := fiber.Map{
			"type":    "error",
			"message": message,
		}
		return flash.WithError(c, fm).Redirect("/scan")
	}

	result, verr := verifyEngine().Verify(payload, models.VERIFICATION_METHOD_IMAGE, requestMeta(c))

	data := viewData(c, "Verification Result")
	data["Result"] = result
	data["Invalid"] = verr != nil
	return c.Render("result", data, "layouts/main")
}

// HandleClinicQR streams the QR code PNG for a clinic identified by UUID
func HandleClinicQR(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing clinic id")
	}

	clinic, err := repository.GetGlobalRepositories().Clinic.GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("clinic not found")
	}

	payload := clinic.QRCode
	if payload == "" {
		// older rows may predate stored payloads
		payload = clinic.LicenseNumber
	}

	png, err := qrimage.GeneratePNG(payload, qrimage.DefaultSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("could not render QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "clinic-"+clinic.LicenseNumber+".png"))
	return c.Send(png)
}
