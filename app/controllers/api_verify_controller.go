package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/qrpayload"
	"github.com/jomedical/clinicverify/internal/pkg/verification"
)

// VerifyRequest is the JSON body of the public verification endpoint
type VerifyRequest struct {
	Input  string `json:"input"`
	Method string `json:"method"`
}

// HandleVerifyAPI verifies a license number or QR payload and returns the
// classified result as JSON. The endpoint is public and rate limited via
// router middleware.
func HandleVerifyAPI(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid JSON body"})
	}

	if req.Input == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "input missing"})
	}

	method := req.Method
	switch method {
	case models.VERIFICATION_METHOD_QR, models.VERIFICATION_METHOD_MANUAL, models.VERIFICATION_METHOD_IMAGE:
	case "":
		method = models.VERIFICATION_METHOD_MANUAL
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "unknown method"})
	}

	result, err := verifyEngine().Verify(req.Input, method, requestMeta(c))

	response := fiber.Map{
		"status":         result.Status,
		"license_number": result.LicenseNumber,
	}
	if err != nil {
		response["message"] = "license number must be 5-20 characters of letters, digits and hyphens"
	}
	if result.Clinic != nil {
		response["clinic"] = fiber.Map{
			"uuid":           result.Clinic.UUID,
			"clinic_name":    result.Clinic.ClinicName,
			"doctor_name":    result.Clinic.DoctorName,
			"specialization": result.Clinic.Specialization,
			"license_number": result.Clinic.LicenseNumber,
			"license_status": result.Clinic.LicenseStatus,
			"issue_date":     result.Clinic.IssueDate,
			"expiry_date":    result.Clinic.ExpiryDate,
		}
	}

	return c.JSON(response)
}

// HandleClinicQRPayloadAPI returns the encoded QR payload text for a license
// number, so clients can render a preview without fetching the PNG.
func HandleClinicQRPayloadAPI(c *fiber.Ctx) error {
	license := verification.Normalize(c.Params("license"))
	if err := verification.ValidateLicense(license); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid license number"})
	}

	clinic, err := repository.GetGlobalRepositories().Clinic.GetByLicense(license)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "no clinic with this license number"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal", "message": "lookup failed"})
	}

	payload := clinic.QRCode
	if payload == "" {
		issued := clinic.CreatedAt
		if clinic.IssueDate != nil {
			issued = *clinic.IssueDate
		}
		if issued.IsZero() {
			issued = time.Now()
		}
		payload, err = qrpayload.Encode(clinic.LicenseNumber, strconv.FormatUint(uint64(clinic.ID), 10), issued)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal", "message": "payload encoding failed"})
		}
	}

	return c.JSON(fiber.Map{
		"license_number": clinic.LicenseNumber,
		"payload":        payload,
	})
}
