package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/qrpayload"
	"github.com/jomedical/clinicverify/internal/pkg/statistics"
	"github.com/jomedical/clinicverify/internal/pkg/verification"
)

// AdminClinicController handles clinic management using repository pattern
type AdminClinicController struct {
	clinicRepo repository.ClinicRepository
	specRepo   repository.SpecializationRepository
}

var adminClinicController *AdminClinicController

// NewAdminClinicController creates a new clinic controller with repository dependencies
func NewAdminClinicController(clinicRepo repository.ClinicRepository, specRepo repository.SpecializationRepository) *AdminClinicController {
	return &AdminClinicController{
		clinicRepo: clinicRepo,
		specRepo:   specRepo,
	}
}

// InitializeAdminClinicController sets up the controller with global repositories
func InitializeAdminClinicController() {
	repos := repository.GetGlobalRepositories()
	adminClinicController = NewAdminClinicController(repos.Clinic, repos.Specialization)
}

// GetAdminClinicController returns the singleton controller instance
func GetAdminClinicController() *AdminClinicController {
	if adminClinicController == nil {
		InitializeAdminClinicController()
	}
	return adminClinicController
}

func (acc *AdminClinicController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("Admin Clinic Controller Error: %s - %v", message, err)

	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect("/admin/clinics")
}

// HandleAdminClinics renders the clinic list with search and pagination
func (acc *AdminClinicController) HandleAdminClinics(c *fiber.Ctx) error {
	query := c.Query("q", "")
	status := c.Query("status", "")

	if query != "" || status != "" {
		clinics, err := acc.clinicRepo.Search(query, status)
		if err != nil {
			return acc.handleError(c, "Failed to search clinics", err)
		}

		data := viewData(c, "Clinics")
		data["Clinics"] = clinics
		data["Query"] = query
		data["Status"] = status
		data["TotalClinics"] = int64(len(clinics))
		return c.Render("admin/clinics", data, "layouts/admin")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 20
	offset := (page - 1) * perPage

	totalClinics, err := acc.clinicRepo.Count()
	if err != nil {
		return acc.handleError(c, "Failed to get clinic count", err)
	}

	clinics, err := acc.clinicRepo.List(offset, perPage)
	if err != nil {
		return acc.handleError(c, "Failed to get clinics", err)
	}

	totalPages := int(totalClinics) / perPage
	if int(totalClinics)%perPage > 0 {
		totalPages++
	}

	data := viewData(c, "Clinics")
	data["Clinics"] = clinics
	data["Page"] = page
	data["TotalPages"] = totalPages
	data["TotalClinics"] = totalClinics
	if page > 1 {
		data["PrevPage"] = page - 1
	}
	if page < totalPages {
		data["NextPage"] = page + 1
	}
	return c.Render("admin/clinics", data, "layouts/admin")
}

// HandleAdminClinicCreate renders the new clinic form
func (acc *AdminClinicController) HandleAdminClinicCreate(c *fiber.Ctx) error {
	specs, err := acc.specRepo.GetActive()
	if err != nil {
		return acc.handleError(c, "Failed to load specializations", err)
	}

	data := viewData(c, "New Clinic")
	data["Specializations"] = specs
	data["Clinic"] = &models.Clinic{LicenseStatus: models.LICENSE_STATUS_ACTIVE}
	data["FormAction"] = "/admin/clinics"
	return c.Render("admin/clinic_form", data, "layouts/admin")
}

// HandleAdminClinicStore creates a new clinic from the submitted form
func (acc *AdminClinicController) HandleAdminClinicStore(c *fiber.Ctx) error {
	clinic, err := acc.clinicFromForm(c, &models.Clinic{UUID: uuid.New().String()})
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect("/admin/clinics/new")
	}

	exists, err := acc.clinicRepo.LicenseExists(clinic.LicenseNumber)
	if err != nil {
		return acc.handleError(c, "Failed to check license number", err)
	}
	if exists {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("License %s is already registered", clinic.LicenseNumber),
		}
		return flash.WithError(c, fm).Redirect("/admin/clinics/new")
	}

	if err := acc.clinicRepo.Create(clinic); err != nil {
		return acc.handleError(c, "Failed to create clinic", err)
	}

	// The QR payload embeds the database ID, so it is written after insert
	acc.refreshQRPayload(clinic)

	go statistics.UpdateStatisticsCache()

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Clinic %s created", clinic.ClinicName),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clinics")
}

// HandleAdminClinicEdit renders the edit form for one clinic
func (acc *AdminClinicController) HandleAdminClinicEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return acc.handleError(c, "Invalid clinic ID", err)
	}

	clinic, err := acc.clinicRepo.GetByID(uint(id))
	if err != nil {
		return acc.handleError(c, "Clinic not found", err)
	}

	specs, err := acc.specRepo.GetActive()
	if err != nil {
		return acc.handleError(c, "Failed to load specializations", err)
	}

	data := viewData(c, "Edit Clinic")
	data["Clinic"] = clinic
	data["Specializations"] = specs
	data["FormAction"] = fmt.Sprintf("/admin/clinics/%d", clinic.ID)
	return c.Render("admin/clinic_form", data, "layouts/admin")
}

// HandleAdminClinicUpdate applies the submitted form to an existing clinic
func (acc *AdminClinicController) HandleAdminClinicUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return acc.handleError(c, "Invalid clinic ID", err)
	}

	clinic, err := acc.clinicRepo.GetByID(uint(id))
	if err != nil {
		return acc.handleError(c, "Clinic not found", err)
	}

	oldLicense := clinic.LicenseNumber
	if _, err := acc.clinicFromForm(c, clinic); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": err.Error(),
		}
		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/admin/clinics/%d/edit", clinic.ID))
	}

	if clinic.LicenseNumber != oldLicense {
		exists, err := acc.clinicRepo.LicenseExistsExceptID(clinic.LicenseNumber, clinic.ID)
		if err != nil {
			return acc.handleError(c, "Failed to check license number", err)
		}
		if exists {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("License %s is already registered", clinic.LicenseNumber),
			}
			return flash.WithError(c, fm).Redirect(fmt.Sprintf("/admin/clinics/%d/edit", clinic.ID))
		}
	}

	if err := acc.clinicRepo.Update(clinic); err != nil {
		return acc.handleError(c, "Failed to update clinic", err)
	}

	if clinic.LicenseNumber != oldLicense || clinic.QRCode == "" {
		acc.refreshQRPayload(clinic)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Clinic %s updated", clinic.ClinicName),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clinics")
}

// HandleAdminClinicDelete removes one clinic
func (acc *AdminClinicController) HandleAdminClinicDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return acc.handleError(c, "Invalid clinic ID", err)
	}

	if err := acc.clinicRepo.Delete(uint(id)); err != nil {
		return acc.handleError(c, "Failed to delete clinic", err)
	}

	go statistics.UpdateStatisticsCache()

	fm := fiber.Map{
		"type":    "success",
		"message": "Clinic deleted",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clinics")
}

// HandleAdminClinicsClear removes all clinics after an explicit confirmation
func (acc *AdminClinicController) HandleAdminClinicsClear(c *fiber.Ctx) error {
	if c.FormValue("confirm") != "DELETE" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Type DELETE to confirm clearing all clinics",
		}
		return flash.WithError(c, fm).Redirect("/admin/clinics")
	}

	deleted, err := acc.clinicRepo.DeleteAll()
	if err != nil {
		return acc.handleError(c, "Failed to clear clinics", err)
	}

	go statistics.UpdateStatisticsCache()

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Removed %d clinics", deleted),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/clinics")
}

// clinicFromForm fills the given clinic from form values and validates it
func (acc *AdminClinicController) clinicFromForm(c *fiber.Ctx, clinic *models.Clinic) (*models.Clinic, error) {
	clinic.ClinicName = c.FormValue("clinic_name")
	clinic.DoctorName = c.FormValue("doctor_name")
	clinic.Specialization = c.FormValue("specialization")
	clinic.Phone = c.FormValue("phone")
	clinic.Address = c.FormValue("address")

	license := models.NormalizeLicenseNumber(c.FormValue("license_number"))
	if err := verification.ValidateLicense(license); err != nil {
		return nil, fmt.Errorf("invalid license number %q", license)
	}
	clinic.LicenseNumber = license

	status := c.FormValue("license_status", models.LICENSE_STATUS_ACTIVE)
	switch status {
	case models.LICENSE_STATUS_ACTIVE, models.LICENSE_STATUS_EXPIRED, models.LICENSE_STATUS_SUSPENDED, models.LICENSE_STATUS_PENDING:
		clinic.LicenseStatus = status
	default:
		return nil, fmt.Errorf("unknown license status %q", status)
	}

	var err error
	if clinic.IssueDate, err = parseFormDate(c.FormValue("issue_date")); err != nil {
		return nil, fmt.Errorf("bad issue date: %v", err)
	}
	if clinic.ExpiryDate, err = parseFormDate(c.FormValue("expiry_date")); err != nil {
		return nil, fmt.Errorf("bad expiry date: %v", err)
	}

	if err := clinic.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %v", err)
	}
	return clinic, nil
}

// refreshQRPayload regenerates and stores the clinic's QR payload
func (acc *AdminClinicController) refreshQRPayload(clinic *models.Clinic) {
	issued := time.Now()
	if clinic.IssueDate != nil {
		issued = *clinic.IssueDate
	}
	payload, err := qrpayload.Encode(clinic.LicenseNumber, strconv.FormatUint(uint64(clinic.ID), 10), issued)
	if err != nil {
		log.Printf("Failed to encode QR payload for clinic %d: %v", clinic.ID, err)
		return
	}
	clinic.QRCode = payload
	if err := acc.clinicRepo.Update(clinic); err != nil {
		log.Printf("Failed to store QR payload for clinic %d: %v", clinic.ID, err)
	}
}

func parseFormDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
