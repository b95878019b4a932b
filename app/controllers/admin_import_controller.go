package controllers

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/bulk"
	"github.com/jomedical/clinicverify/internal/pkg/s3export"
	"github.com/jomedical/clinicverify/internal/pkg/statistics"
)

// AdminImportController handles bulk import and export of clinic records
type AdminImportController struct {
	clinicRepo repository.ClinicRepository
}

var adminImportController *AdminImportController

func NewAdminImportController(clinicRepo repository.ClinicRepository) *AdminImportController {
	return &AdminImportController{clinicRepo: clinicRepo}
}

// InitializeAdminImportController sets up the controller with global repositories
func InitializeAdminImportController() {
	adminImportController = NewAdminImportController(repository.GetGlobalRepositories().Clinic)
}

// GetAdminImportController returns the singleton controller instance
func GetAdminImportController() *AdminImportController {
	if adminImportController == nil {
		InitializeAdminImportController()
	}
	return adminImportController
}

func (aic *AdminImportController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("Admin Import Controller Error: %s - %v", message, err)

	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect("/admin/import")
}

// HandleAdminImportPage renders the import/export page
func (aic *AdminImportController) HandleAdminImportPage(c *fiber.Ctx) error {
	data := viewData(c, "Import & Export")
	return c.Render("admin/import", data, "layouts/admin")
}

// HandleAdminImportTemplate streams the empty XLSX import template
func (aic *AdminImportController) HandleAdminImportTemplate(c *fiber.Ctx) error {
	f, err := bulk.BuildTemplate()
	if err != nil {
		return aic.handleError(c, "Failed to build template", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return aic.handleError(c, "Failed to write template", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="clinic-import-template.xlsx"`)
	return c.Send(buf.Bytes())
}

// HandleAdminImportUpload runs a bulk import from an uploaded workbook
func (aic *AdminImportController) HandleAdminImportUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please choose a workbook to upload",
		}
		return flash.WithError(c, fm).Redirect("/admin/import")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return aic.handleError(c, "Could not read the uploaded workbook", err)
	}
	defer file.Close()

	result, err := bulk.ImportXLSX(file, aic.clinicRepo)
	if err != nil {
		return aic.handleError(c, fmt.Sprintf("Import failed: %v", err), err)
	}

	go statistics.UpdateStatisticsCache()

	data := viewData(c, "Import Result")
	data["Result"] = result
	return c.Render("admin/import_result", data, "layouts/admin")
}

// HandleAdminExportCSV streams all clinics as a CSV download
func (aic *AdminImportController) HandleAdminExportCSV(c *fiber.Ctx) error {
	clinics, err := aic.clinicRepo.GetAll()
	if err != nil {
		return aic.handleError(c, "Failed to load clinics", err)
	}

	var buf bytes.Buffer
	if err := bulk.ExportCSV(&buf, clinics); err != nil {
		return aic.handleError(c, "Failed to build export", err)
	}

	filename := fmt.Sprintf("clinics-%s.csv", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// HandleAdminExportBackup uploads a CSV snapshot to the configured S3 bucket
func (aic *AdminImportController) HandleAdminExportBackup(c *fiber.Ctx) error {
	cfg, err := s3export.LoadConfig()
	if err != nil {
		return aic.handleError(c, fmt.Sprintf("S3 export misconfigured: %v", err), err)
	}
	if !cfg.IsEnabled() {
		fm := fiber.Map{
			"type":    "error",
			"message": "S3 export is disabled",
		}
		return flash.WithError(c, fm).Redirect("/admin/import")
	}

	client, err := s3export.NewClient(cfg)
	if err != nil {
		return aic.handleError(c, "Failed to connect to S3", err)
	}

	clinics, err := aic.clinicRepo.GetAll()
	if err != nil {
		return aic.handleError(c, "Failed to load clinics", err)
	}

	var buf bytes.Buffer
	if err := bulk.ExportCSV(&buf, clinics); err != nil {
		return aic.handleError(c, "Failed to build export", err)
	}

	result, err := client.UploadSnapshot(buf.Bytes(), time.Now())
	if err != nil {
		return aic.handleError(c, "Failed to upload snapshot", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Snapshot stored at s3://%s/%s", result.Bucket, result.ObjectKey),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/import")
}
