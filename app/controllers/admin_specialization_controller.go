package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
)

// AdminSpecializationController manages the specialization catalogue
type AdminSpecializationController struct {
	specRepo repository.SpecializationRepository
}

var adminSpecializationController *AdminSpecializationController

func NewAdminSpecializationController(specRepo repository.SpecializationRepository) *AdminSpecializationController {
	return &AdminSpecializationController{specRepo: specRepo}
}

// InitializeAdminSpecializationController sets up the controller with global repositories
func InitializeAdminSpecializationController() {
	adminSpecializationController = NewAdminSpecializationController(repository.GetGlobalRepositories().Specialization)
}

// GetAdminSpecializationController returns the singleton controller instance
func GetAdminSpecializationController() *AdminSpecializationController {
	if adminSpecializationController == nil {
		InitializeAdminSpecializationController()
	}
	return adminSpecializationController
}

func (asc *AdminSpecializationController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("Admin Specialization Controller Error: %s - %v", message, err)

	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect("/admin/specializations")
}

// HandleAdminSpecializations renders the specialization list
func (asc *AdminSpecializationController) HandleAdminSpecializations(c *fiber.Ctx) error {
	specs, err := asc.specRepo.GetAll()
	if err != nil {
		return asc.handleError(c, "Failed to load specializations", err)
	}

	data := viewData(c, "Specializations")
	data["Specializations"] = specs
	return c.Render("admin/specializations", data, "layouts/admin")
}

// HandleAdminSpecializationStore creates a new specialization
func (asc *AdminSpecializationController) HandleAdminSpecializationStore(c *fiber.Ctx) error {
	sortOrder, err := asc.specRepo.NextSortOrder()
	if err != nil {
		return asc.handleError(c, "Failed to determine sort order", err)
	}

	spec := &models.Specialization{
		NameAr:    c.FormValue("name_ar"),
		NameEn:    c.FormValue("name_en"),
		IsActive:  c.FormValue("is_active", "on") == "on",
		SortOrder: sortOrder,
	}
	if err := spec.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("validation failed: %v", err),
		}
		return flash.WithError(c, fm).Redirect("/admin/specializations")
	}

	if err := asc.specRepo.Create(spec); err != nil {
		return asc.handleError(c, "Failed to create specialization", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Specialization %s created", spec.NameAr),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/specializations")
}

// HandleAdminSpecializationUpdate edits an existing specialization
func (asc *AdminSpecializationController) HandleAdminSpecializationUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return asc.handleError(c, "Invalid specialization ID", err)
	}

	spec, err := asc.specRepo.GetByID(uint(id))
	if err != nil {
		return asc.handleError(c, "Specialization not found", err)
	}

	spec.NameAr = c.FormValue("name_ar", spec.NameAr)
	spec.NameEn = c.FormValue("name_en", spec.NameEn)
	spec.IsActive = c.FormValue("is_active") == "on"
	if v := c.FormValue("sort_order"); v != "" {
		if order, err := strconv.Atoi(v); err == nil {
			spec.SortOrder = order
		}
	}

	if err := spec.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("validation failed: %v", err),
		}
		return flash.WithError(c, fm).Redirect("/admin/specializations")
	}

	if err := asc.specRepo.Update(spec); err != nil {
		return asc.handleError(c, "Failed to update specialization", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Specialization %s updated", spec.NameAr),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/specializations")
}

// HandleAdminSpecializationDelete removes a specialization from the catalogue
func (asc *AdminSpecializationController) HandleAdminSpecializationDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return asc.handleError(c, "Invalid specialization ID", err)
	}

	if err := asc.specRepo.Delete(uint(id)); err != nil {
		return asc.handleError(c, "Failed to delete specialization", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Specialization deleted",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/specializations")
}
