package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
)

// clinicRepository implements the ClinicRepository interface
type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository instance
func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

// Create creates a new clinic record in the database
func (r *clinicRepository) Create(clinic *models.Clinic) error {
	return r.db.Create(clinic).Error
}

// GetByID retrieves a clinic by its ID
func (r *clinicRepository) GetByID(id uint) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.First(&clinic, id).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

// GetByUUID retrieves a clinic by its public UUID
func (r *clinicRepository) GetByUUID(uuid string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.Where("uuid = ?", uuid).First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

// GetByLicense retrieves a clinic by its exact license number.
// License numbers are unique, so zero or one row matches.
func (r *clinicRepository) GetByLicense(license string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.Where("license_number = ?", license).First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

// LicenseExists checks if a license number is already registered
func (r *clinicRepository) LicenseExists(license string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Clinic{}).Where("license_number = ?", license).Count(&count).Error
	return count > 0, err
}

// LicenseExistsExceptID checks if a license number exists excluding a specific clinic
func (r *clinicRepository) LicenseExistsExceptID(license string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Clinic{}).Where("license_number = ? AND id != ?", license, id).Count(&count).Error
	return count > 0, err
}

// Update updates an existing clinic record in the database
func (r *clinicRepository) Update(clinic *models.Clinic) error {
	return r.db.Save(clinic).Error
}

// Delete soft deletes a clinic by its ID
func (r *clinicRepository) Delete(id uint) error {
	return r.db.Delete(&models.Clinic{}, id).Error
}

// DeleteAll soft deletes every clinic record and returns how many were removed
func (r *clinicRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&models.Clinic{})
	return result.RowsAffected, result.Error
}

// List retrieves clinics with pagination, newest first
func (r *clinicRepository) List(offset, limit int) ([]models.Clinic, error) {
	var clinics []models.Clinic
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&clinics).Error
	return clinics, err
}

// GetAll retrieves all clinics without pagination, newest first
func (r *clinicRepository) GetAll() ([]models.Clinic, error) {
	var clinics []models.Clinic
	err := r.db.Order("created_at DESC").Find(&clinics).Error
	return clinics, err
}

// Count returns the total number of clinics
func (r *clinicRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Clinic{}).Count(&count).Error
	return count, err
}

// Search retrieves clinics matching a name, license or doctor query,
// optionally restricted to one license status
func (r *clinicRepository) Search(query, status string) ([]models.Clinic, error) {
	var clinics []models.Clinic
	tx := r.db.Model(&models.Clinic{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("clinic_name LIKE ? OR license_number LIKE ? OR doctor_name LIKE ?", like, like, like)
	}
	if status != "" && status != "all" {
		tx = tx.Where("license_status = ?", status)
	}
	err := tx.Order("created_at DESC").Find(&clinics).Error
	return clinics, err
}

// CountByStatus returns clinic counts grouped by license status
func (r *clinicRepository) CountByStatus() ([]models.StatusCount, error) {
	var counts []models.StatusCount
	err := r.db.Model(&models.Clinic{}).
		Select("license_status AS status, COUNT(*) AS count").
		Group("license_status").
		Scan(&counts).Error
	return counts, err
}

// CountBySpecialization returns clinic counts grouped by specialization
func (r *clinicRepository) CountBySpecialization() ([]models.NameCount, error) {
	var counts []models.NameCount
	err := r.db.Model(&models.Clinic{}).
		Select("specialization AS name, COUNT(*) AS count").
		Group("specialization").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// GetExpiringBetween retrieves active clinics whose license expires in the given window
func (r *clinicRepository) GetExpiringBetween(start, end time.Time) ([]models.Clinic, error) {
	var clinics []models.Clinic
	err := r.db.Where("license_status = ? AND expiry_date BETWEEN ? AND ?",
		models.LICENSE_STATUS_ACTIVE, start, end).
		Order("expiry_date ASC").Find(&clinics).Error
	return clinics, err
}

// MarkExpired transitions active clinics with a past expiry date to expired
// and returns the number of rows changed
func (r *clinicRepository) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Clinic{}).
		Where("license_status = ? AND expiry_date IS NOT NULL AND expiry_date < ?",
			models.LICENSE_STATUS_ACTIVE, now).
		Update("license_status", models.LICENSE_STATUS_EXPIRED)
	return result.RowsAffected, result.Error
}

// IncrementVerificationCount adds delta to a clinic's verification counter
func (r *clinicRepository) IncrementVerificationCount(id uint, delta int64) error {
	return r.db.Model(&models.Clinic{}).Where("id = ?", id).
		Update("verification_count", gorm.Expr("verification_count + ?", delta)).Error
}
