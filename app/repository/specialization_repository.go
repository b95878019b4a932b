package repository

import (
	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
)

// specializationRepository implements the SpecializationRepository interface
type specializationRepository struct {
	db *gorm.DB
}

// NewSpecializationRepository creates a new specialization repository instance
func NewSpecializationRepository(db *gorm.DB) SpecializationRepository {
	return &specializationRepository{db: db}
}

// Create creates a new specialization entry
func (r *specializationRepository) Create(spec *models.Specialization) error {
	return r.db.Create(spec).Error
}

// GetByID retrieves a specialization by its ID
func (r *specializationRepository) GetByID(id uint) (*models.Specialization, error) {
	var spec models.Specialization
	err := r.db.First(&spec, id).Error
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// GetAll retrieves all specializations ordered by sort order
func (r *specializationRepository) GetAll() ([]models.Specialization, error) {
	var specs []models.Specialization
	err := r.db.Order("sort_order ASC").Find(&specs).Error
	return specs, err
}

// GetActive retrieves active specializations ordered by sort order
func (r *specializationRepository) GetActive() ([]models.Specialization, error) {
	var specs []models.Specialization
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC").Find(&specs).Error
	return specs, err
}

// Update updates an existing specialization
func (r *specializationRepository) Update(spec *models.Specialization) error {
	return r.db.Save(spec).Error
}

// Delete removes a specialization by its ID
func (r *specializationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Specialization{}, id).Error
}

// NextSortOrder returns the sort order for a newly appended entry
func (r *specializationRepository) NextSortOrder() (int, error) {
	var max int
	err := r.db.Model(&models.Specialization{}).
		Select("COALESCE(MAX(sort_order), 0)").Scan(&max).Error
	return max + 1, err
}
