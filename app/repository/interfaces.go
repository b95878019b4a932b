package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
)

// ClinicRepository defines the interface for clinic-related database operations
type ClinicRepository interface {
	Create(clinic *models.Clinic) error
	GetByID(id uint) (*models.Clinic, error)
	GetByUUID(uuid string) (*models.Clinic, error)
	GetByLicense(license string) (*models.Clinic, error)
	LicenseExists(license string) (bool, error)
	LicenseExistsExceptID(license string, id uint) (bool, error)
	Update(clinic *models.Clinic) error
	Delete(id uint) error
	DeleteAll() (int64, error)
	List(offset, limit int) ([]models.Clinic, error)
	GetAll() ([]models.Clinic, error)
	Count() (int64, error)
	Search(query, status string) ([]models.Clinic, error)
	CountByStatus() ([]models.StatusCount, error)
	CountBySpecialization() ([]models.NameCount, error)
	GetExpiringBetween(start, end time.Time) ([]models.Clinic, error)
	MarkExpired(now time.Time) (int64, error)
	IncrementVerificationCount(id uint, delta int64) error
}

// VerificationRepository defines the interface for the verification audit log
type VerificationRepository interface {
	Create(attempt *models.Verification) error
	Count() (int64, error)
	CountByStatus() ([]models.StatusCount, error)
	GetRecent(limit int) ([]models.Verification, error)
	GetDailyStats(startDate, endDate time.Time) ([]models.DailyStats, error)
	GetRecentUserAgents(limit int) ([]string, error)
}

// SpecializationRepository defines the interface for the specialization catalogue
type SpecializationRepository interface {
	Create(spec *models.Specialization) error
	GetByID(id uint) (*models.Specialization, error)
	GetAll() ([]models.Specialization, error)
	GetActive() ([]models.Specialization, error)
	Update(spec *models.Specialization) error
	Delete(id uint) error
	NextSortOrder() (int, error)
}

// SettingRepository defines the interface for site-text settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Clinic         ClinicRepository
	Verification   VerificationRepository
	Specialization SpecializationRepository
	Setting        SettingRepository
	User           UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Clinic:         NewClinicRepository(db),
		Verification:   NewVerificationRepository(db),
		Specialization: NewSpecializationRepository(db),
		Setting:        NewSettingRepository(db),
		User:           NewUserRepository(db),
	}
}
