package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	LICENSE_STATUS_ACTIVE    = "active"
	LICENSE_STATUS_EXPIRED   = "expired"
	LICENSE_STATUS_SUSPENDED = "suspended"
	LICENSE_STATUS_PENDING   = "pending"
)

// Clinic represents one licensed clinic record
type Clinic struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UUID              string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	ClinicName        string         `gorm:"type:varchar(255);not null" json:"clinic_name" validate:"required,min=1,max=255"`
	LicenseNumber     string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"license_number" validate:"required,min=5,max=20"`
	DoctorName        string         `gorm:"type:varchar(255);default:null" json:"doctor_name" validate:"max=255"`
	Specialization    string         `gorm:"type:varchar(255);not null" json:"specialization" validate:"required,min=1,max=255"`
	LicenseStatus     string         `gorm:"type:varchar(20);default:'active';index" json:"license_status" validate:"oneof=active expired suspended pending"`
	IssueDate         *time.Time     `gorm:"type:date;default:null" json:"issue_date"`
	ExpiryDate        *time.Time     `gorm:"type:date;default:null" json:"expiry_date"`
	Phone             string         `gorm:"type:varchar(50);default:null" json:"phone" validate:"max=50"`
	Address           string         `gorm:"type:varchar(500);default:null" json:"address" validate:"max=500"`
	QRCode            string         `gorm:"type:text" json:"qr_code"`
	VerificationCount uint           `gorm:"default:0" json:"verification_count"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Clinic) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

// NormalizeLicenseNumber applies the canonical license form: trimmed and upper-cased.
func NormalizeLicenseNumber(license string) string {
	return strings.ToUpper(strings.TrimSpace(license))
}

// IsExpired reports whether the clinic's expiry date lies in the past.
func (c *Clinic) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}

func FindClinicByLicense(db *gorm.DB, license string) (*Clinic, error) {
	var clinic Clinic
	err := db.Where("license_number = ?", license).First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func FindClinicByUUID(db *gorm.DB, uuid string) (*Clinic, error) {
	var clinic Clinic
	err := db.Where("uuid = ?", uuid).First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}
