package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	VERIFICATION_METHOD_QR     = "qr_scan"
	VERIFICATION_METHOD_MANUAL = "manual_entry"
	VERIFICATION_METHOD_IMAGE  = "image_upload"

	VERIFICATION_STATUS_SUCCESS   = "success"
	VERIFICATION_STATUS_NOT_FOUND = "not_found"
	VERIFICATION_STATUS_FAILED    = "failed"
)

// Verification is an immutable audit record of one verification attempt.
// Rows are only ever inserted; nothing in the portal updates or deletes them.
type Verification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClinicID      *uint     `gorm:"index;default:null" json:"clinic_id"`
	Clinic        *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(20);not null;index" json:"license_number" validate:"required,max=20"`
	Method        string    `gorm:"type:varchar(20);not null" json:"verification_method" validate:"oneof=qr_scan manual_entry image_upload"`
	Status        string    `gorm:"type:varchar(20);not null;index" json:"verification_status" validate:"oneof=success not_found failed"`
	UserAgent     string    `gorm:"type:varchar(500);default:null" json:"user_agent"`
	IPAddress     string    `gorm:"type:varchar(45);default:null" json:"ip_address"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the Verification model
func (Verification) TableName() string {
	return "verifications"
}

func (v *Verification) Validate() error {
	return validator.New().Struct(v)
}
