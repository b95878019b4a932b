package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Specialization is one entry of the clinic specialization catalogue.
// The Arabic name is the display name; the English name is optional.
type Specialization struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NameAr    string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name_ar" validate:"required,min=1,max=255"`
	NameEn    string    `gorm:"type:varchar(255);default:null" json:"name_en" validate:"max=255"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Specialization) Validate() error {
	return validator.New().Struct(s)
}

func GetActiveSpecializations(db *gorm.DB) ([]Specialization, error) {
	var specs []Specialization
	err := db.Where("is_active = ?", true).Order("sort_order ASC").Find(&specs).Error
	return specs, err
}
