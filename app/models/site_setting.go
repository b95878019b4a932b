package models

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SiteSetting represents one stored key/value site text setting
type SiteSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value       string    `gorm:"type:text" json:"value"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AppSettings represents the portal settings structure
type AppSettings struct {
	SiteTitle       string `json:"site_title" validate:"required,min=1,max=255"`
	SiteDescription string `json:"site_description" validate:"max=500"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone    string `json:"contact_phone" validate:"max=50"`
	ScanPageEnabled bool   `json:"scan_page_enabled"`
	mu              sync.RWMutex
}

// Global settings instance
var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// GetAppSettings returns the current portal settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if appSettings == nil {
		return &AppSettings{
			SiteTitle:       "Clinic License Portal",
			ScanPageEnabled: true,
		}
	}
	return appSettings
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	appSettings = &AppSettings{
		SiteTitle:       "Clinic License Portal",
		SiteDescription: "Verify dental and medical clinic licenses",
		ScanPageEnabled: true,
	}

	var settings []SiteSetting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			appSettings.SiteTitle = setting.Value
		case "site_description":
			appSettings.SiteDescription = setting.Value
		case "contact_email":
			appSettings.ContactEmail = setting.Value
		case "contact_phone":
			appSettings.ContactPhone = setting.Value
		case "scan_page_enabled":
			appSettings.ScanPageEnabled = setting.Value == "true"
		}
	}

	return nil
}

// SaveSettings saves current settings to database
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settingsMap := map[string]string{
		"site_title":        settings.SiteTitle,
		"site_description":  settings.SiteDescription,
		"contact_email":     settings.ContactEmail,
		"contact_phone":     settings.ContactPhone,
		"scan_page_enabled": fmt.Sprintf("%t", settings.ScanPageEnabled),
	}

	for key, value := range settingsMap {
		var setting SiteSetting
		result := db.Where("setting_key = ?", key).First(&setting)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				setting = SiteSetting{
					Key:   key,
					Value: value,
				}
				if err := db.Create(&setting).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
			} else {
				return fmt.Errorf("failed to query setting %s: %w", key, result.Error)
			}
		} else {
			setting.Value = value
			if err := db.Save(&setting).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
	}

	appSettings = settings
	return nil
}

// Validate validates the settings
func (s *AppSettings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// ToJSON converts settings to JSON
func (s *AppSettings) ToJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s)
}

// GetSiteTitle returns the site title
func (s *AppSettings) GetSiteTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SiteTitle
}

// GetSiteDescription returns the site description
func (s *AppSettings) GetSiteDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SiteDescription
}

// IsScanPageEnabled returns whether the public scan page is enabled
func (s *AppSettings) IsScanPageEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ScanPageEnabled
}
