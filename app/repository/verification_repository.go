package repository

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/internal/pkg/counter"
)

// verificationRepository implements the VerificationRepository interface
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository instance
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

// Create inserts one audit row. When the attempt succeeded against a known
// clinic, the clinic's verification counter is also advanced here — counter
// maintenance belongs to the store layer, not to the verification engine.
// The counter is buffered in Redis and flushed in batches; if the buffer is
// unreachable the row is incremented directly as a fallback.
func (r *verificationRepository) Create(attempt *models.Verification) error {
	if err := attempt.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(attempt).Error; err != nil {
		return err
	}

	if attempt.Status == models.VERIFICATION_STATUS_SUCCESS && attempt.ClinicID != nil {
		if err := counter.AddVerificationHit(*attempt.ClinicID); err != nil {
			log.Printf("verification counter buffer unavailable, incrementing directly: %v", err)
			if err := r.db.Model(&models.Clinic{}).Where("id = ?", *attempt.ClinicID).
				Update("verification_count", gorm.Expr("verification_count + 1")).Error; err != nil {
				log.Printf("failed to increment verification count for clinic %d: %v", *attempt.ClinicID, err)
			}
		}
	}

	return nil
}

// Count returns the total number of recorded verification attempts
func (r *verificationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Verification{}).Count(&count).Error
	return count, err
}

// CountByStatus returns attempt counts grouped by classification
func (r *verificationRepository) CountByStatus() ([]models.StatusCount, error) {
	var counts []models.StatusCount
	err := r.statusBreakdown(r.db).Scan(&counts).Error
	return counts, err
}

func (r *verificationRepository) statusBreakdown(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.Verification{}).
		Select("status, COUNT(*) AS count").
		Group("status")
}

// GetRecent retrieves the latest verification attempts with their clinic preloaded
func (r *verificationRepository) GetRecent(limit int) ([]models.Verification, error) {
	var attempts []models.Verification
	err := r.db.Preload("Clinic").Order("created_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

// GetDailyStats returns per-day attempt counts between the given dates
func (r *verificationRepository) GetDailyStats(startDate, endDate time.Time) ([]models.DailyStats, error) {
	var stats []models.DailyStats
	err := r.db.Model(&models.Verification{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE_FORMAT(created_at, '%Y-%m-%d')").
		Order("date ASC").
		Scan(&stats).Error
	return stats, err
}

// GetRecentUserAgents returns the user agent strings of the latest attempts
func (r *verificationRepository) GetRecentUserAgents(limit int) ([]string, error) {
	var agents []string
	err := r.db.Model(&models.Verification{}).
		Where("user_agent != ''").
		Order("created_at DESC").
		Limit(limit).
		Pluck("user_agent", &agents).Error
	return agents, err
}
