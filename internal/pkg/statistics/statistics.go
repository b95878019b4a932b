package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/internal/pkg/cache"
	"github.com/jomedical/clinicverify/internal/pkg/database"
)

const (
	CacheKeyClinicsTotal       = "statistics:clinics:total"
	CacheKeyClinicsActive      = "statistics:clinics:active"
	CacheKeyVerificationsTotal = "statistics:verifications:total"
	CacheKeyVerificationsDaily = "statistics:verifications:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration            = 30 * time.Minute
)

// StatisticsData holds the portal counters shown on the public start page
type StatisticsData struct {
	TotalClinics       int
	ActiveClinics      int
	TotalVerifications int
	TodayVerifications int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when the interval elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded call to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts all portal statistics and stores them in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalClinics int64
	if err := db.Model(&models.Clinic{}).Count(&totalClinics).Error; err != nil {
		log.Printf("Error counting clinics: %v", err)
		return err
	}

	var activeClinics int64
	if err := db.Model(&models.Clinic{}).Where("license_status = ?", models.LICENSE_STATUS_ACTIVE).Count(&activeClinics).Error; err != nil {
		log.Printf("Error counting active clinics: %v", err)
		return err
	}

	var totalVerifications int64
	if err := db.Model(&models.Verification{}).Count(&totalVerifications).Error; err != nil {
		log.Printf("Error counting verifications: %v", err)
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	var todayVerifications int64
	if err := db.Model(&models.Verification{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayVerifications).Error; err != nil {
		log.Printf("Error counting today's verifications: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyClinicsTotal, strconv.FormatInt(totalClinics, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyClinicsActive, strconv.FormatInt(activeClinics, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyVerificationsTotal, strconv.FormatInt(totalVerifications, 10), CacheExpiration); err != nil {
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyVerificationsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayVerifications, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatistics returns the portal counters, refreshing the cache when needed
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	if _, err := cache.Get(CacheKeyClinicsTotal); err != nil {
		// Cache miss, rebuild synchronously so the first page view has numbers
		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error rebuilding statistics cache: %v", err)
		}
	}

	return StatisticsData{
		TotalClinics:       cachedInt(CacheKeyClinicsTotal),
		ActiveClinics:      cachedInt(CacheKeyClinicsActive),
		TotalVerifications: cachedInt(CacheKeyVerificationsTotal),
		TodayVerifications: cachedInt(fmt.Sprintf(CacheKeyVerificationsDaily, time.Now().Format("2006-01-02"))),
	}
}

func cachedInt(key string) int {
	val, err := cache.Get(key)
	if err != nil {
		return 0
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}
