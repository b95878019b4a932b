// Package expiry flips active clinics whose expiry date has passed to the
// expired status. The sweep runs at startup, once per day after that, and
// can be triggered from the admin area.
package expiry

import (
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/jomedical/clinicverify/app/repository"
)

const sweepInterval = 24 * time.Hour

// Sweep marks all overdue active clinics as expired and returns the count
func Sweep(clinics repository.ClinicRepository) (int64, error) {
	updated, err := clinics.MarkExpired(time.Now())
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		log.Infof("[Expiry] Marked %d clinics as expired", updated)
	}
	return updated, nil
}

// StartSweeper runs Sweep immediately and then once per interval until
// the stop channel closes.
func StartSweeper(clinics repository.ClinicRepository, stop <-chan struct{}) {
	go func() {
		if _, err := Sweep(clinics); err != nil {
			log.Errorf("[Expiry] Sweep failed: %v", err)
		}

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := Sweep(clinics); err != nil {
					log.Errorf("[Expiry] Sweep failed: %v", err)
				}
			case <-stop:
				return
			}
		}
	}()
}
