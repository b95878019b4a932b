// Package verification is the single authoritative path from a raw input
// string, however it was captured, to a classified and audited verification
// outcome. Camera scans, image uploads and manual entry all go through the
// same normalization and validation gate.
package verification

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/internal/pkg/qrpayload"
)

const (
	StatusSuccess  = models.VERIFICATION_STATUS_SUCCESS
	StatusNotFound = models.VERIFICATION_STATUS_NOT_FOUND
	StatusFailed   = models.VERIFICATION_STATUS_FAILED

	// license numbers are 5-20 characters of uppercase letters, digits and hyphens
	licenseMinLen = 5
	licenseMaxLen = 20
)

var licensePattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// ErrInvalidLicense is returned by Verify when the normalized input does not
// have the shape of a license number. It is the only error Verify returns;
// store failures are absorbed into the failed classification instead.
var ErrInvalidLicense = errors.New("invalid license number")

// Store looks up a clinic by its exact normalized license number.
// A missing record is reported as gorm.ErrRecordNotFound.
type Store interface {
	GetByLicense(license string) (*models.Clinic, error)
}

// AuditLog records one verification attempt. Implementations own any
// bookkeeping tied to the attempt, such as the clinic verification counter.
type AuditLog interface {
	Record(attempt *models.Verification) error
}

// RequestMeta carries optional client metadata captured with the attempt.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// Result is the terminal state of one verification pass.
type Result struct {
	Clinic        *models.Clinic `json:"clinic"`
	Status        string         `json:"status"`
	LicenseNumber string         `json:"license_number"`
}

// Engine runs the per-invocation verification state machine.
type Engine struct {
	store Store
	audit AuditLog
}

func NewEngine(store Store, audit AuditLog) *Engine {
	return &Engine{store: store, audit: audit}
}

// Normalize applies the canonical license form: trim then upper-case.
func Normalize(raw string) string {
	return models.NormalizeLicenseNumber(raw)
}

// ValidateLicense checks the normalized license shape: 5-20 characters,
// uppercase letters, digits and hyphens only.
func ValidateLicense(license string) error {
	if len(license) < licenseMinLen || len(license) > licenseMaxLen {
		return fmt.Errorf("%w: length %d outside %d-%d", ErrInvalidLicense, len(license), licenseMinLen, licenseMaxLen)
	}
	if !licensePattern.MatchString(license) {
		return fmt.Errorf("%w: contains characters outside A-Z, 0-9 and hyphen", ErrInvalidLicense)
	}
	return nil
}

// Verify runs one verification attempt through the full pipeline:
// decode (QR-sourced channels), normalize, validate, look up, classify, audit.
//
// The returned error is non-nil only for validation failures and wraps
// ErrInvalidLicense; the Result still carries the failed classification so
// callers have a single rendering path. Lookup errors never propagate, they
// classify the attempt as failed. Exactly one audit row is written per call
// regardless of outcome; audit failures are logged and never surfaced.
func (e *Engine) Verify(rawInput, method string, meta RequestMeta) (Result, error) {
	input := rawInput
	if method == models.VERIFICATION_METHOD_QR || method == models.VERIFICATION_METHOD_IMAGE {
		// both QR-sourced channels carry the encoded payload text; its
		// license field goes through the same gate as manually typed input
		input = qrpayload.DecodeLicense(input)
	}

	license := Normalize(input)

	if err := ValidateLicense(license); err != nil {
		// no lookup for malformed input, but the attempt is still audited
		e.recordAttempt(nil, license, method, StatusFailed, meta)
		return Result{Clinic: nil, Status: StatusFailed, LicenseNumber: license}, err
	}

	clinic, err := e.store.GetByLicense(license)
	status := StatusSuccess
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		clinic = nil
		status = StatusNotFound
	default:
		log.Printf("verification lookup failed for %s: %v", license, err)
		clinic = nil
		status = StatusFailed
	}

	e.recordAttempt(clinic, license, method, status, meta)

	return Result{Clinic: clinic, Status: status, LicenseNumber: license}, nil
}

func (e *Engine) recordAttempt(clinic *models.Clinic, license, method, status string, meta RequestMeta) {
	attempt := &models.Verification{
		LicenseNumber: truncate(license, licenseMaxLen),
		Method:        method,
		Status:        status,
		UserAgent:     truncate(meta.UserAgent, 500),
		IPAddress:     meta.IPAddress,
	}
	if clinic != nil {
		id := clinic.ID
		attempt.ClinicID = &id
	}

	// best effort: losing an audit row must not block the result
	if err := e.audit.Record(attempt); err != nil {
		log.Printf("failed to record verification attempt for %s: %v", license, err)
	}
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
