package verification

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jomedical/clinicverify/app/models"
)

type fakeStore struct {
	clinics map[string]*models.Clinic
	err     error
	lookups int
}

func (f *fakeStore) GetByLicense(license string) (*models.Clinic, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if clinic, ok := f.clinics[license]; ok {
		return clinic, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAudit struct {
	attempts []*models.Verification
	err      error
}

func (f *fakeAudit) Record(attempt *models.Verification) error {
	f.attempts = append(f.attempts, attempt)
	return f.err
}

func activeClinic() *models.Clinic {
	issued := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	return &models.Clinic{
		ID:             42,
		UUID:           "4bb4a744-7e3c-4a3f-9b43-25b0b307e364",
		ClinicName:     "عيادة النور لطب الأسنان",
		LicenseNumber:  "JOR-DEN-001",
		Specialization: "طب الأسنان العام",
		LicenseStatus:  models.LICENSE_STATUS_ACTIVE,
		IssueDate:      &issued,
	}
}

func newTestEngine(clinics ...*models.Clinic) (*Engine, *fakeStore, *fakeAudit) {
	store := &fakeStore{clinics: map[string]*models.Clinic{}}
	for _, c := range clinics {
		store.clinics[c.LicenseNumber] = c
	}
	audit := &fakeAudit{}
	return NewEngine(store, audit), store, audit
}

func TestVerifyManualEntrySuccess(t *testing.T) {
	t.Parallel()

	engine, _, audit := newTestEngine(activeClinic())

	// lowercase input is normalized before lookup
	result, err := engine.Verify("jor-den-001", models.VERIFICATION_METHOD_MANUAL, RequestMeta{UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "JOR-DEN-001", result.LicenseNumber)
	require.NotNil(t, result.Clinic)
	assert.Equal(t, models.LICENSE_STATUS_ACTIVE, result.Clinic.LicenseStatus)

	require.Len(t, audit.attempts, 1)
	attempt := audit.attempts[0]
	assert.Equal(t, "JOR-DEN-001", attempt.LicenseNumber)
	assert.Equal(t, models.VERIFICATION_METHOD_MANUAL, attempt.Method)
	assert.Equal(t, StatusSuccess, attempt.Status)
	require.NotNil(t, attempt.ClinicID)
	assert.Equal(t, uint(42), *attempt.ClinicID)
	assert.Equal(t, "Mozilla/5.0", attempt.UserAgent)
}

func TestVerifyNotFound(t *testing.T) {
	t.Parallel()

	engine, _, audit := newTestEngine()

	result, err := engine.Verify("JOR-DEN-999", models.VERIFICATION_METHOD_QR, RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, StatusNotFound, result.Status)
	assert.Equal(t, "JOR-DEN-999", result.LicenseNumber)
	assert.Nil(t, result.Clinic)

	require.Len(t, audit.attempts, 1)
	assert.Equal(t, StatusNotFound, audit.attempts[0].Status)
	assert.Nil(t, audit.attempts[0].ClinicID)
}

func TestVerifyTooShortSkipsLookup(t *testing.T) {
	t.Parallel()

	engine, store, audit := newTestEngine()

	result, err := engine.Verify("AB", models.VERIFICATION_METHOD_MANUAL, RequestMeta{})
	require.ErrorIs(t, err, ErrInvalidLicense)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Nil(t, result.Clinic)
	assert.Zero(t, store.lookups, "no lookup for malformed input")

	// a failed-validation attempt is still worth one audit row
	require.Len(t, audit.attempts, 1)
	assert.Equal(t, StatusFailed, audit.attempts[0].Status)
}

func TestVerifyDisallowedCharacters(t *testing.T) {
	t.Parallel()

	engine, store, _ := newTestEngine()

	for _, input := range []string{"JOR@DEN-1", "JOR DEN 001", "JOR_DEN_1"} {
		_, err := engine.Verify(input, models.VERIFICATION_METHOD_MANUAL, RequestMeta{})
		assert.ErrorIs(t, err, ErrInvalidLicense, "input %q", input)
	}
	assert.Zero(t, store.lookups)
}

func TestVerifyQRStructuredPayload(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(activeClinic())

	text := `{"type":"clinic","license":"JOR-DEN-001","id":"abc123","issued":"2024-01-01"}`
	result, err := engine.Verify(text, models.VERIFICATION_METHOD_QR, RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "JOR-DEN-001", result.LicenseNumber)
}

func TestVerifyImageUploadStructuredPayload(t *testing.T) {
	t.Parallel()

	engine, store, audit := newTestEngine(activeClinic())

	// uploaded photos of portal-issued codes decode to the same payload text
	// as camera scans
	text := `{"type":"clinic","license":"JOR-DEN-001","id":"42","issued":"2023-01-15"}`
	result, err := engine.Verify(text, models.VERIFICATION_METHOD_IMAGE, RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "JOR-DEN-001", result.LicenseNumber)
	assert.Equal(t, 1, store.lookups)

	require.Len(t, audit.attempts, 1)
	assert.Equal(t, models.VERIFICATION_METHOD_IMAGE, audit.attempts[0].Method)
	assert.Equal(t, "JOR-DEN-001", audit.attempts[0].LicenseNumber)
}

func TestVerifyImageUploadLegacyPayload(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(activeClinic())

	result, err := engine.Verify("jor-den-001", models.VERIFICATION_METHOD_IMAGE, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "JOR-DEN-001", result.LicenseNumber)
}

func TestVerifyQRLegacyPayload(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(activeClinic())

	result, err := engine.Verify("JOR-DEN-001", models.VERIFICATION_METHOD_QR, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
}

func TestVerifyQRMalformedEmbeddedLicense(t *testing.T) {
	t.Parallel()

	engine, store, _ := newTestEngine()

	// the embedded license goes through the same validation gate as typed input
	text := `{"type":"clinic","license":"a!","id":"x","issued":"2024-01-01"}`
	_, err := engine.Verify(text, models.VERIFICATION_METHOD_QR, RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidLicense)
	assert.Zero(t, store.lookups)
}

func TestVerifyStoreErrorClassifiesFailed(t *testing.T) {
	t.Parallel()

	engine, store, audit := newTestEngine()
	store.err = errors.New("connection refused")

	result, err := engine.Verify("JOR-DEN-001", models.VERIFICATION_METHOD_MANUAL, RequestMeta{})
	require.NoError(t, err, "store failures are a classification, not an error")

	assert.Equal(t, StatusFailed, result.Status)
	assert.Nil(t, result.Clinic)
	require.Len(t, audit.attempts, 1)
	assert.Equal(t, StatusFailed, audit.attempts[0].Status)
}

func TestVerifyAuditFailureDoesNotBlockResult(t *testing.T) {
	t.Parallel()

	engine, _, audit := newTestEngine(activeClinic())
	audit.err = errors.New("insert failed")

	result, err := engine.Verify("JOR-DEN-001", models.VERIFICATION_METHOD_MANUAL, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
}

func TestVerifyAuditOnEveryPath(t *testing.T) {
	t.Parallel()

	engine, _, audit := newTestEngine(activeClinic())

	inputs := []string{"JOR-DEN-001", "JOR-DEN-999", "x"}
	for _, input := range inputs {
		engine.Verify(input, models.VERIFICATION_METHOD_MANUAL, RequestMeta{})
	}
	assert.Len(t, audit.attempts, len(inputs))
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{" jor-den-001 ", "JOR-DEN-001", "\tabc-123\n", ""}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abcdef", truncate("abcdef", 10))

	// Arabic runes are two bytes; a byte-offset cut would split the second rune
	s := "عيادة"
	cut := truncate(s, 3)
	assert.Equal(t, "ع", cut)
	assert.True(t, utf8.ValidString(cut))

	long := strings.Repeat("ع", 300) // 600 bytes
	cut = truncate(long, 501)
	assert.LessOrEqual(t, len(cut), 501)
	assert.True(t, utf8.ValidString(cut))
}

func TestValidateLicenseBoundaries(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateLicense("ABCD"))                      // 4: too short
	assert.NoError(t, ValidateLicense("ABCDE"))                   // 5: minimum
	assert.NoError(t, ValidateLicense("ABCDEFGHIJ1234567890"))    // 20: maximum
	assert.Error(t, ValidateLicense("ABCDEFGHIJ1234567890X"))     // 21: too long
	assert.NoError(t, ValidateLicense("JOR-DEN-001"))             // hyphens allowed
	assert.Error(t, ValidateLicense("jor-den-001"))               // lowercase rejected post-normalization
	assert.Error(t, ValidateLicense("JOR@DEN-001"))               // symbol rejected
}
