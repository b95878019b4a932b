package bulk

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jomedical/clinicverify/app/models"
)

type fakeClinicRepo struct {
	created  []*models.Clinic
	existing map[string]bool
	nextID   uint
}

func newFakeClinicRepo() *fakeClinicRepo {
	return &fakeClinicRepo{existing: make(map[string]bool), nextID: 1}
}

func (f *fakeClinicRepo) Create(c *models.Clinic) error {
	c.ID = f.nextID
	f.nextID++
	f.existing[c.LicenseNumber] = true
	f.created = append(f.created, c)
	return nil
}

func (f *fakeClinicRepo) LicenseExists(license string) (bool, error) {
	return f.existing[license], nil
}

func (f *fakeClinicRepo) Update(c *models.Clinic) error { return nil }

func (f *fakeClinicRepo) GetByID(uint) (*models.Clinic, error)         { return nil, errors.New("not implemented") }
func (f *fakeClinicRepo) GetByUUID(string) (*models.Clinic, error)     { return nil, errors.New("not implemented") }
func (f *fakeClinicRepo) GetByLicense(string) (*models.Clinic, error)  { return nil, errors.New("not implemented") }
func (f *fakeClinicRepo) LicenseExistsExceptID(string, uint) (bool, error) {
	return false, nil
}
func (f *fakeClinicRepo) Delete(uint) error                  { return nil }
func (f *fakeClinicRepo) DeleteAll() (int64, error)          { return 0, nil }
func (f *fakeClinicRepo) List(int, int) ([]models.Clinic, error) { return nil, nil }
func (f *fakeClinicRepo) GetAll() ([]models.Clinic, error)   { return nil, nil }
func (f *fakeClinicRepo) Count() (int64, error)              { return int64(len(f.created)), nil }
func (f *fakeClinicRepo) Search(string, string) ([]models.Clinic, error) { return nil, nil }
func (f *fakeClinicRepo) CountByStatus() ([]models.StatusCount, error)   { return nil, nil }
func (f *fakeClinicRepo) CountBySpecialization() ([]models.NameCount, error) {
	return nil, nil
}
func (f *fakeClinicRepo) GetExpiringBetween(time.Time, time.Time) ([]models.Clinic, error) {
	return nil, nil
}
func (f *fakeClinicRepo) MarkExpired(time.Time) (int64, error)          { return 0, nil }
func (f *fakeClinicRepo) IncrementVerificationCount(uint, int64) error  { return nil }

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportXLSXCreatesClinics(t *testing.T) {
	repo := newFakeClinicRepo()
	buf := buildWorkbook(t, [][]string{
		ImportColumns,
		{"Al Noor Dental", "dl-2024-001", "Dr. Sara", "Dentistry", "active", "2024-01-15", "2026-01-15", "0501234567", "Riyadh"},
		{"Shifa Clinic", "DL-2024-002", "", "Pediatrics", "", "", "", "", ""},
	})

	result, err := ImportXLSX(buf, repo)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, repo.created, 2)

	first := repo.created[0]
	assert.Equal(t, "DL-2024-001", first.LicenseNumber, "license should be normalized to upper case")
	assert.NotEmpty(t, first.UUID)
	assert.Contains(t, first.QRCode, `"type":"clinic"`)
	require.NotNil(t, first.IssueDate)
	assert.Equal(t, 2024, first.IssueDate.Year())

	second := repo.created[1]
	assert.Equal(t, models.LICENSE_STATUS_ACTIVE, second.LicenseStatus, "status defaults to active")
	assert.Nil(t, second.IssueDate)
}

func TestImportXLSXRejectsBadRows(t *testing.T) {
	repo := newFakeClinicRepo()
	repo.existing["DL-EXISTING-01"] = true

	buf := buildWorkbook(t, [][]string{
		ImportColumns,
		{"No License", "", "", "Dentistry", "", "", "", "", ""},
		{"Bad License", "ab!", "", "Dentistry", "", "", "", "", ""},
		{"Already There", "DL-EXISTING-01", "", "Dentistry", "", "", "", "", ""},
		{"First Copy", "DL-2024-100", "", "Dentistry", "", "", "", "", ""},
		{"Second Copy", "DL-2024-100", "", "Dentistry", "", "", "", "", ""},
		{"Bad Status", "DL-2024-101", "", "Dentistry", "approved", "", "", "", ""},
		{"Bad Date", "DL-2024-102", "", "Dentistry", "", "soon", "", "", ""},
	})

	result, err := ImportXLSX(buf, repo)
	require.NoError(t, err)

	assert.Equal(t, 7, result.Total)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 6, result.Failed)
	assert.Len(t, result.Errors, 6)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "DL-2024-100", repo.created[0].LicenseNumber)
}

func TestImportXLSXSkipsEmptyRows(t *testing.T) {
	repo := newFakeClinicRepo()
	buf := buildWorkbook(t, [][]string{
		ImportColumns,
		{"", "", "", "", "", "", "", "", ""},
		{"Real Clinic", "DL-2024-200", "", "Dentistry", "", "", "", "", ""},
	})

	result, err := ImportXLSX(buf, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Success)
}

func TestImportXLSXMissingColumn(t *testing.T) {
	repo := newFakeClinicRepo()
	buf := buildWorkbook(t, [][]string{
		{"clinic_name", "doctor_name"},
		{"Clinic", "Doctor"},
	})

	_, err := ImportXLSX(buf, repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "license_number")
}

func TestBuildTemplateRoundTrips(t *testing.T) {
	f, err := BuildTemplate()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	repo := newFakeClinicRepo()
	result, err := ImportXLSX(&buf, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total, "template example row should import cleanly")
	assert.Equal(t, 1, result.Success)
}

func TestExportCSV(t *testing.T) {
	issue := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	clinics := []models.Clinic{
		{
			ClinicName:        "Al Noor Dental",
			LicenseNumber:     "DL-2024-001",
			Specialization:    "Dentistry",
			LicenseStatus:     models.LICENSE_STATUS_ACTIVE,
			IssueDate:         &issue,
			VerificationCount: 7,
			CreatedAt:         time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, clinics))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "CSV must start with a UTF-8 BOM")

	body := string(out[3:])
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(ExportColumns, ","), strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "DL-2024-001")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[1], fmt.Sprintf(",%d,", 7))
}
