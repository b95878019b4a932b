package bulk

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/jomedical/clinicverify/app/models"
	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/qrpayload"
	"github.com/jomedical/clinicverify/internal/pkg/verification"
)

// RowError describes why a single spreadsheet row was rejected
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes one bulk import run
type ImportResult struct {
	Total   int        `json:"total"`
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

// ImportXLSX reads an import workbook and creates one clinic per valid row.
// Rows are processed independently, a bad row never aborts the run.
func ImportXLSX(r io.Reader, clinics repository.ClinicRepository) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	colIndex, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	seen := make(map[string]int)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		if isEmptyRow(row) {
			continue
		}
		result.Total++

		clinic, perr := parseRow(row, colIndex)
		if perr != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: perr.Error()})
			continue
		}

		if prev, dup := seen[clinic.LicenseNumber]; dup {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("duplicate license %s, already used in row %d", clinic.LicenseNumber, prev)})
			continue
		}
		seen[clinic.LicenseNumber] = rowNum

		exists, eerr := clinics.LicenseExists(clinic.LicenseNumber)
		if eerr != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("lookup failed: %v", eerr)})
			continue
		}
		if exists {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("license %s already registered", clinic.LicenseNumber)})
			continue
		}

		if cerr := clinics.Create(clinic); cerr != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("insert failed: %v", cerr)})
			continue
		}

		// The QR payload embeds the database ID, so it is written after insert
		issued := time.Now()
		if clinic.IssueDate != nil {
			issued = *clinic.IssueDate
		}
		if payload, perr := qrpayload.Encode(clinic.LicenseNumber, strconv.FormatUint(uint64(clinic.ID), 10), issued); perr == nil {
			clinic.QRCode = payload
			if uerr := clinics.Update(clinic); uerr != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("qr payload not stored: %v", uerr)})
			}
		}

		result.Success++
	}

	return result, nil
}

func mapHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"clinic_name", "license_number", "specialization"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return idx, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, idx map[string]int) (*models.Clinic, error) {
	name := cellAt(row, idx, "clinic_name")
	if name == "" {
		return nil, fmt.Errorf("clinic_name is required")
	}
	spec := cellAt(row, idx, "specialization")
	if spec == "" {
		return nil, fmt.Errorf("specialization is required")
	}

	license := models.NormalizeLicenseNumber(cellAt(row, idx, "license_number"))
	if err := verification.ValidateLicense(license); err != nil {
		return nil, fmt.Errorf("invalid license number %q", license)
	}

	status := strings.ToLower(cellAt(row, idx, "license_status"))
	if status == "" {
		status = models.LICENSE_STATUS_ACTIVE
	}
	switch status {
	case models.LICENSE_STATUS_ACTIVE, models.LICENSE_STATUS_EXPIRED, models.LICENSE_STATUS_SUSPENDED, models.LICENSE_STATUS_PENDING:
	default:
		return nil, fmt.Errorf("unknown license_status %q", status)
	}

	issueDate, err := parseDate(cellAt(row, idx, "issue_date"))
	if err != nil {
		return nil, fmt.Errorf("bad issue_date: %v", err)
	}
	expiryDate, err := parseDate(cellAt(row, idx, "expiry_date"))
	if err != nil {
		return nil, fmt.Errorf("bad expiry_date: %v", err)
	}

	clinic := &models.Clinic{
		UUID:           uuid.New().String(),
		ClinicName:     name,
		LicenseNumber:  license,
		DoctorName:     cellAt(row, idx, "doctor_name"),
		Specialization: spec,
		LicenseStatus:  status,
		IssueDate:      issueDate,
		ExpiryDate:     expiryDate,
		Phone:          cellAt(row, idx, "phone"),
		Address:        cellAt(row, idx, "address"),
	}
	if err := clinic.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %v", err)
	}
	return clinic, nil
}

// parseDate accepts the template format plus the serial formats Excel
// tends to produce when a cell is typed as a date.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "01-02-06", "1/2/06", "01/02/2006", "2006/01/02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", value)
}
