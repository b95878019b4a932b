package bulk

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jomedical/clinicverify/app/models"
)

// utf8BOM makes Excel open the CSV with the right encoding for Arabic text
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportColumns is the fixed column order of the CSV export.
var ExportColumns = []string{
	"clinic_name",
	"license_number",
	"doctor_name",
	"specialization",
	"license_status",
	"issue_date",
	"expiry_date",
	"phone",
	"address",
	"verification_count",
	"created_at",
}

// ExportCSV writes all given clinics as a UTF-8 CSV with BOM
func ExportCSV(w io.Writer, clinics []models.Clinic) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}

	for i := range clinics {
		c := &clinics[i]
		record := []string{
			c.ClinicName,
			c.LicenseNumber,
			c.DoctorName,
			c.Specialization,
			c.LicenseStatus,
			formatDate(c.IssueDate),
			formatDate(c.ExpiryDate),
			c.Phone,
			c.Address,
			strconv.FormatUint(uint64(c.VerificationCount), 10),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
