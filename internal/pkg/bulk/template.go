package bulk

import (
	"github.com/xuri/excelize/v2"
)

const importSheet = "Clinics"

// ImportColumns is the fixed column order for the XLSX import sheet.
var ImportColumns = []string{
	"clinic_name",
	"license_number",
	"doctor_name",
	"specialization",
	"license_status",
	"issue_date",
	"expiry_date",
	"phone",
	"address",
}

// BuildTemplate creates an empty import workbook with the header row and
// one example row so staff can see the expected formats.
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(importSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, col := range ImportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(importSheet, cell, col); err != nil {
			return nil, err
		}
	}

	example := []string{
		"Al Noor Dental Clinic",
		"DL-2024-00123",
		"Dr. Sara Ahmed",
		"Dentistry",
		"active",
		"2024-01-15",
		"2026-01-15",
		"+966-11-4567890",
		"King Fahd Road, Riyadh",
	}
	for i, val := range example {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(importSheet, cell, val); err != nil {
			return nil, err
		}
	}

	// Widen the columns a bit for readability
	if err := f.SetColWidth(importSheet, "A", "I", 22); err != nil {
		return nil, err
	}

	return f, nil
}
