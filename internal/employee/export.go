package employee

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"employee-portal/models"
)

const exportSheet = "Employees"

var exportHeader = []interface{}{"#", "Name", "Designation", "City", "Salary"}

// WriteWorkbook writes employees as a single-sheet xlsx workbook, one row per
// record in fetch order. Salaries that parse as numbers are stored as numbers.
func WriteWorkbook(w io.Writer, employees []models.Employee) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, e.Name, e.Title(""), e.City, salaryCell(e.Salary)}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func salaryCell(s models.Salary) interface{} {
	if s == "" {
		return ""
	}
	if v := s.Float(); fmt.Sprint(v) == s.String() {
		return v
	}
	return s.String()
}
