package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	wagedomain "shiftboard-go/internal/domain/wage"
)

const (
	SalarySheet = "Salary"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var salaryHeader = []interface{}{"Employee code", "Name", "Shifts", "Hours", "Estimated salary"}

// WriteSalaryXLSX renders one row per employee followed by a totals row.
func WriteSalaryXLSX(w io.Writer, groupName string, report *wagedomain.GroupReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SalarySheet); err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s", groupName, report.Month)
	if err := f.SetCellValue(SalarySheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(SalarySheet, "A2", &salaryHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SalarySheet, "A1", "E2", bold); err != nil {
		return err
	}

	var shifts int
	var hours, salary float64
	row := 3
	for _, item := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{item.EmployeeCode, item.Name, item.ShiftCount, item.TotalHours, item.TotalSalary}
		if err := f.SetSheetRow(SalarySheet, cell, &values); err != nil {
			return err
		}
		shifts += item.ShiftCount
		hours += item.TotalHours
		salary += item.TotalSalary
		row++
	}

	totalCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	totals := []interface{}{"Total", "", shifts, roundHours(hours), salary}
	if err := f.SetSheetRow(SalarySheet, totalCell, &totals); err != nil {
		return err
	}
	endCell, err := excelize.CoordinatesToCellName(len(totals), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SalarySheet, totalCell, endCell, bold); err != nil {
		return err
	}

	if err := f.SetColWidth(SalarySheet, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SalarySheet, "C", "E", 14); err != nil {
		return err
	}

	return f.Write(w)
}

// FileName is the attachment name for a group's monthly report.
func FileName(groupCode, month string) string {
	return fmt.Sprintf("salary_%s_%s.xlsx", groupCode, month)
}

func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
