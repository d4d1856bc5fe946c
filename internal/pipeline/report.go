package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"empreport/internal/model"
	"empreport/pkg/utils"

	"github.com/xuri/excelize/v2"
)

const separatorWidth = 40

// RenderText renders the human-readable report: one block per
// department, a fixed-width rule before and after each block, currency
// always with two decimals.
func RenderText(summary model.Summary) string {
	rule := strings.Repeat("-", separatorWidth)

	var b strings.Builder
	for _, dept := range summary.Departments {
		agg := summary.Groups[dept]
		fmt.Fprintln(&b, rule)
		fmt.Fprintf(&b, "Department: %s\n", dept)
		fmt.Fprintf(&b, "Average Salary: %.2f\n", agg.AverageSalary)
		fmt.Fprintf(&b, "Total Salary: %.2f\n", float64(agg.TotalSalary))
		fmt.Fprintf(&b, "Highest Salary: %.2f\n", float64(agg.HighestSalary))
		fmt.Fprintf(&b, "Lowest Salary: %.2f\n", float64(agg.LowestSalary))
		fmt.Fprintln(&b, rule)
	}
	return b.String()
}

// WriteReport writes the summary to path in the requested format. Any
// failure is returned to the caller; the run is expected to log it and
// finish without the file artifact.
func WriteReport(path string, format model.Format, summary model.Summary) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	switch format {
	case model.FormatJSON:
		return writeJSON(path, summary)
	case model.FormatCSV:
		return writeCSV(path, summary)
	case model.FormatExcel:
		return writeExcel(path, summary)
	default:
		return writeText(path, summary)
	}
}

func writeText(path string, summary model.Summary) error {
	if err := os.WriteFile(path, []byte(RenderText(summary)), 0644); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func writeJSON(path string, summary model.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

func writeCSV(path string, summary model.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"department", "average_salary", "total_salary", "highest_salary", "lowest_salary"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, dept := range summary.Departments {
		agg := summary.Groups[dept]
		row := []string{
			dept,
			strconv.FormatFloat(agg.AverageSalary, 'f', 2, 64),
			strconv.Itoa(agg.TotalSalary),
			strconv.Itoa(agg.HighestSalary),
			strconv.Itoa(agg.LowestSalary),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return nil
}

const excelSheet = "Summary"

func writeExcel(path string, summary model.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}

	headers := []string{"Department", "Average Salary", "Total Salary", "Highest Salary", "Lowest Salary"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(excelSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write workbook header: %w", err)
		}
	}

	for row, dept := range summary.Departments {
		agg := summary.Groups[dept]
		values := []interface{}{dept, agg.AverageSalary, agg.TotalSalary, agg.HighestSalary, agg.LowestSalary}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write workbook row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}
	return nil
}
