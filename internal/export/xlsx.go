package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fieldsift/fieldsift/internal/model"
)

const (
	dataSheet    = "Extracted Data"
	summarySheet = "Extraction Summary"
)

// WriteXLSX writes the records to a workbook with a data sheet and a
// summary sheet. The data sheet gets a styled, frozen header row and
// column widths sized to the content.
func WriteXLSX(path string, records []model.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", dataSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := []string{"Document", "Rule", "Value", "Found", "Confidence", "Method", "Alternative"}
	widths := make([]int, len(headers))
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(dataSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		widths[col] = len(h)
	}
	if err := f.SetCellStyle(dataSheet, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.DocumentID,
			r.RuleName,
			r.Value,
			r.Found,
			r.Confidence,
			string(r.Method),
			r.MatchedAlternative,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			if s, ok := v.(string); ok && len(s) > widths[col] {
				widths[col] = len(s)
			}
		}
	}

	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		width := float64(w + 2)
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(dataSheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SetPanes(dataSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := writeSummarySheet(f, records); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, records []model.Record) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	s := Summarize(records)
	rows := [][]interface{}{
		{"Extraction Summary", ""},
		{"", ""},
		{"Total Extractions", s.TotalRecords},
		{"Successful", s.Found},
		{"Failed", s.NotFound},
		{"Success Rate", fmt.Sprintf("%.1f%%", s.SuccessRate)},
		{"", ""},
		{"Documents", s.Documents},
		{"Rules", s.Rules},
		{"", ""},
		{"Generated On", time.Now().Format("2006-01-02 15:04:05")},
		{"", ""},
		{"Rule", "Found / Attempts"},
	}
	for _, rs := range s.PerRule {
		rows = append(rows, []interface{}{
			rs.RuleName,
			fmt.Sprintf("%d / %d", rs.Found, rs.Attempts),
		})
	}

	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("style title: %w", err)
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set summary width: %w", err)
	}
	return f.SetColWidth(summarySheet, "B", "B", 20)
}
