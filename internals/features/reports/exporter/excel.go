// Package exporter renders a school report as an xlsx workbook, laid out
// right-to-left the way the printed Arabic report reads.
package exporter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"madaris_backend/internals/features/reports/dto"
)

const (
	sheetName   = "التقرير"
	bannerLine1 = "وكالة الغوث الدولية - برنامج التربية والتعليم"
	bannerLine2 = "مركز التطوير التربوي - وحدة التقويم"
)

// Filename names the download with the export date.
func Filename(now time.Time) string {
	return fmt.Sprintf("School_Report_%s.xlsx", now.Format("2006-01-02"))
}

// SchoolReportWorkbook lays the report out on one RTL sheet: two banner
// lines, the school identity, then one titled block per section.
func SchoolReportWorkbook(report dto.SchoolReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	rtl := true
	if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, err
	}

	bannerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	width := widestSection(report)

	row := 1
	for _, banner := range []string{bannerLine1, bannerLine2} {
		if err := writeMerged(f, row, width, banner, bannerStyle); err != nil {
			return nil, err
		}
		row++
	}
	row++ // spacer under the banners

	title := fmt.Sprintf("تقرير المدرسة: %s (%s)", report.SchoolName, report.NationalID)
	if err := writeMerged(f, row, width, title, bannerStyle); err != nil {
		return nil, err
	}
	row += 2

	for _, section := range report.Sections {
		if err := writeMerged(f, row, width, section.Title, headerStyle); err != nil {
			return nil, err
		}
		row++

		for i, h := range section.Headers {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, h); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
				return nil, err
			}
		}
		row++

		for _, dataRow := range section.Rows {
			for i, v := range dataRow {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
		row++ // spacer between sections
	}

	return f, nil
}

func widestSection(report dto.SchoolReport) int {
	width := 1
	for _, s := range report.Sections {
		if len(s.Headers) > width {
			width = len(s.Headers)
		}
	}
	return width
}

func writeMerged(f *excelize.File, row, width int, value string, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	if width > 1 {
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return err
		}
	}
	if err := f.SetCellValue(sheetName, start, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, start, end, style)
}
