package exporter

import (
	"testing"
	"time"

	"madaris_backend/internals/features/reports/dto"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if got := Filename(now); got != "School_Report_2026-08-31.xlsx" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestSchoolReportWorkbook(t *testing.T) {
	report := dto.SchoolReport{
		SchoolName: "مدرسة الزرقاء",
		NationalID: "111001",
		Sections: []dto.ReportSection{
			{
				Title:   "PISA",
				Headers: []string{"السنة", "المبحث", "العلامة"},
				Rows: [][]interface{}{
					{2022, "العلوم", 430.5},
					{2022, "القرائية", nil},
				},
			},
			{
				Title:   "TIMSS",
				Headers: []string{"السنة", "المبحث", "العلامة", "الصف"},
				Rows:    [][]interface{}{{2023, "الرياضيات", 512.0, "الرابع"}},
			},
		},
	}

	f, err := SchoolReportWorkbook(report)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	if got("A1") != bannerLine1 {
		t.Errorf("A1 = %q", got("A1"))
	}
	if got("A2") != bannerLine2 {
		t.Errorf("A2 = %q", got("A2"))
	}
	if title := got("A4"); title == "" {
		t.Error("school title row missing")
	}

	// first section starts under the title block
	if got("A6") != "PISA" {
		t.Errorf("A6 = %q, want section title", got("A6"))
	}
	if got("A7") != "السنة" || got("C7") != "العلامة" {
		t.Errorf("header row = %q / %q", got("A7"), got("C7"))
	}
	if got("B8") != "العلوم" {
		t.Errorf("B8 = %q", got("B8"))
	}
	if got("C9") != "" {
		t.Errorf("nil cell rendered as %q", got("C9"))
	}
}
