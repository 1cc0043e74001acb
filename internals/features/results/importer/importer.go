// Package importer turns an uploaded workbook into a batch of validated
// result payloads plus a per-row failure report. Rows that fail validation
// are excluded; the valid remainder is what gets handed to the batch insert.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"madaris_backend/internals/features/results/dto"
	"madaris_backend/internals/features/results/testtype"
)

// maxDetailedErrors caps how many row failures are spelled out in the
// combined message; the rest are summarized as a count.
const maxDetailedErrors = 5

type RowError struct {
	Row     int // 1-based sheet row (data starts at row 2, row 1 is headers)
	Reasons []string
}

func (e RowError) String() string {
	return fmt.Sprintf(" • الصف %d: %s", e.Row, strings.Join(e.Reasons, "، "))
}

type Result struct {
	Valid  []dto.Payload
	Errors []RowError
}

// ErrorMessage renders the aggregated failure report shown to the user: up
// to maxDetailedErrors detailed reasons plus a remainder count.
func (r Result) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}
	lines := []string{fmt.Sprintf("❌ فشل استيراد %d سجل للأسباب التالية:", len(r.Errors))}
	for i, e := range r.Errors {
		if i == maxDetailedErrors {
			break
		}
		lines = append(lines, e.String())
	}
	if extra := len(r.Errors) - maxDetailedErrors; extra > 0 {
		lines = append(lines, fmt.Sprintf("... و %d أخطاء أخرى.", extra))
	}
	return strings.Join(lines, "\n")
}

// SheetRow is one data row keyed by column header, tagged with its 1-based
// sheet row number (data starts at row 2, row 1 is headers).
type SheetRow struct {
	Number int
	Cells  map[string]string
}

// ReadSheet reads the first sheet of a workbook into header-keyed rows. It
// fails on an unreadable or empty file and on missing required headers; rows
// whose cells are all blank are skipped.
func ReadSheet(r io.Reader, requiredHeaders []string) ([]SheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("حدث خطأ أثناء معالجة الملف: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("حدث خطأ أثناء قراءة الملف: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("الملف فارغ.")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, want := range requiredHeaders {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("الملف يجب أن يحتوي على الأعمدة التالية: %s.", strings.Join(requiredHeaders, ", "))
		}
	}

	var out []SheetRow
	for i, row := range rows[1:] {
		cells := map[string]string{}
		empty := true
		for name, col := range idx {
			if name == "" {
				continue
			}
			if col < len(row) {
				cells[name] = strings.TrimSpace(row[col])
				if cells[name] != "" {
					empty = false
				}
			}
		}
		if empty {
			continue
		}
		out = append(out, SheetRow{Number: i + 2, Cells: cells})
	}
	return out, nil
}

// Parse runs the full result-import pipeline for one test type: header
// check, per-row coercion with the form's type rules, then required and
// enumeration validation. Bad rows land in the report, good rows in Valid.
func Parse(cfg testtype.Config, r io.Reader) (Result, error) {
	rows, err := ReadSheet(r, cfg.ExcelHeaders)
	if err != nil {
		return Result{}, err
	}

	var out Result
	for _, row := range rows {
		payload, reasons := dto.CoerceSheetRow(cfg, row.Cells)
		for _, msg := range dto.Validate(cfg, payload) {
			if !containsMsg(reasons, msg) {
				reasons = append(reasons, msg)
			}
		}
		if len(reasons) > 0 {
			out.Errors = append(out.Errors, RowError{Row: row.Number, Reasons: reasons})
			continue
		}
		out.Valid = append(out.Valid, payload)
	}
	return out, nil
}

func containsMsg(list []string, msg string) bool {
	for _, m := range list {
		if m == msg {
			return true
		}
	}
	return false
}
