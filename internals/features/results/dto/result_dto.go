package dto

import (
	"fmt"
	"strconv"
	"strings"

	"madaris_backend/internals/features/results/model"
	"madaris_backend/internals/features/results/testtype"
)

// Payload is a coerced result record keyed by field name. Number fields hold
// float64 or nil, text/select fields hold string. A nil number is "left
// blank", which is legal for optional fields only.
type Payload map[string]interface{}

// =============================
// Coercion
// =============================

// CoerceForm applies the manual-entry rules: number fields parse to float64
// or nil when blank/unparsable, everything else is stringified ('' when
// absent). Nothing fails here; required/enum checks run afterwards.
func CoerceForm(cfg testtype.Config, raw map[string]interface{}) Payload {
	out := Payload{}
	for _, f := range cfg.Fields {
		v, exists := raw[f.Name]
		if f.Kind == testtype.FieldNumber {
			out[f.Name] = parseNumber(v, exists)
			continue
		}
		if !exists || v == nil {
			out[f.Name] = ""
			continue
		}
		out[f.Name] = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return out
}

// CoerceSheetRow applies the import rules to one spreadsheet row. Unlike the
// form path, an unparsable number is a reported row error, not a silent nil.
func CoerceSheetRow(cfg testtype.Config, cells map[string]string) (Payload, []string) {
	out := Payload{}
	var errs []string
	for _, f := range cfg.Fields {
		raw := strings.TrimSpace(cells[f.Name])
		if raw == "" {
			if f.Kind == testtype.FieldNumber {
				out[f.Name] = nil
			} else {
				out[f.Name] = ""
			}
			continue
		}
		if f.Kind == testtype.FieldNumber {
			num, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("حقل '%s' يجب أن يكون رقمًا (القيمة: '%s')", f.Label, raw))
				out[f.Name] = nil
				continue
			}
			out[f.Name] = num
			continue
		}
		out[f.Name] = raw
	}
	return out, errs
}

func parseNumber(v interface{}, exists bool) interface{} {
	if !exists || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return num
	default:
		return nil
	}
}

// =============================
// Validation
// =============================

// ValidateRequired checks every required field after coercion. Zero is a
// valid value; nil and the empty string are not.
func ValidateRequired(cfg testtype.Config, p Payload) []string {
	var errs []string
	for _, name := range cfg.Required {
		v, ok := p[name]
		if !ok || v == nil {
			errs = append(errs, fmt.Sprintf("حقل '%s' مطلوب", cfg.Label(name)))
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("حقل '%s' مطلوب", cfg.Label(name)))
		}
	}
	return errs
}

// ValidateOptions enforces the enumeration contract: a select field that is
// present must carry one of its configured values.
func ValidateOptions(cfg testtype.Config, p Payload) []string {
	var errs []string
	for _, f := range cfg.Fields {
		if f.Kind != testtype.FieldSelect {
			continue
		}
		s, _ := p[f.Name].(string)
		if s == "" {
			continue // absence is the required check's business
		}
		valid := false
		for _, opt := range f.Options {
			if s == opt {
				valid = true
				break
			}
		}
		if !valid {
			errs = append(errs, fmt.Sprintf("قيمة غير صالحة للحقل '%s' (القيمة: '%s')", f.Label, s))
		}
	}
	return errs
}

// Validate combines both checks in the order the original ran them.
func Validate(cfg testtype.Config, p Payload) []string {
	errs := ValidateRequired(cfg, p)
	errs = append(errs, ValidateOptions(cfg, p)...)
	return errs
}

// =============================
// Model conversion
// =============================

func numPtr(p Payload, name string) *float64 {
	if v, ok := p[name].(float64); ok {
		return &v
	}
	return nil
}

func strPtr(p Payload, name string) *string {
	if v, ok := p[name].(string); ok && v != "" {
		return &v
	}
	return nil
}

// ToModel builds a ResultModel from a validated payload.
func ToModel(cfg testtype.Config, p Payload) model.ResultModel {
	m := model.ResultModel{}
	m.SchoolNationalID, _ = p["schoolNationalId"].(string)
	m.Subject, _ = p["subject"].(string)
	if y, ok := p["year"].(float64); ok {
		m.Year = int(y)
	}
	if s, ok := p["score"].(float64); ok {
		m.Score = s
	}
	if cfg.HasGrade() {
		m.Grade = strPtr(p, "grade")
	}
	if cfg.HasSemester() {
		m.Semester = strPtr(p, "semester")
	}
	if _, ok := cfg.Field("participationRate"); ok {
		m.ParticipationRate = numPtr(p, "participationRate")
		m.AchievedRate = numPtr(p, "achievedRate")
		m.PartiallyAchievedRate = numPtr(p, "partiallyAchievedRate")
		m.NotAchievedRate = numPtr(p, "notAchievedRate")
	}
	return m
}

// ToRow renders a stored row for the wire: exactly the configured fields plus
// id and dateAdded. Optional numbers that were left blank come out as null,
// never omitted.
func ToRow(cfg testtype.Config, m model.ResultModel) map[string]interface{} {
	row := map[string]interface{}{
		"id":        m.ID,
		"dateAdded": m.DateAdded,
	}
	for _, f := range cfg.Fields {
		switch f.Name {
		case "schoolNationalId":
			row[f.Name] = m.SchoolNationalID
		case "year":
			row[f.Name] = m.Year
		case "subject":
			row[f.Name] = m.Subject
		case "score":
			row[f.Name] = m.Score
		case "grade":
			row[f.Name] = derefStr(m.Grade)
		case "semester":
			row[f.Name] = derefStr(m.Semester)
		case "participationRate":
			row[f.Name] = derefNum(m.ParticipationRate)
		case "achievedRate":
			row[f.Name] = derefNum(m.AchievedRate)
		case "partiallyAchievedRate":
			row[f.Name] = derefNum(m.PartiallyAchievedRate)
		case "notAchievedRate":
			row[f.Name] = derefNum(m.NotAchievedRate)
		}
	}
	return row
}

func derefStr(p *string) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func derefNum(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
