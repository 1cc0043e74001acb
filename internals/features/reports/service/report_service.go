package service

import (
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/dto"
	resultdto "madaris_backend/internals/features/results/dto"
	resultmodel "madaris_backend/internals/features/results/model"
	"madaris_backend/internals/features/results/testtype"
	schoolmodel "madaris_backend/internals/features/schools/model"
)

// maxComparisonSchools bounds the comparison chart; more lines than this are
// unreadable on the report page.
const maxComparisonSchools = 4

// palette assigns each compared school a stable line color, in selection
// order.
var palette = []string{"#38bdf8", "#34d399", "#fbbf24", "#f87171", "#c084fc"}

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

func (s *ReportService) Schools() ([]schoolmodel.SchoolModel, error) {
	var schools []schoolmodel.SchoolModel
	if err := s.DB.Order("id desc").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func (s *ReportService) ResultsFor(cfg testtype.Config) ([]resultmodel.ResultModel, error) {
	var rows []resultmodel.ResultModel
	if err := s.DB.Table(cfg.Table).Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AllData assembles the full aggregate for the reports pages: every school
// and every result row of every test type, each resource under its own
// top-level key.
func (s *ReportService) AllData() (map[string]interface{}, error) {
	schools, err := s.Schools()
	if err != nil {
		return nil, err
	}

	results := map[string][]map[string]interface{}{}
	for _, cfg := range testtype.Registry {
		rows, err := s.ResultsFor(cfg)
		if err != nil {
			return nil, err
		}
		shaped := make([]map[string]interface{}, 0, len(rows))
		for _, m := range rows {
			shaped = append(shaped, resultdto.ToRow(cfg, m))
		}
		results[cfg.Key] = shaped
	}
	return AssembleAllData(schools, results), nil
}

// AssembleAllData lays the aggregate out flat: schools next to one array per
// test type, nothing nested.
func AssembleAllData(schools []schoolmodel.SchoolModel, results map[string][]map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"schools": schools}
	for key, rows := range results {
		out[key] = rows
	}
	return out
}

// MatchFilter reports whether a row passes every set dimension.
func MatchFilter(m resultmodel.ResultModel, f dto.Filter) bool {
	if f.Year != 0 && m.Year != f.Year {
		return false
	}
	if f.Subject != "" && m.Subject != f.Subject {
		return false
	}
	if f.Grade != "" && (m.Grade == nil || *m.Grade != f.Grade) {
		return false
	}
	if f.Semester != "" && (m.Semester == nil || *m.Semester != f.Semester) {
		return false
	}
	return true
}

func FilterRows(rows []resultmodel.ResultModel, f dto.Filter) []resultmodel.ResultModel {
	out := make([]resultmodel.ResultModel, 0, len(rows))
	for _, m := range rows {
		if MatchFilter(m, f) {
			out = append(out, m)
		}
	}
	return out
}

// TrendSeries lists one school's rows as chart points, one point per result
// row, oldest year first. Same-year rows stay separate points in their
// stored order.
func TrendSeries(rows []resultmodel.ResultModel, nationalID string) []dto.TrendPoint {
	var points []dto.TrendPoint
	for _, m := range rows {
		if m.SchoolNationalID != nationalID {
			continue
		}
		points = append(points, dto.TrendPoint{Year: m.Year, Score: m.Score})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Year < points[j].Year
	})
	return points
}

// TrendResponseFor wraps the points with the test type's score axis.
func TrendResponseFor(cfg testtype.Config, points []dto.TrendPoint) dto.TrendResponse {
	return dto.TrendResponse{
		ScoreMin: cfg.ScoreMin,
		ScoreMax: cfg.ScoreMax,
		Points:   points,
	}
}

// ComparisonResponseFor wraps the series with the test type's score axis.
func ComparisonResponseFor(cfg testtype.Config, series []dto.ComparisonSeries) dto.ComparisonResponse {
	return dto.ComparisonResponse{
		ScoreMin: cfg.ScoreMin,
		ScoreMax: cfg.ScoreMax,
		Series:   series,
	}
}

// ComparisonSeries builds one trend line per selected school, colored in
// selection order. Between one and four schools may be compared.
func ComparisonSeries(schools []schoolmodel.SchoolModel, rows []resultmodel.ResultModel, nationalIDs []string) ([]dto.ComparisonSeries, error) {
	if len(nationalIDs) == 0 {
		return nil, fmt.Errorf("يرجى اختيار مدرسة واحدة على الأقل للمقارنة.")
	}
	if len(nationalIDs) > maxComparisonSchools {
		return nil, fmt.Errorf("يمكنك اختيار أربعة مدارس على الأكثر للمقارنة.")
	}

	byNationalID := map[string]schoolmodel.SchoolModel{}
	for _, s := range schools {
		byNationalID[s.NationalID] = s
	}

	out := make([]dto.ComparisonSeries, 0, len(nationalIDs))
	for i, id := range nationalIDs {
		school, ok := byNationalID[id]
		if !ok {
			return nil, fmt.Errorf("المدرسة بالرقم الوطني '%s' غير موجودة.", id)
		}
		out = append(out, dto.ComparisonSeries{
			SchoolNationalID: id,
			SchoolName:       school.SchoolNameAr,
			Color:            palette[i],
			Points:           TrendSeries(rows, id),
		})
	}
	return out, nil
}

// BuildSchoolReport collects one school's rows across every test type into
// printable sections. Types the school has no data for are skipped; the
// school identity columns are not repeated inside the sections.
func (s *ReportService) BuildSchoolReport(school schoolmodel.SchoolModel) (dto.SchoolReport, error) {
	report := dto.SchoolReport{
		SchoolName: school.SchoolNameAr,
		NationalID: school.NationalID,
	}

	for _, cfg := range testtype.Registry {
		rows, err := s.ResultsFor(cfg)
		if err != nil {
			return dto.SchoolReport{}, err
		}

		section := dto.ReportSection{Title: cfg.Name}
		for _, f := range cfg.Fields {
			if f.Name == "schoolNationalId" {
				continue
			}
			section.Headers = append(section.Headers, f.Label)
		}
		for _, m := range rows {
			if m.SchoolNationalID != school.NationalID {
				continue
			}
			section.Rows = append(section.Rows, sectionRow(cfg, m))
		}
		if len(section.Rows) > 0 {
			report.Sections = append(report.Sections, section)
		}
	}
	return report, nil
}

func sectionRow(cfg testtype.Config, m resultmodel.ResultModel) []interface{} {
	shaped := resultdto.ToRow(cfg, m)
	var row []interface{}
	for _, f := range cfg.Fields {
		if f.Name == "schoolNationalId" {
			continue
		}
		v := shaped[f.Name]
		if n, ok := v.(float64); ok {
			v = round1(n)
		}
		row = append(row, v)
	}
	return row
}

func round1(n float64) float64 {
	return math.Round(n*10) / 10
}
