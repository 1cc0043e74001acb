package service

import (
	"strings"
	"testing"

	"madaris_backend/internals/features/reports/dto"
	resultmodel "madaris_backend/internals/features/results/model"
	"madaris_backend/internals/features/results/testtype"
	schoolmodel "madaris_backend/internals/features/schools/model"
)

func strp(s string) *string { return &s }

func sampleRows() []resultmodel.ResultModel {
	return []resultmodel.ResultModel{
		{SchoolNationalID: "111001", Year: 2021, Subject: "الرياضيات", Score: 60, Grade: strp("الرابع")},
		{SchoolNationalID: "111001", Year: 2021, Subject: "الرياضيات", Score: 70, Grade: strp("الثامن")},
		{SchoolNationalID: "111001", Year: 2023, Subject: "الرياضيات", Score: 80, Grade: strp("الرابع")},
		{SchoolNationalID: "111001", Year: 2022, Subject: "العلوم", Score: 50, Grade: strp("الرابع")},
		{SchoolNationalID: "111002", Year: 2021, Subject: "الرياضيات", Score: 90, Grade: strp("الرابع")},
	}
}

func TestMatchFilter(t *testing.T) {
	row := resultmodel.ResultModel{
		SchoolNationalID: "111001", Year: 2021, Subject: "الرياضيات",
		Grade: strp("الرابع"), Semester: nil,
	}

	tests := []struct {
		name   string
		filter dto.Filter
		want   bool
	}{
		{"empty filter matches", dto.Filter{}, true},
		{"year match", dto.Filter{Year: 2021}, true},
		{"year mismatch", dto.Filter{Year: 2022}, false},
		{"subject match", dto.Filter{Subject: "الرياضيات"}, true},
		{"subject mismatch", dto.Filter{Subject: "العلوم"}, false},
		{"grade match", dto.Filter{Grade: "الرابع"}, true},
		{"grade mismatch", dto.Filter{Grade: "الثامن"}, false},
		{"semester set but row has none", dto.Filter{Semester: "الأول"}, false},
		{"combined", dto.Filter{Year: 2021, Subject: "الرياضيات", Grade: "الرابع"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchFilter(row, tt.filter); got != tt.want {
				t.Errorf("MatchFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrendSeriesOnePointPerRow(t *testing.T) {
	points := TrendSeries(sampleRows(), "111001")
	if len(points) != 4 {
		t.Fatalf("points = %d, want 4 (one per row)", len(points))
	}
	want := []dto.TrendPoint{
		{Year: 2021, Score: 60},
		{Year: 2021, Score: 70},
		{Year: 2022, Score: 50},
		{Year: 2023, Score: 80},
	}
	for i, p := range want {
		if points[i] != p {
			t.Errorf("points[%d] = %+v, want %+v", i, points[i], p)
		}
	}
}

func TestTrendSeriesUnknownSchool(t *testing.T) {
	if points := TrendSeries(sampleRows(), "999999"); len(points) != 0 {
		t.Errorf("points = %v, want none", points)
	}
}

func TestComparisonSeries(t *testing.T) {
	schools := []schoolmodel.SchoolModel{
		{ID: 1, SchoolNameAr: "مدرسة الزرقاء", NationalID: "111001"},
		{ID: 2, SchoolNameAr: "مدرسة اربد", NationalID: "111002"},
		{ID: 3, SchoolNameAr: "مدرسة عمان", NationalID: "111003"},
		{ID: 4, SchoolNameAr: "مدرسة جرش", NationalID: "111004"},
		{ID: 5, SchoolNameAr: "مدرسة عجلون", NationalID: "111005"},
	}
	rows := sampleRows()

	t.Run("two schools", func(t *testing.T) {
		series, err := ComparisonSeries(schools, rows, []string{"111001", "111002"})
		if err != nil {
			t.Fatal(err)
		}
		if len(series) != 2 {
			t.Fatalf("series = %d, want 2", len(series))
		}
		if series[0].Color != "#38bdf8" || series[1].Color != "#34d399" {
			t.Errorf("colors = %s,%s, want palette order", series[0].Color, series[1].Color)
		}
		if series[0].SchoolName != "مدرسة الزرقاء" {
			t.Errorf("school name = %q", series[0].SchoolName)
		}
	})

	t.Run("none selected", func(t *testing.T) {
		if _, err := ComparisonSeries(schools, rows, nil); err == nil {
			t.Fatal("expected error for empty selection")
		}
	})

	t.Run("five selected", func(t *testing.T) {
		_, err := ComparisonSeries(schools, rows,
			[]string{"111001", "111002", "111003", "111004", "111005"})
		if err == nil {
			t.Fatal("expected error for more than four schools")
		}
		if !strings.Contains(err.Error(), "أربعة") {
			t.Errorf("error %q should state the limit", err.Error())
		}
	})

	t.Run("unknown school", func(t *testing.T) {
		if _, err := ComparisonSeries(schools, rows, []string{"999999"}); err == nil {
			t.Fatal("expected error for unknown national id")
		}
	})

	t.Run("four selected", func(t *testing.T) {
		series, err := ComparisonSeries(schools, rows,
			[]string{"111001", "111002", "111003", "111004"})
		if err != nil {
			t.Fatal(err)
		}
		if len(series) != 4 {
			t.Fatalf("series = %d, want 4", len(series))
		}
	})
}

func TestFilterRows(t *testing.T) {
	rows := FilterRows(sampleRows(), dto.Filter{Year: 2021, Subject: "الرياضيات"})
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for _, m := range rows {
		if m.Year != 2021 || m.Subject != "الرياضيات" {
			t.Errorf("row %+v escaped the filter", m)
		}
	}
}

func TestAssembleAllDataIsFlat(t *testing.T) {
	schools := []schoolmodel.SchoolModel{{ID: 1, NationalID: "111001"}}
	results := map[string][]map[string]interface{}{
		"timssResults": {{"id": 1}},
		"pisaResults":  {},
	}

	data := AssembleAllData(schools, results)
	if _, ok := data["schools"]; !ok {
		t.Error("schools key missing")
	}
	if _, ok := data["timssResults"]; !ok {
		t.Error("timssResults must be a top-level key")
	}
	if _, ok := data["pisaResults"]; !ok {
		t.Error("pisaResults must be a top-level key")
	}
	if _, ok := data["results"]; ok {
		t.Error("result arrays must not be nested under a results key")
	}
}

func TestResponsesCarryScoreAxis(t *testing.T) {
	timss, _ := testtype.Lookup("timssResults")
	alo, _ := testtype.Lookup("aloResults")

	trend := TrendResponseFor(timss, nil)
	if trend.ScoreMin != 200 || trend.ScoreMax != 700 {
		t.Errorf("TIMSS axis = %v..%v, want 200..700", trend.ScoreMin, trend.ScoreMax)
	}

	cmp := ComparisonResponseFor(alo, nil)
	if cmp.ScoreMin != 0 || cmp.ScoreMax != 100 {
		t.Errorf("ALO axis = %v..%v, want 0..100", cmp.ScoreMin, cmp.ScoreMax)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{61.37, 61.4},
		{61.34, 61.3},
		{0, 0},
		{99.95, 100},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
