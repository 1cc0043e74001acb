package dto

// Filter narrows result rows along the dimensions the report pages expose.
// Zero values mean "any".
type Filter struct {
	Year     int    `json:"year" query:"year"`
	Subject  string `json:"subject" query:"subject"`
	Grade    string `json:"grade" query:"grade"`
	Semester string `json:"semester" query:"semester"`
}

// TrendPoint is one year's average score for a school.
type TrendPoint struct {
	Year  int     `json:"year"`
	Score float64 `json:"score"`
}

// ComparisonSeries is one school's line on the comparison chart.
type ComparisonSeries struct {
	SchoolNationalID string       `json:"schoolNationalId"`
	SchoolName       string       `json:"schoolName"`
	Color            string       `json:"color"`
	Points           []TrendPoint `json:"points"`
}

// TrendResponse carries the points plus the test type's score axis bounds,
// so charts scale TIMSS/PISA/PIRLS (200..700) differently from the
// percentage-based programs.
type TrendResponse struct {
	ScoreMin float64      `json:"scoreMin"`
	ScoreMax float64      `json:"scoreMax"`
	Points   []TrendPoint `json:"points"`
}

// ComparisonResponse is the comparison chart payload with the same axis
// metadata.
type ComparisonResponse struct {
	ScoreMin float64            `json:"scoreMin"`
	ScoreMax float64            `json:"scoreMax"`
	Series   []ComparisonSeries `json:"series"`
}

// ReportSection is one test type's slice of a school report: the configured
// column labels and the school's rows in display order.
type ReportSection struct {
	Title   string          `json:"title"`
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

// SchoolReport is the printable per-school summary, one section per test
// type the school has data for.
type SchoolReport struct {
	SchoolName string          `json:"schoolName"`
	NationalID string          `json:"nationalId"`
	Sections   []ReportSection `json:"sections"`
}

// ExportRequest asks for the workbook rendition of one school's report.
type ExportRequest struct {
	NationalID string `json:"nationalId" validate:"required"`
}
