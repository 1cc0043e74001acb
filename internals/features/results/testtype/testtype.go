// Package testtype holds the closed registry of standardized test programs.
// Every program is described by one Config: its resource/table name, field
// specs with the legal enumerated values, the required fields, and the
// spreadsheet headers expected on bulk import. Forms, validation, import and
// report filtering are all driven from this table; there is no per-program
// code anywhere else.
package testtype

type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldNumber FieldKind = "number"
	FieldSelect FieldKind = "select"
)

type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Options []string // enumerated values, select fields only
}

type Config struct {
	Key      string // resource name, e.g. "timssResults"
	Table    string // database table, same as Key
	Name     string // display title
	Fields   []Field
	Required []string
	// ExcelHeaders must all be present (case-sensitive) in an import sheet
	ExcelHeaders []string
	ScoreMin     float64
	ScoreMax     float64
}

// Shared subject/grade enumerations (Arabic, as stored on the wire).
var (
	timssSubjects    = []string{"الرياضيات", "العلوم"}
	timssGrades      = []string{"الرابع", "الثامن"}
	pisaSubjects     = []string{"الرياضيات", "العلوم", "القرائية"}
	pirlsSubjects    = []string{"القرائية"}
	nationalSubjects = []string{"اللغة العربية", "الرياضيات", "اللغة الإنجليزية", "العلوم"}
	nationalGrades   = []string{"الرابع", "الثامن", "العاشر"}
	assessSubjects   = []string{"اللغة العربية", "الرياضيات"}
	unifiedSubjects  = []string{"الرياضيات", "اللغة العربية", "اللغة الانجليزية", "العلوم", "الفيزياء", "الكيمياء", "الاحياء", "علوم الارض"}
	unifiedGrades    = []string{"الأول", "الثاني", "الثالث", "الرابع", "الخامس", "السادس", "السابع", "الثامن", "التاسع", "العاشر"}
	unifiedSemesters = []string{"الأول", "الثاني"}
	litNumSubjects   = []string{"متوسط القراءة الادائية", "متوسط القراءة الاستيعابية", "متوسط الرياضيات"}
	litNumGrades     = []string{"الثالث", "السابع"}
	aloSubjects      = []string{"اللغة العربية", "الرياضيات"}
	aloGrades        = []string{"الرابع", "الخامس", "الثامن", "التاسع"}
)

func schoolField() Field {
	return Field{Name: "schoolNationalId", Label: "الرقم الوطني للمدرسة", Kind: FieldText}
}

func yearField() Field {
	return Field{Name: "year", Label: "السنة", Kind: FieldNumber}
}

var Registry = []Config{
	{
		Key: "timssResults", Table: "timssResults", Name: "TIMSS",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المبحث", Kind: FieldSelect, Options: timssSubjects},
			{Name: "score", Label: "العلامة", Kind: FieldNumber},
			{Name: "grade", Label: "الصف", Kind: FieldSelect, Options: timssGrades},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score", "grade"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score", "grade"},
		ScoreMin:     200, ScoreMax: 700,
	},
	{
		Key: "pisaResults", Table: "pisaResults", Name: "PISA",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المبحث", Kind: FieldSelect, Options: pisaSubjects},
			{Name: "score", Label: "العلامة", Kind: FieldNumber},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score"},
		ScoreMin:     200, ScoreMax: 700,
	},
	{
		Key: "pirlsResults", Table: "pirlsResults", Name: "PIRLS",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المبحث", Kind: FieldSelect, Options: pirlsSubjects},
			{Name: "score", Label: "العلامة", Kind: FieldNumber},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score"},
		ScoreMin:     200, ScoreMax: 700,
	},
	{
		Key: "nationalTestResults", Table: "nationalTestResults", Name: "الاختبار الوطني",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المادة", Kind: FieldSelect, Options: nationalSubjects},
			{Name: "score", Label: "العلامة", Kind: FieldNumber},
			{Name: "grade", Label: "الصف", Kind: FieldSelect, Options: nationalGrades},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score", "grade"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score", "grade"},
		ScoreMin:     0, ScoreMax: 100,
	},
	{
		Key: "assessmentTestResults", Table: "assessmentTestResults", Name: "الاختبار التقييمي",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المادة", Kind: FieldSelect, Options: assessSubjects},
			{Name: "score", Label: "العلامة", Kind: FieldNumber},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score"},
		ScoreMin:     0, ScoreMax: 100,
	},
	{
		Key: "unifiedTestResults", Table: "unifiedTestResults", Name: "الاختبار الموحد",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المبحث", Kind: FieldSelect, Options: unifiedSubjects},
			{Name: "score", Label: "العلامة", Kind: FieldNumber},
			{Name: "grade", Label: "الصف", Kind: FieldSelect, Options: unifiedGrades},
			{Name: "semester", Label: "الفصل الدراسي", Kind: FieldSelect, Options: unifiedSemesters},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score", "grade", "semester"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score", "grade", "semester"},
		ScoreMin:     0, ScoreMax: 100,
	},
	{
		Key: "literacyNumeracyResults", Table: "literacyNumeracyResults", Name: "القرائية والحساب",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المقياس", Kind: FieldSelect, Options: litNumSubjects},
			{Name: "score", Label: "المتوسط", Kind: FieldNumber},
			{Name: "grade", Label: "الصف", Kind: FieldSelect, Options: litNumGrades},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "score", "grade"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "score", "grade"},
		ScoreMin:     0, ScoreMax: 100,
	},
	{
		Key: "aloResults", Table: "aloResults", Name: "تقييم مخرجات التعلم (ALO)",
		Fields: []Field{
			schoolField(),
			yearField(),
			{Name: "subject", Label: "المبحث", Kind: FieldSelect, Options: aloSubjects},
			{Name: "grade", Label: "الصف", Kind: FieldSelect, Options: aloGrades},
			{Name: "score", Label: "المتوسط الحسابي", Kind: FieldNumber},
			{Name: "participationRate", Label: "نسبة المتقدم (%)", Kind: FieldNumber},
			{Name: "achievedRate", Label: "نسبة المنجز (%)", Kind: FieldNumber},
			{Name: "partiallyAchievedRate", Label: "نسبة المنجز جزئيا (%)", Kind: FieldNumber},
			{Name: "notAchievedRate", Label: "نسبة عدم الإنجاز (%)", Kind: FieldNumber},
		},
		Required:     []string{"schoolNationalId", "year", "subject", "grade", "score"},
		ExcelHeaders: []string{"schoolNationalId", "year", "subject", "grade", "score", "participationRate", "achievedRate", "partiallyAchievedRate", "notAchievedRate"},
		ScoreMin:     0, ScoreMax: 100,
	},
}

// Lookup resolves a Config by resource name.
func Lookup(key string) (Config, bool) {
	for _, cfg := range Registry {
		if cfg.Key == key {
			return cfg, true
		}
	}
	return Config{}, false
}

func (c Config) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Label returns the display label for a field, falling back to its name.
func (c Config) Label(name string) string {
	if f, ok := c.Field(name); ok {
		return f.Label
	}
	return name
}

func (c Config) HasGrade() bool {
	_, ok := c.Field("grade")
	return ok
}

func (c Config) HasSemester() bool {
	_, ok := c.Field("semester")
	return ok
}

func (c Config) IsRequired(name string) bool {
	for _, r := range c.Required {
		if r == name {
			return true
		}
	}
	return false
}
