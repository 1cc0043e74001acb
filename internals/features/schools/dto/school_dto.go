package dto

import (
	"fmt"
	"strings"

	"madaris_backend/internals/features/schools/model"
)

// Categorical attributes of a school. Regions come from the original
// deployment's field office split; gender and building values are stored in
// Arabic as they appear on the wire.
var (
	Regions       = []string{"North Amman", "South Amman", "Zarqa", "Irbid"}
	Genders       = []string{"بنين", "بنات", "مختلط"}
	BuildingTypes = []string{"ملك", "مستأجرة"}
)

// RequiredImportHeaders are the columns a school import sheet must carry.
var RequiredImportHeaders = []string{"schoolNameAr", "nationalId", "principalName"}

type SchoolRequest struct {
	SchoolNameAr   string `json:"schoolNameAr" validate:"required"`
	SchoolNameEn   string `json:"schoolNameEn"`
	SchoolID       string `json:"schoolId"`
	NationalID     string `json:"nationalId" validate:"required"`
	Region         string `json:"region"`
	PrincipalName  string `json:"principalName" validate:"required"`
	PrincipalEmail string `json:"principalEmail" validate:"omitempty,email"`
	PrincipalPhone string `json:"principalPhone"`
	HighestGrade   string `json:"highestGrade"`
	LowestGrade    string `json:"lowestGrade"`
	SchoolGender   string `json:"schoolGender"`
	BuildingType   string `json:"buildingType"`
	IsCamp         bool   `json:"isCamp"`
}

// ValidateEnums rejects categorical values outside their enumeration. Blank
// is allowed (the columns are nullable); a wrong value is not silently
// defaulted anywhere, import included.
func (r SchoolRequest) ValidateEnums() error {
	if err := checkEnum("المنطقة", r.Region, Regions); err != nil {
		return err
	}
	if err := checkEnum("جنس المدرسة", r.SchoolGender, Genders); err != nil {
		return err
	}
	return checkEnum("نوع المبنى", r.BuildingType, BuildingTypes)
}

func checkEnum(label, value string, options []string) error {
	if value == "" {
		return nil
	}
	for _, opt := range options {
		if value == opt {
			return nil
		}
	}
	return fmt.Errorf("قيمة غير صالحة للحقل '%s' (القيمة: '%s')", label, value)
}

func (r SchoolRequest) ToModel() model.SchoolModel {
	return model.SchoolModel{
		SchoolNameAr:   strings.TrimSpace(r.SchoolNameAr),
		SchoolNameEn:   strings.TrimSpace(r.SchoolNameEn),
		SchoolID:       strings.TrimSpace(r.SchoolID),
		NationalID:     strings.TrimSpace(r.NationalID),
		Region:         r.Region,
		PrincipalName:  strings.TrimSpace(r.PrincipalName),
		PrincipalEmail: strings.TrimSpace(r.PrincipalEmail),
		PrincipalPhone: strings.TrimSpace(r.PrincipalPhone),
		HighestGrade:   strings.TrimSpace(r.HighestGrade),
		LowestGrade:    strings.TrimSpace(r.LowestGrade),
		SchoolGender:   r.SchoolGender,
		BuildingType:   r.BuildingType,
		IsCamp:         r.IsCamp,
	}
}

// FromSheetRow builds a SchoolRequest from one import row. isCamp accepts a
// boolean cell or the literal TRUE/FALSE text the export templates use.
func FromSheetRow(cells map[string]string) SchoolRequest {
	return SchoolRequest{
		SchoolNameAr:   cells["schoolNameAr"],
		SchoolNameEn:   cells["schoolNameEn"],
		SchoolID:       cells["schoolId"],
		NationalID:     cells["nationalId"],
		Region:         cells["region"],
		PrincipalName:  cells["principalName"],
		PrincipalEmail: cells["principalEmail"],
		PrincipalPhone: cells["principalPhone"],
		HighestGrade:   cells["highestGrade"],
		LowestGrade:    cells["lowestGrade"],
		SchoolGender:   cells["schoolGender"],
		BuildingType:   cells["buildingType"],
		IsCamp:         strings.EqualFold(strings.TrimSpace(cells["isCamp"]), "TRUE"),
	}
}
