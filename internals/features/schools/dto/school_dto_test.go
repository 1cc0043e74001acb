package dto

import (
	"strings"
	"testing"
)

func TestValidateEnums(t *testing.T) {
	base := SchoolRequest{
		SchoolNameAr:  "مدرسة الزرقاء",
		NationalID:    "111001",
		PrincipalName: "أحمد",
	}

	tests := []struct {
		name   string
		mutate func(*SchoolRequest)
		wantOK bool
	}{
		{"all blank optionals", func(*SchoolRequest) {}, true},
		{"valid region", func(r *SchoolRequest) { r.Region = "Zarqa" }, true},
		{"invalid region", func(r *SchoolRequest) { r.Region = "Aqaba" }, false},
		{"valid gender", func(r *SchoolRequest) { r.SchoolGender = "مختلط" }, true},
		{"invalid gender", func(r *SchoolRequest) { r.SchoolGender = "ذكور" }, false},
		{"valid building", func(r *SchoolRequest) { r.BuildingType = "ملك" }, true},
		{"invalid building", func(r *SchoolRequest) { r.BuildingType = "حكومي" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			err := req.ValidateEnums()
			if tt.wantOK && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("expected an enum error")
			}
		})
	}
}

func TestValidateEnumsNamesBadValue(t *testing.T) {
	req := SchoolRequest{Region: "Aqaba"}
	err := req.ValidateEnums()
	if err == nil || !strings.Contains(err.Error(), "Aqaba") {
		t.Errorf("error %v should quote the bad value", err)
	}
}

func TestFromSheetRowIsCamp(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"TRUE", true},
		{"true", true},
		{" True ", true},
		{"FALSE", false},
		{"", false},
		{"نعم", false},
	}
	for _, tt := range tests {
		req := FromSheetRow(map[string]string{"isCamp": tt.cell})
		if req.IsCamp != tt.want {
			t.Errorf("isCamp(%q) = %v, want %v", tt.cell, req.IsCamp, tt.want)
		}
	}
}

func TestToModelTrims(t *testing.T) {
	req := SchoolRequest{
		SchoolNameAr:  "  مدرسة الزرقاء  ",
		NationalID:    " 111001 ",
		PrincipalName: "أحمد",
	}
	m := req.ToModel()
	if m.SchoolNameAr != "مدرسة الزرقاء" || m.NationalID != "111001" {
		t.Errorf("fields not trimmed: %q / %q", m.SchoolNameAr, m.NationalID)
	}
}
