package dto

import (
	"testing"

	schoolmodel "madaris_backend/internals/features/schools/model"
	"madaris_backend/internals/features/users/model"
)

func TestResolveSession(t *testing.T) {
	school := schoolmodel.SchoolModel{ID: 7, SchoolNameAr: "مدرسة الزرقاء", NationalID: "111001"}

	tests := []struct {
		name            string
		user            model.ManagedUserModel
		school          *schoolmodel.SchoolModel
		wantDisplayName string
		wantSchoolID    uint
		wantIsNew       bool
	}{
		{
			name:            "admin",
			user:            model.ManagedUserModel{ID: 1, Username: "admin", Role: "admin"},
			wantDisplayName: "مسؤول النظام",
		},
		{
			name:            "supervisor",
			user:            model.ManagedUserModel{ID: 2, Username: "huda", Role: "supervisor"},
			wantDisplayName: "مشرف (huda)",
		},
		{
			name:            "manager with registered school",
			user:            model.ManagedUserModel{ID: 3, Username: "m1", Role: "manager", NationalID: "111001"},
			school:          &school,
			wantDisplayName: "مدرسة الزرقاء",
			wantSchoolID:    7,
		},
		{
			name:            "manager without school",
			user:            model.ManagedUserModel{ID: 4, Username: "m2", Role: "manager", NationalID: "222002"},
			wantDisplayName: "مدير جديد",
			wantIsNew:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ResolveSession(tt.user, tt.school)
			if s.DisplayName != tt.wantDisplayName {
				t.Errorf("DisplayName = %q, want %q", s.DisplayName, tt.wantDisplayName)
			}
			if s.SchoolID != tt.wantSchoolID {
				t.Errorf("SchoolID = %d, want %d", s.SchoolID, tt.wantSchoolID)
			}
			if s.IsNew != tt.wantIsNew {
				t.Errorf("IsNew = %v, want %v", s.IsNew, tt.wantIsNew)
			}
			if s.UserID != tt.user.ID || s.Username != tt.user.Username || s.Role != tt.user.Role {
				t.Errorf("identity fields not carried over: %+v", s)
			}
		})
	}
}

func TestResolveSessionManagerKeepsNationalID(t *testing.T) {
	user := model.ManagedUserModel{ID: 5, Username: "m3", Role: "manager", NationalID: "333003"}
	s := ResolveSession(user, nil)
	if s.NationalID != "333003" {
		t.Errorf("NationalID = %q, want the manager's", s.NationalID)
	}
	if admin := ResolveSession(model.ManagedUserModel{Role: "admin"}, nil); admin.NationalID != "" {
		t.Errorf("admin session carries a national id: %q", admin.NationalID)
	}
}
