package dto

import (
	"fmt"

	"madaris_backend/internals/constants"
	schoolmodel "madaris_backend/internals/features/schools/model"
	"madaris_backend/internals/features/users/model"
)

type CreateUserRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required"`
	NationalID string `json:"nationalId" validate:"required_if=Role manager"`
}

// UpdateUserRequest leaves the password optional: a blank password keeps the
// stored hash untouched.
type UpdateUserRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"omitempty,min=6"`
	Role       string `json:"role" validate:"required"`
	NationalID string `json:"nationalId" validate:"required_if=Role manager"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Session is what a successful login returns. SchoolID and SchoolName are
// only set for managers whose school is already registered; IsNew marks a
// manager whose school has not been added yet.
type Session struct {
	Token       string `json:"token"`
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	SchoolID    uint   `json:"schoolId,omitempty"`
	SchoolName  string `json:"schoolName,omitempty"`
	NationalID  string `json:"nationalId,omitempty"`
	IsNew       bool   `json:"isNew"`
}

// ResolveSession derives the display identity for a logged-in user. For
// managers, school may be nil when no school matches their national id.
func ResolveSession(user model.ManagedUserModel, school *schoolmodel.SchoolModel) Session {
	s := Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	switch user.Role {
	case constants.RoleAdmin:
		s.DisplayName = "مسؤول النظام"
	case constants.RoleSupervisor:
		s.DisplayName = fmt.Sprintf("مشرف (%s)", user.Username)
	case constants.RoleManager:
		s.NationalID = user.NationalID
		if school != nil {
			s.DisplayName = school.SchoolNameAr
			s.SchoolID = school.ID
			s.SchoolName = school.SchoolNameAr
		} else {
			s.DisplayName = "مدير جديد"
			s.IsNew = true
		}
	default:
		s.DisplayName = user.Username
	}
	return s
}
