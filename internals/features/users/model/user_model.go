package model

import "time"

// ManagedUserModel is an account created by an administrator. Managers are
// tied to a school through nationalId; admins and supervisors are not.
type ManagedUserModel struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"column:username;type:varchar(255);not null;unique" json:"username"`
	Password   string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role       string    `gorm:"column:role;type:varchar(50);not null" json:"role"`
	NationalID string    `gorm:"column:nationalId;type:varchar(255)" json:"nationalId"`
	DateAdded  time.Time `gorm:"column:dateAdded;autoCreateTime" json:"dateAdded"`
}

func (ManagedUserModel) TableName() string {
	return "managed_users"
}
