package model

import "time"

type SchoolModel struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SchoolNameAr   string    `gorm:"column:schoolNameAr;type:varchar(255);not null" json:"schoolNameAr"`
	SchoolNameEn   string    `gorm:"column:schoolNameEn;type:varchar(255)" json:"schoolNameEn"`
	SchoolID       string    `gorm:"column:schoolId;type:varchar(255)" json:"schoolId"`
	NationalID     string    `gorm:"column:nationalId;type:varchar(255);not null;unique" json:"nationalId"`
	Region         string    `gorm:"column:region;type:varchar(255)" json:"region"`
	PrincipalName  string    `gorm:"column:principalName;type:varchar(255);not null" json:"principalName"`
	PrincipalEmail string    `gorm:"column:principalEmail;type:varchar(255)" json:"principalEmail"`
	PrincipalPhone string    `gorm:"column:principalPhone;type:varchar(255)" json:"principalPhone"`
	HighestGrade   string    `gorm:"column:highestGrade;type:varchar(255)" json:"highestGrade"`
	LowestGrade    string    `gorm:"column:lowestGrade;type:varchar(255)" json:"lowestGrade"`
	SchoolGender   string    `gorm:"column:schoolGender;type:varchar(255)" json:"schoolGender"`
	BuildingType   string    `gorm:"column:buildingType;type:varchar(255)" json:"buildingType"`
	IsCamp         bool      `gorm:"column:isCamp" json:"isCamp"`
	DateAdded      time.Time `gorm:"column:dateAdded;autoCreateTime" json:"dateAdded"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
