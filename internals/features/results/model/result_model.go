package model

import "time"

// ResultModel is the superset row shape shared by all eight result tables.
// The table is chosen at query time via db.Table(cfg.Table); variant-only
// columns (grade, semester, the ALO rates) are nullable pointers.
type ResultModel struct {
	ID                    uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SchoolNationalID      string    `gorm:"column:schoolNationalId;type:varchar(255);not null;index" json:"schoolNationalId"`
	Year                  int       `gorm:"column:year;not null" json:"year"`
	Subject               string    `gorm:"column:subject;type:varchar(255);not null" json:"subject"`
	Score                 float64   `gorm:"column:score;not null" json:"score"`
	Grade                 *string   `gorm:"column:grade;type:varchar(255)" json:"grade,omitempty"`
	Semester              *string   `gorm:"column:semester;type:varchar(255)" json:"semester,omitempty"`
	ParticipationRate     *float64  `gorm:"column:participationRate" json:"participationRate,omitempty"`
	AchievedRate          *float64  `gorm:"column:achievedRate" json:"achievedRate,omitempty"`
	PartiallyAchievedRate *float64  `gorm:"column:partiallyAchievedRate" json:"partiallyAchievedRate,omitempty"`
	NotAchievedRate       *float64  `gorm:"column:notAchievedRate" json:"notAchievedRate,omitempty"`
	DateAdded             time.Time `gorm:"column:dateAdded;autoCreateTime" json:"dateAdded"`
}
