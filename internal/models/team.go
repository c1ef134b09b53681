package models

import "gorm.io/gorm"

// MaxTeamSize is the member cap enforced when a student joins by code.
const MaxTeamSize = 4

type Team struct {
	gorm.Model

	TeamID   string   `gorm:"uniqueIndex;not null"` // public identifier shared with students/projects
	TeamLead string   `gorm:"not null"`             // student_id of the creator
	Code     string   `gorm:"uniqueIndex;size:6;not null"`
	Theme    string
	Mentor   string
	Approval Decision `gorm:"size:16;not null;default:pending"`

	// Relationships
	Members []Student `gorm:"foreignKey:TeamID;references:TeamID"`
	Reviews []Review  `gorm:"foreignKey:TeamID;references:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
