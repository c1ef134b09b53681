package models

import "gorm.io/gorm"

type Student struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	StudentID    string `gorm:"uniqueIndex;not null"` // institutional register number
	PasswordHash string `gorm:"not null"`
	Department   string
	Section      string
	TeamID       *string `gorm:"index"` // nil until the student creates or joins a team

	// Relationships
	WorkLogs []WorkLog `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
