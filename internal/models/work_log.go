package models

import "gorm.io/gorm"

type WorkLog struct {
	gorm.Model

	StudentID     string `gorm:"index;not null"`
	TeamID        string `gorm:"index"`
	Date          string `gorm:"size:10;not null"` // YYYY-MM-DD
	ExpectedTask  string `gorm:"type:text;not null"`
	CompletedTask string `gorm:"type:text;not null"`
	// MentorApproved gates mutation: the log is editable and deletable only
	// while it is pending.
	MentorApproved Decision `gorm:"size:16;not null;default:pending"`
	Comments       string   `gorm:"type:text"`
}

// Mutable reports whether the student may still edit or delete the log.
func (l WorkLog) Mutable() bool {
	return !l.MentorApproved.Decided()
}
