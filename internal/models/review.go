package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a named checkpoint (e.g. "Proposal") scheduled for a team by the
// department. Students read reviews and attach supporting material; the rows
// themselves are created and graded elsewhere.
type Review struct {
	gorm.Model

	TeamID      string `gorm:"index;not null"`
	Stage       string
	Department  string
	Result      string `gorm:"type:text"`
	IsCompleted bool   `gorm:"not null;default:false"`
	CompletedOn *time.Time

	// Relationships
	Attachments []ReviewAttachment `gorm:"foreignKey:ReviewID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
