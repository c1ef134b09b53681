package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	TeamID string `gorm:"index;not null"`
	// Title is globally unique across all teams. Handlers pre-check for a
	// duplicate to return a friendly error; the index is the backstop for
	// near-simultaneous writes.
	Title    string         `gorm:"uniqueIndex;not null"`
	Status   string         `gorm:"type:text"` // free-text project description
	Theme    datatypes.JSON `gorm:"type:jsonb"`
	Approval Decision       `gorm:"size:16;not null;default:pending"`
}
