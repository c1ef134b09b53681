package models

import (
	"strings"

	"gorm.io/gorm"
)

// Template is reference material handed out by the department. Review, when
// set, names the review stage the template belongs to; an empty Review means
// the template applies to every stage.
type Template struct {
	gorm.Model

	Name   string `gorm:"not null"`
	Review string
	Link   string `gorm:"size:2048"`
}

// MatchesStage reports whether the template should be offered for the given
// review stage: unset templates always match, otherwise the stage must match
// exactly or case-insensitively.
func (t Template) MatchesStage(stage string) bool {
	if t.Review == "" {
		return true
	}
	if t.Review == stage {
		return true
	}
	return strings.EqualFold(t.Review, stage)
}
