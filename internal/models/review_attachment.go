package models

import "gorm.io/gorm"

// ReviewAttachment stores one supporting item for a review. Link is either
// the public URL of an uploaded file or a raw external link supplied by the
// student; the two are not distinguished after creation.
type ReviewAttachment struct {
	gorm.Model

	ReviewID       uint   `gorm:"not null;index"`
	AttachmentName string `gorm:"not null"`
	Link           string `gorm:"size:2048;not null"`

	// Relationships
	Review Review `gorm:"foreignKey:ReviewID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
