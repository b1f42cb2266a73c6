package models

import "time"

const (
	SourceTwitter   = "twitter"
	SourceLinkedIn  = "linkedin"
	SourceInstagram = "instagram"
	SourceWeb       = "web"
	SourceAgent     = "agent"
)

// Evidence is a supporting artifact attached to exactly one Alert.
// Invariant: IsReviewed is true iff both ReviewedByID and ReviewedAt are set.
type Evidence struct {
	ID           uint   `gorm:"primaryKey"`
	AlertID      uint   `gorm:"index;not null"`
	Alert        Alert
	Source       string `gorm:"size:20;default:web"`
	Summary      string `gorm:"type:text"`
	IsReviewed   bool   `gorm:"index;default:false"`
	CreatedAt    time.Time
	ReviewedByID *uint
	ReviewedBy   *User `gorm:"constraint:OnDelete:SET NULL"`
	ReviewedAt   *time.Time
}

// OwnerIdentity returns the owner of the parent alert. The Alert
// association must be loaded before calling this.
func (e *Evidence) OwnerIdentity() uint { return e.Alert.OwnerID }

func ValidSource(s string) bool {
	switch s {
	case SourceTwitter, SourceLinkedIn, SourceInstagram, SourceWeb, SourceAgent:
		return true
	}
	return false
}
