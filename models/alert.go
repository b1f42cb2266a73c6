package models

import "time"

// Alert severity levels, lowest to highest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:200;not null"`
	Severity  string `gorm:"size:20;index;default:medium"`
	Status    string `gorm:"size:20;index;default:open"`
	CreatedAt time.Time
	OwnerID   uint       `gorm:"index;not null"`
	Owner     User       `gorm:"constraint:OnDelete:CASCADE"`
	Evidences []Evidence `gorm:"constraint:OnDelete:CASCADE"`
}

// OwnerIdentity returns the user that owns this alert.
func (a *Alert) OwnerIdentity() uint { return a.OwnerID }

func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}
