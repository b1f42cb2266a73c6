package models

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"size:150;uniqueIndex;not null"`
	Email       string `gorm:"size:254;uniqueIndex;not null"`
	Password    string `gorm:"not null"` // bcrypt hash
	FirstName   string `gorm:"size:150"`
	LastName    string `gorm:"size:150"`
	IsStaff     bool   `gorm:"default:false"`
	IsSuperuser bool   `gorm:"default:false"`
	CreatedAt   time.Time
}

// IsAdmin reports whether the user bypasses ownership checks.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
