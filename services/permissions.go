package services

import "alertwatch/models"

// Owned is implemented by every record type with an owning identity.
type Owned interface {
	OwnerIdentity() uint
}

// CanAccess decides whether the user may read or write the record.
// Staff and superusers bypass the ownership check entirely.
func CanAccess(user *models.User, record Owned) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return record.OwnerIdentity() == user.ID
}
