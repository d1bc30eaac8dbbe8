// Package models contains database model definitions.
package models

import (
	"time"
)

// Role represents the authorization tier of a user account.
type Role string

const (
	// RoleUser is the default tier assigned on first login.
	RoleUser Role = "user"
	// RoleHost is granted automatically when a user creates their first campsite.
	RoleHost Role = "host"
	// RoleAdmin bypasses all ownership checks. Assigned manually.
	RoleAdmin Role = "admin"
)

// User represents a user account reconciled from an external identity
// provider. Accounts are keyed by ExternalUID: the bare Firebase uid for
// Firebase sign-ins, or "kakao:<account id>" for Kakao sign-ins. The key is
// assigned on creation and never changes.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// ExternalUID is the provider-qualified external identity key.
	// The JSON name keeps wire compatibility with existing clients.
	ExternalUID string `gorm:"column:external_uid;uniqueIndex;size:255;not null" json:"firebaseUid"`
	// Email is the user's email address. Optional, unique when present.
	Email *string `gorm:"uniqueIndex;size:255" json:"email"`
	// Name is the display name shown in the app.
	Name string `gorm:"size:255" json:"name"`
	// Role is the authorization tier (user, host or admin).
	Role Role `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin tier.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
