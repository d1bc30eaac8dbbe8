package models

import "time"

// Campsite represents a bookable listing. A campsite may be unowned
// (HostID nil) when it was loaded by a seed import rather than created
// through the API.
type Campsite struct {
	ID            uint64  `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Location      string  `gorm:"size:255" json:"location"`
	PricePerNight float64 `gorm:"type:decimal(10,2);not null;default:0" json:"pricePerNight"`
	// HostID references the owning user. Mutation is restricted to the
	// owner or an admin; a nil host leaves the listing open to any
	// authenticated user, matching the legacy behavior.
	HostID    *uint64   `gorm:"index" json:"hostId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
