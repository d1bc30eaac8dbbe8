package models

import "time"

// Review represents feedback on a campsite. A user may leave more than one
// review per campsite.
type Review struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"index;not null" json:"userId"`
	CampsiteID uint64    `gorm:"index;not null" json:"campsiteId"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
