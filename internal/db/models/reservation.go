package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	// ReservationPending exists for legacy rows only; new reservations
	// are created confirmed.
	ReservationPending ReservationStatus = "pending"
	// ReservationConfirmed is the state a reservation is created in.
	ReservationConfirmed ReservationStatus = "confirmed"
	// ReservationCancelled is terminal. There is no way back.
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation represents a booking claim on a campsite for a date range.
// Dates are date-only; no time component is stored.
type Reservation struct {
	ID         uint64            `gorm:"primaryKey" json:"id"`
	UserID     uint64            `gorm:"index;not null" json:"userId"`
	CampsiteID uint64            `gorm:"index;not null" json:"campsiteId"`
	StartDate  Date              `gorm:"not null" json:"startDate"`
	EndDate    Date              `gorm:"not null" json:"endDate"`
	Status     ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`

	Campsite *Campsite `gorm:"foreignKey:CampsiteID" json:"campsite,omitempty"`
}
