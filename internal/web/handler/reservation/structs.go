package reservation

import "github.com/caraban-app/caraban-api/internal/db/models"

// CreateRequest is the payload for booking a campsite.
type CreateRequest struct {
	CampsiteID uint64      `json:"campsiteId" validate:"required"`
	StartDate  models.Date `json:"startDate"  validate:"required"`
	EndDate    models.Date `json:"endDate"    validate:"required"`
}
