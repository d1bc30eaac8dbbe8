package campsite

// CreateRequest is the payload for creating a campsite.
type CreateRequest struct {
	Name          string  `json:"name"          validate:"required,max=255"`
	Description   string  `json:"description"`
	Location      string  `json:"location"      validate:"omitempty,max=255"`
	PricePerNight float64 `json:"pricePerNight" validate:"gte=0"`
}

// UpdateRequest is the payload for a partial campsite update. Nil fields are
// left untouched.
type UpdateRequest struct {
	Name          *string  `json:"name"          validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"      validate:"omitempty,max=255"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
}
