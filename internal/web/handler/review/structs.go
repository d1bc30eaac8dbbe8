package review

// CreateRequest is the payload for posting a review.
type CreateRequest struct {
	CampsiteID uint64 `json:"campsiteId" validate:"required"`
	Rating     int    `json:"rating"     validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment"    validate:"omitempty,max=1000"`
}

// UpdateRequest is the payload for a partial review update. Nil fields are
// left untouched.
type UpdateRequest struct {
	Rating  *int    `json:"rating"  validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}
