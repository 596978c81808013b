package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitRatingRequest struct {
	RatedUserId uuid.UUID `json:"rated_user_id" validate:"required"`
	Score       int       `json:"score" validate:"required,min=1,max=5"`
	Review      string    `json:"review" validate:"max=1000"`
}

type RatingResponse struct {
	Id          uuid.UUID           `json:"id"`
	Rater       *SessionParticipant `json:"rater,omitempty"`
	RatedUserId uuid.UUID           `json:"rated_user_id"`
	Score       int                 `json:"score"`
	Review      string              `json:"review,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type UserRatingsResponse struct {
	Average float64           `json:"average"`
	Count   int64             `json:"count"`
	Ratings []*RatingResponse `json:"ratings"`
}
