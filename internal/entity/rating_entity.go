package entity

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	Id          uuid.UUID
	RaterId     uuid.UUID
	RatedUserId uuid.UUID
	Score       int
	Review      string
	CreatedAt   time.Time

	Rater *User
}
