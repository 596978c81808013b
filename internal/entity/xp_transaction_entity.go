package entity

import (
	"time"

	"github.com/google/uuid"
)

type XPReason string

const (
	XPReasonSessionAccepted  XPReason = "session_accepted"
	XPReasonSessionCompleted XPReason = "session_completed"
	XPReasonRatingReceived   XPReason = "rating_received"
	XPReasonRatingGiven      XPReason = "rating_given"
	XPReasonQuizPassed       XPReason = "quiz_passed"
)

// XPTransaction is the append-only history of ledger awards.
type XPTransaction struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Amount    int
	Reason    XPReason
	RelatedId *uuid.UUID
	CreatedAt time.Time
}

// DailyCount is one bucket of a per-day aggregate.
type DailyCount struct {
	Day   time.Time
	Total int
}
