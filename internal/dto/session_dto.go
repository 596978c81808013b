package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookSessionRequest struct {
	ReceiverId uuid.UUID `json:"receiver_id" validate:"required"`
	Topic      string    `json:"topic" validate:"required,min=3,max=200"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	Duration   int       `json:"duration" validate:"required,min=15,max=480"`
	Notes      string    `json:"notes" validate:"max=1000"`
}

type UpdateSessionStatusRequest struct {
	NewStatus string `json:"new_status" validate:"required,oneof=accepted cancelled completed"`
}

type SessionParticipant struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Level    int       `json:"level"`
}

type SessionResponse struct {
	Id        uuid.UUID           `json:"id"`
	Sender    *SessionParticipant `json:"sender"`
	Receiver  *SessionParticipant `json:"receiver"`
	Topic     string              `json:"topic"`
	StartTime time.Time           `json:"start_time"`
	Duration  int                 `json:"duration"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}
