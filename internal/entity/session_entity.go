package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusAccepted  SessionStatus = "accepted"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// Session is a mentoring slot requested by SenderId from ReceiverId.
type Session struct {
	Id         uuid.UUID
	SenderId   uuid.UUID
	ReceiverId uuid.UUID
	Topic      string
	StartTime  time.Time
	Duration   int // minutes
	Status     SessionStatus
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Populated on reads that join the participants.
	Sender   *User
	Receiver *User
}

// IsParticipant reports whether userId is the sender or the receiver.
func (s *Session) IsParticipant(userId uuid.UUID) bool {
	return s.SenderId == userId || s.ReceiverId == userId
}

// Counterpart returns the other participant of the session.
func (s *Session) Counterpart(userId uuid.UUID) uuid.UUID {
	if s.SenderId == userId {
		return s.ReceiverId
	}
	return s.SenderId
}
