// Package booking holds the session lifecycle rules.
package booking

import (
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

type Event string

const (
	EventAccept   Event = "accept"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
	RoleOutsider Role = "outsider"
)

// Transition is one allowed row of the lifecycle table.
type Transition struct {
	From  entity.SessionStatus
	Event Event
	To    entity.SessionStatus
	// Actors allowed to fire the event. Empty means either participant.
	Actors []Role
}

var transitions = []Transition{
	{From: entity.SessionStatusPending, Event: EventAccept, To: entity.SessionStatusAccepted, Actors: []Role{RoleReceiver}},
	{From: entity.SessionStatusPending, Event: EventCancel, To: entity.SessionStatusCancelled},
	{From: entity.SessionStatusAccepted, Event: EventCancel, To: entity.SessionStatusCancelled},
	{From: entity.SessionStatusAccepted, Event: EventComplete, To: entity.SessionStatusCompleted},
}

// ActorRole reports how userId takes part in the session.
func ActorRole(session *entity.Session, userId uuid.UUID) Role {
	switch userId {
	case session.ReceiverId:
		return RoleReceiver
	case session.SenderId:
		return RoleSender
	default:
		return RoleOutsider
	}
}

// Resolve returns the transition for event fired by role on a session in
// status. Outsiders fail with ErrNotAuthorized before the table is consulted.
func Resolve(status entity.SessionStatus, event Event, role Role) (Transition, error) {
	if role == RoleOutsider {
		return Transition{}, apperror.NotAuthorized("only the session participants can change its status")
	}

	for _, t := range transitions {
		if t.From != status || t.Event != event {
			continue
		}
		if !t.allows(role) {
			return Transition{}, apperror.InvalidTransition("only the %s can %s a %s session", t.Actors[0], event, status)
		}
		return t, nil
	}
	return Transition{}, apperror.InvalidTransition("cannot %s a %s session", event, status)
}

func (t Transition) allows(role Role) bool {
	if len(t.Actors) == 0 {
		return true
	}
	for _, r := range t.Actors {
		if r == role {
			return true
		}
	}
	return false
}

// EventForStatus maps a requested target status onto the event that reaches it.
func EventForStatus(target entity.SessionStatus) (Event, error) {
	switch target {
	case entity.SessionStatusAccepted:
		return EventAccept, nil
	case entity.SessionStatusCancelled:
		return EventCancel, nil
	case entity.SessionStatusCompleted:
		return EventComplete, nil
	default:
		return "", apperror.InvalidArgument("unsupported session status %q", target)
	}
}
