package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeSession NotificationType = "SESSION"
	NotificationTypeMatch   NotificationType = "MATCH"
	NotificationTypeRating  NotificationType = "RATING"
	NotificationTypeSystem  NotificationType = "SYSTEM"
)

type Notification struct {
	Id          uuid.UUID        `json:"id"`
	RecipientId uuid.UUID        `json:"recipient_id"`
	SenderId    *uuid.UUID       `json:"sender_id,omitempty"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	Link        string           `json:"link,omitempty"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
