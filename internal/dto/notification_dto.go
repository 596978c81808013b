package dto

import "collabhub-be/internal/entity"

type NotificationListResponse struct {
	Notifications []*entity.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// LevelUpFrame is the websocket payload sent when a user reaches a new level.
type LevelUpFrame struct {
	Level   int    `json:"level"`
	XP      int    `json:"xp"`
	Message string `json:"message"`
}
