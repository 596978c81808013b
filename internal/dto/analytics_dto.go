package dto

type DailyStat struct {
	Date              string `json:"date"`
	XPEarned          int    `json:"xp_earned"`
	SessionsCompleted int    `json:"sessions_completed"`
}

type AnalyticsResponse struct {
	Days              []DailyStat `json:"days"`
	TotalXP           int         `json:"total_xp"`
	Level             int         `json:"level"`
	SessionsCompleted int64       `json:"sessions_completed"`
	AverageRating     float64     `json:"average_rating"`
	RatingCount       int64       `json:"rating_count"`
}
