package dto

type MatchCandidateResponse struct {
	UserProfileResponse
	MatchScore     int      `json:"match_score"`
	MatchingSkills []string `json:"matching_skills"`
	Source         string   `json:"source"`
}

type AIRecommendationRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}
