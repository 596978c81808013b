package entity

type MatchSource string

const (
	MatchSourceSkill MatchSource = "skill"
	MatchSourceAI    MatchSource = "ai"
)

// MatchCandidate is a ranked, per-query projection of a User. Never persisted.
type MatchCandidate struct {
	User           *User
	MatchScore     int
	MatchingSkills []string
	Source         MatchSource
}
