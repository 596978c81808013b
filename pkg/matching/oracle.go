package matching

import (
	"context"

	"github.com/google/uuid"
)

// Profile is the minimal view of a user sent to a relevance oracle.
type Profile struct {
	Id           uuid.UUID
	FullName     string
	Bio          string
	SkillsKnown  []string
	SkillsWanted []string
}

// RelevanceOracle orders a candidate pool against a free-text query.
// Ids it returns that are not in the pool are ignored by the ranker.
type RelevanceOracle interface {
	Rank(ctx context.Context, query string, pool []Profile) ([]uuid.UUID, error)
}
