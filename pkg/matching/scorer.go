// Package matching scores and ranks peers by how well their skill profiles
// complement each other.
package matching

import (
	"strings"

	"collabhub-be/internal/entity"
)

const (
	teachingWeight = 10
	mutualWeight   = 5
)

// Result is the outcome of scoring one candidate against a viewer.
type Result struct {
	Score int
	// TeachingOverlap lists the candidate's known skills the viewer wants,
	// in the candidate's order and spelling.
	TeachingOverlap []string
}

// Score compares candidate to viewer. It has no side effects.
func Score(viewer, candidate *entity.User) Result {
	teaching := intersect(candidate.SkillsKnown, viewer.SkillsWanted)
	mutual := intersect(candidate.SkillsWanted, viewer.SkillsKnown)

	return Result{
		Score:           teachingWeight*len(teaching) + mutualWeight*len(mutual),
		TeachingOverlap: teaching,
	}
}

// intersect returns the entries of a found in b. Entries are compared exactly
// after trimming surrounding space; duplicates in a are counted once.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return []string{}
	}

	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[key(s)] = struct{}{}
	}

	out := make([]string, 0)
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		k := key(s)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		if _, ok := set[k]; ok {
			seen[k] = struct{}{}
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func key(s string) string {
	return strings.TrimSpace(s)
}
