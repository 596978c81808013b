package matching

import (
	"sort"

	"collabhub-be/internal/entity"

	"github.com/google/uuid"
)

// DefaultAIMatchScore is the flat score given to oracle-sourced candidates.
const DefaultAIMatchScore = 100

// Option configures a Ranker.
type Option func(*Ranker)

// WithAIMatchScore sets the flat score assigned to AI semantic matches.
func WithAIMatchScore(score int) Option {
	return func(r *Ranker) {
		if score > 0 {
			r.aiMatchScore = score
		}
	}
}

// Ranker orders candidate pools for a viewer. It never mutates its inputs.
type Ranker struct {
	aiMatchScore int
}

func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{aiMatchScore: DefaultAIMatchScore}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Ranker) AIMatchScore() int {
	return r.aiMatchScore
}

// Rank keeps the candidates that can teach the viewer something, scores them
// and sorts by score descending. Equal scores keep pool order.
func (r *Ranker) Rank(viewer *entity.User, pool []*entity.User) []entity.MatchCandidate {
	out := make([]entity.MatchCandidate, 0, len(pool))
	for _, candidate := range pool {
		if candidate == nil || candidate.Id == viewer.Id {
			continue
		}
		res := Score(viewer, candidate)
		if len(res.TeachingOverlap) == 0 {
			continue
		}
		out = append(out, entity.MatchCandidate{
			User:           candidate,
			MatchScore:     res.Score,
			MatchingSkills: res.TeachingOverlap,
			Source:         entity.MatchSourceSkill,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// RankSemantic turns an oracle's ordered ids into candidates with the flat AI
// score, keeping oracle order. Unknown, repeated and self ids are dropped.
func (r *Ranker) RankSemantic(viewer *entity.User, pool []*entity.User, ids []uuid.UUID) []entity.MatchCandidate {
	byID := make(map[uuid.UUID]*entity.User, len(pool))
	for _, u := range pool {
		if u != nil {
			byID[u.Id] = u
		}
	}

	out := make([]entity.MatchCandidate, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == viewer.Id {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		candidate, ok := byID[id]
		if !ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, entity.MatchCandidate{
			User:           candidate,
			MatchScore:     r.aiMatchScore,
			MatchingSkills: Score(viewer, candidate).TeachingOverlap,
			Source:         entity.MatchSourceAI,
		})
	}
	return out
}

// Blend lists AI matches first, then the skill matches not already listed.
func Blend(ai, skill []entity.MatchCandidate) []entity.MatchCandidate {
	out := make([]entity.MatchCandidate, 0, len(ai)+len(skill))
	seen := make(map[uuid.UUID]struct{}, len(ai))
	for _, c := range ai {
		seen[c.User.Id] = struct{}{}
		out = append(out, c)
	}
	for _, c := range skill {
		if _, dup := seen[c.User.Id]; dup {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Profiles projects users into the shape sent to a RelevanceOracle.
func Profiles(users []*entity.User) []Profile {
	out := make([]Profile, 0, len(users))
	for _, u := range users {
		out = append(out, Profile{
			Id:           u.Id,
			FullName:     u.FullName,
			Bio:          u.Bio,
			SkillsKnown:  u.SkillsKnown,
			SkillsWanted: u.SkillsWanted,
		})
	}
	return out
}
