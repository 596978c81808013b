package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/testutil"
	"collabhub-be/pkg/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	ids   []uuid.UUID
	err   error
	calls int
	seen  []matching.Profile
}

func (o *stubOracle) Rank(_ context.Context, _ string, pool []matching.Profile) ([]uuid.UUID, error) {
	o.calls++
	o.seen = pool
	return o.ids, o.err
}

func TestRecommendationService_Recommend(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewRecommendationService(e.factory, matching.NewRanker(), nil, nil, nil, e.log)

	viewer := testutil.CreateUser(t, e.db, "viewer", []string{"Python"}, []string{"Go", "Docker"})
	both := testutil.CreateUser(t, e.db, "both", []string{"Go", "Docker"}, nil)
	mutual := testutil.CreateUser(t, e.db, "mutual", []string{"Go"}, []string{"Python"})
	testutil.CreateUser(t, e.db, "nomatch", []string{"Java"}, []string{"Python"})
	testutil.CreateUser(t, e.db, "lowercase", []string{"docker"}, []string{"Python"})

	res, err := svc.Recommend(ctx, viewer.Id)
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, both.Id, res[0].Id)
	assert.Equal(t, 20, res[0].MatchScore)
	assert.Equal(t, mutual.Id, res[1].Id)
	assert.Equal(t, 15, res[1].MatchScore)
	assert.Equal(t, []string{"Go"}, res[1].MatchingSkills)
	assert.Equal(t, string(entity.MatchSourceSkill), res[1].Source)
}

func TestRecommendationService_RecommendAI(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, oracle matching.RelevanceOracle) (IRecommendationService, *entity.User, *entity.User, *entity.User) {
		e := newEnv(t)
		svc := NewRecommendationService(e.factory, matching.NewRanker(matching.WithAIMatchScore(90)), oracle, memory.NewMatchCache(time.Minute), nil, e.log)
		viewer := testutil.CreateUser(t, e.db, "viewer", nil, []string{"Go"})
		gopher := testutil.CreateUser(t, e.db, "gopher", []string{"Go"}, nil)
		designer := testutil.CreateUser(t, e.db, "designer", []string{"Figma"}, nil)
		return svc, viewer, gopher, designer
	}

	t.Run("oracle matches come first with the flat score", func(t *testing.T) {
		oracle := &stubOracle{}
		svc, viewer, gopher, designer := setup(t, oracle)
		oracle.ids = []uuid.UUID{designer.Id, viewer.Id, uuid.New()}

		res, err := svc.RecommendAI(ctx, viewer.Id, "someone creative")
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, designer.Id, res[0].Id)
		assert.Equal(t, 90, res[0].MatchScore)
		assert.Equal(t, string(entity.MatchSourceAI), res[0].Source)
		assert.Equal(t, []string{}, res[0].MatchingSkills)

		assert.Equal(t, gopher.Id, res[1].Id)
		assert.Equal(t, string(entity.MatchSourceSkill), res[1].Source)

		for _, p := range oracle.seen {
			assert.NotEqual(t, viewer.Id, p.Id)
		}
	})

	t.Run("answers are cached per viewer and query", func(t *testing.T) {
		oracle := &stubOracle{}
		svc, viewer, gopher, _ := setup(t, oracle)
		oracle.ids = []uuid.UUID{gopher.Id}

		_, err := svc.RecommendAI(ctx, viewer.Id, "Go mentor")
		require.NoError(t, err)
		res, err := svc.RecommendAI(ctx, viewer.Id, "  go MENTOR ")
		require.NoError(t, err)

		assert.Equal(t, 1, oracle.calls)
		require.Len(t, res, 1)
		assert.Equal(t, string(entity.MatchSourceAI), res[0].Source)
		assert.Equal(t, []string{"Go"}, res[0].MatchingSkills)
	})

	t.Run("oracle failure falls back to skill matches", func(t *testing.T) {
		oracle := &stubOracle{err: errors.New("ml service down")}
		svc, viewer, gopher, _ := setup(t, oracle)

		res, err := svc.RecommendAI(ctx, viewer.Id, "anyone")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, gopher.Id, res[0].Id)
		assert.Equal(t, string(entity.MatchSourceSkill), res[0].Source)
	})

	t.Run("query is required", func(t *testing.T) {
		svc, viewer, _, _ := setup(t, &stubOracle{})
		_, err := svc.RecommendAI(ctx, viewer.Id, " ")
		assert.Error(t, err)
	})
}
