package service

import (
	"context"
	"strings"
	"time"

	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/matching"
	"collabhub-be/pkg/metrics"

	"github.com/google/uuid"
)

type IRecommendationService interface {
	// Recommend ranks every other user by skill overlap with the viewer.
	Recommend(ctx context.Context, viewerId uuid.UUID) ([]*dto.MatchCandidateResponse, error)
	// RecommendAI puts the oracle's semantic matches first, then the skill matches.
	RecommendAI(ctx context.Context, viewerId uuid.UUID, query string) ([]*dto.MatchCandidateResponse, error)
}

type recommendationService struct {
	uowFactory unitofwork.RepositoryFactory
	ranker     *matching.Ranker
	oracle     matching.RelevanceOracle
	cache      *memory.MatchCache
	metrics    *metrics.Manager
	logger     logger.ILogger
}

func NewRecommendationService(uowFactory unitofwork.RepositoryFactory, ranker *matching.Ranker, oracle matching.RelevanceOracle, cache *memory.MatchCache, m *metrics.Manager, log logger.ILogger) IRecommendationService {
	return &recommendationService{
		uowFactory: uowFactory,
		ranker:     ranker,
		oracle:     oracle,
		cache:      cache,
		metrics:    m,
		logger:     log,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, viewerId uuid.UUID) ([]*dto.MatchCandidateResponse, error) {
	viewer, pool, err := s.loadPool(ctx, viewerId)
	if err != nil {
		return nil, err
	}

	candidates := s.ranker.Rank(viewer, pool)
	s.metrics.RecordRecommendations(string(entity.MatchSourceSkill), len(candidates))
	return toCandidateResponses(candidates), nil
}

func (s *recommendationService) RecommendAI(ctx context.Context, viewerId uuid.UUID, query string) ([]*dto.MatchCandidateResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidArgument("query is required")
	}

	viewer, pool, err := s.loadPool(ctx, viewerId)
	if err != nil {
		return nil, err
	}

	skill := s.ranker.Rank(viewer, pool)

	ids, err := s.semanticIDs(ctx, viewerId, query, pool)
	if err != nil {
		// The oracle is optional; the skill ranking still answers the request.
		s.logger.Warn("RECOMMENDATION", "Relevance oracle failed, serving skill matches only", map[string]interface{}{
			"error": err.Error(),
		})
		s.metrics.RecordRecommendations(string(entity.MatchSourceSkill), len(skill))
		return toCandidateResponses(skill), nil
	}

	ai := s.ranker.RankSemantic(viewer, pool, ids)
	blended := matching.Blend(ai, skill)

	s.metrics.RecordRecommendations(string(entity.MatchSourceAI), len(ai))
	s.metrics.RecordRecommendations(string(entity.MatchSourceSkill), len(blended)-len(ai))
	return toCandidateResponses(blended), nil
}

func (s *recommendationService) semanticIDs(ctx context.Context, viewerId uuid.UUID, query string, pool []*entity.User) ([]uuid.UUID, error) {
	if s.cache != nil {
		if ids, ok := s.cache.Get(viewerId, query); ok {
			return ids, nil
		}
	}
	if s.oracle == nil {
		return nil, apperror.InvalidArgument("AI matching is not configured")
	}

	started := time.Now()
	ids, err := s.oracle.Rank(ctx, query, matching.Profiles(pool))
	s.metrics.ObserveExternalCall("ml_match", started, err)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Save(viewerId, query, ids)
	}
	return ids, nil
}

func (s *recommendationService) loadPool(ctx context.Context, viewerId uuid.UUID) (*entity.User, []*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	viewer, err := findUser(ctx, uow, viewerId)
	if err != nil {
		return nil, nil, err
	}

	pool, err := uow.UserRepository().FindAll(ctx,
		specification.ExcludeID{ID: viewerId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, nil, err
	}
	return viewer, pool, nil
}

func toCandidateResponses(candidates []entity.MatchCandidate) []*dto.MatchCandidateResponse {
	out := make([]*dto.MatchCandidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = &dto.MatchCandidateResponse{
			UserProfileResponse: *toUserProfile(c.User),
			MatchScore:          c.MatchScore,
			MatchingSkills:      nonNil(c.MatchingSkills),
			Source:              string(c.Source),
		}
	}
	return out
}
