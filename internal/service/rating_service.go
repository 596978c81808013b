package service

import (
	"context"
	"fmt"
	"strings"

	"collabhub-be/internal/config"
	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/activity"
	"collabhub-be/pkg/gamification"
	"collabhub-be/pkg/metrics"

	"github.com/google/uuid"
)

type IRatingService interface {
	Submit(ctx context.Context, raterId uuid.UUID, req *dto.SubmitRatingRequest) (*dto.RatingResponse, error)
	ListFor(ctx context.Context, userId uuid.UUID) (*dto.UserRatingsResponse, error)
}

type ratingService struct {
	uowFactory unitofwork.RepositoryFactory
	rewards    *rewarder
	delivery   NotificationDelivery
	activity   activity.Publisher
	metrics    *metrics.Manager
	logger     logger.ILogger
	rules      config.Rules
}

func NewRatingService(
	uowFactory unitofwork.RepositoryFactory,
	ledger gamification.Awarder,
	delivery NotificationDelivery,
	publisher activity.Publisher,
	m *metrics.Manager,
	log logger.ILogger,
	rules config.Rules,
) IRatingService {
	return &ratingService{
		uowFactory: uowFactory,
		rewards: &rewarder{
			uowFactory: uowFactory,
			ledger:     ledger,
			activity:   publisher,
			metrics:    m,
			logger:     log,
		},
		delivery: delivery,
		activity: publisher,
		metrics:  m,
		logger:   log,
		rules:    rules,
	}
}

// Submit stores the rating, then pays out the rating rewards. The rewards are
// best effort: a failed award is logged and never undoes the rating.
func (s *ratingService) Submit(ctx context.Context, raterId uuid.UUID, req *dto.SubmitRatingRequest) (*dto.RatingResponse, error) {
	if raterId == req.RatedUserId {
		return nil, apperror.ErrSelfRating
	}
	if req.Score < 1 || req.Score > 5 {
		return nil, apperror.InvalidArgument("score must be between 1 and 5")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rater, err := findUser(ctx, uow, raterId)
	if err != nil {
		return nil, err
	}
	rated, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.RatedUserId})
	if err != nil {
		return nil, err
	}
	if rated == nil {
		return nil, apperror.NotFound("rated user not found")
	}

	rating := &entity.Rating{
		RaterId:     raterId,
		RatedUserId: rated.Id,
		Score:       req.Score,
		Review:      strings.TrimSpace(req.Review),
	}
	if err := uow.RatingRepository().Create(ctx, rating); err != nil {
		return nil, err
	}
	s.metrics.RecordRating(rating.Score)

	if rating.Score >= s.rules.HighRatingThreshold {
		s.bestEffortAward(ctx, rated.Id, s.rules.HighRatingXP, entity.XPReasonRatingReceived, rating.Id)
	}
	s.bestEffortAward(ctx, raterId, s.rules.RaterXP, entity.XPReasonRatingGiven, rating.Id)

	notification := newNotification(rated.Id, &raterId, entity.NotificationTypeRating, fmt.Sprintf("/users/%s", rated.Id),
		"%s rated you %d/5", rater.FullName, rating.Score)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Warn("RATING", "Rating notification not stored", map[string]interface{}{"error": err.Error()})
	} else {
		pushNotification(s.delivery, notification)
	}

	s.activity.PublishRatingSubmitted(ctx, rating)

	rating.Rater = rater
	return toRatingResponse(rating), nil
}

func (s *ratingService) bestEffortAward(ctx context.Context, userId uuid.UUID, amount int, reason entity.XPReason, ratingId uuid.UUID) {
	if _, err := s.rewards.awardAlone(ctx, userId, amount, reason, &ratingId); err != nil {
		s.logger.Error("RATING", "XP award failed", map[string]interface{}{
			"user_id": userId,
			"reason":  reason,
			"error":   err.Error(),
		})
	}
}

func (s *ratingService) ListFor(ctx context.Context, userId uuid.UUID) (*dto.UserRatingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findUser(ctx, uow, userId); err != nil {
		return nil, err
	}

	ratings, err := uow.RatingRepository().FindAll(ctx,
		specification.RatingsFor{UserID: userId},
		specification.WithRater{},
	)
	if err != nil {
		return nil, err
	}
	average, count, err := uow.RatingRepository().AverageFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RatingResponse, len(ratings))
	for i, r := range ratings {
		out[i] = toRatingResponse(r)
	}
	return &dto.UserRatingsResponse{
		Average: average,
		Count:   count,
		Ratings: out,
	}, nil
}

func toRatingResponse(r *entity.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		Id:          r.Id,
		Rater:       toParticipant(r.Rater),
		RatedUserId: r.RatedUserId,
		Score:       r.Score,
		Review:      r.Review,
		CreatedAt:   r.CreatedAt,
	}
}
