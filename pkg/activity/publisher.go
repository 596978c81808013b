package activity

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/logger"
	pkgEvents "collabhub-be/pkg/events"
	pktNats "collabhub-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	EventUserRegistered    = "USER_REGISTERED"
	EventSessionRequested  = "SESSION_REQUESTED"
	EventSessionTransition = "SESSION_STATUS_CHANGED"
	EventRatingSubmitted   = "RATING_SUBMITTED"
	EventLevelUp           = "LEVEL_UP"
	EventSkillVerified     = "SKILL_VERIFIED"
)

// Publisher abstracts domain event publishing for the engine. Publishing is
// best effort: failures are logged, never returned.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, user *entity.User)
	PublishSessionRequested(ctx context.Context, session *entity.Session)
	PublishSessionTransition(ctx context.Context, session *entity.Session, from entity.SessionStatus, actorId uuid.UUID)
	PublishRatingSubmitted(ctx context.Context, rating *entity.Rating)
	PublishLevelUp(ctx context.Context, userId uuid.UUID, level, xp int)
	PublishSkillVerified(ctx context.Context, userId uuid.UUID, skill string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher accepts a nil publisher, in which case every call is a no-op.
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) PublishUserRegistered(ctx context.Context, user *entity.User) {
	p.publish(ctx, EventUserRegistered, map[string]interface{}{
		"user_id":   user.Id.String(),
		"username":  user.Username,
		"full_name": user.FullName,
	})
}

func (p *NatsPublisher) PublishSessionRequested(ctx context.Context, session *entity.Session) {
	p.publish(ctx, EventSessionRequested, map[string]interface{}{
		"session_id":  session.Id.String(),
		"sender_id":   session.SenderId.String(),
		"receiver_id": session.ReceiverId.String(),
		"topic":       session.Topic,
		"start_time":  session.StartTime,
	})
}

func (p *NatsPublisher) PublishSessionTransition(ctx context.Context, session *entity.Session, from entity.SessionStatus, actorId uuid.UUID) {
	p.publish(ctx, EventSessionTransition, map[string]interface{}{
		"session_id":  session.Id.String(),
		"sender_id":   session.SenderId.String(),
		"receiver_id": session.ReceiverId.String(),
		"actor_id":    actorId.String(),
		"from":        string(from),
		"to":          string(session.Status),
	})
}

func (p *NatsPublisher) PublishRatingSubmitted(ctx context.Context, rating *entity.Rating) {
	p.publish(ctx, EventRatingSubmitted, map[string]interface{}{
		"rating_id":     rating.Id.String(),
		"rater_id":      rating.RaterId.String(),
		"rated_user_id": rating.RatedUserId.String(),
		"score":         rating.Score,
	})
}

func (p *NatsPublisher) PublishLevelUp(ctx context.Context, userId uuid.UUID, level, xp int) {
	p.publish(ctx, EventLevelUp, map[string]interface{}{
		"user_id": userId.String(),
		"level":   level,
		"xp":      xp,
	})
}

func (p *NatsPublisher) PublishSkillVerified(ctx context.Context, userId uuid.UUID, skill string) {
	p.publish(ctx, EventSkillVerified, map[string]interface{}{
		"user_id": userId.String(),
		"skill":   skill,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	if err := p.publisher.Publish(ctx, pkgEvents.New(eventType, data)); err != nil {
		p.logger.Error("ACTIVITY", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
