package service

import (
	"context"
	"strings"
	"time"

	"collabhub-be/internal/config"
	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/pkg/mailer"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/activity"
	"collabhub-be/pkg/booking"
	"collabhub-be/pkg/gamification"
	"collabhub-be/pkg/metrics"

	"github.com/google/uuid"
)

const sessionsLink = "/sessions"

type ISessionService interface {
	Book(ctx context.Context, senderId uuid.UUID, req *dto.BookSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	UpdateStatus(ctx context.Context, actorId, sessionId uuid.UUID, newStatus entity.SessionStatus) (*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	rewards    *rewarder
	delivery   NotificationDelivery
	email      mailer.IEmailService
	activity   activity.Publisher
	metrics    *metrics.Manager
	logger     logger.ILogger
	rules      config.Rules
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	ledger gamification.Awarder,
	delivery NotificationDelivery,
	email mailer.IEmailService,
	publisher activity.Publisher,
	m *metrics.Manager,
	log logger.ILogger,
	rules config.Rules,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		rewards: &rewarder{
			uowFactory: uowFactory,
			ledger:     ledger,
			activity:   publisher,
			metrics:    m,
			logger:     log,
		},
		delivery: delivery,
		email:    email,
		activity: publisher,
		metrics:  m,
		logger:   log,
		rules:    rules,
	}
}

func (s *sessionService) Book(ctx context.Context, senderId uuid.UUID, req *dto.BookSessionRequest) (*dto.SessionResponse, error) {
	if req.ReceiverId == senderId {
		return nil, apperror.InvalidArgument("you cannot book a session with yourself")
	}
	if req.StartTime.IsZero() {
		return nil, apperror.InvalidArgument("start time is required")
	}
	if req.Duration <= 0 {
		return nil, apperror.InvalidArgument("duration must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sender, err := findUser(ctx, uow, senderId)
	if err != nil {
		return nil, err
	}
	receiver, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.ReceiverId})
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, apperror.NotFound("mentor not found")
	}

	session := &entity.Session{
		SenderId:   senderId,
		ReceiverId: receiver.Id,
		Topic:      strings.TrimSpace(req.Topic),
		StartTime:  req.StartTime.UTC(),
		Duration:   req.Duration,
		Status:     entity.SessionStatusPending,
		Notes:      strings.TrimSpace(req.Notes),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	notification := newNotification(receiver.Id, &senderId, entity.NotificationTypeSession, sessionsLink,
		"%s requested a session: %s", sender.FullName, session.Topic)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	pushNotification(s.delivery, notification)
	s.activity.PublishSessionRequested(ctx, session)

	go func(to, from, topic string, start time.Time, duration int) {
		if err := s.email.SendSessionRequest(to, from, topic, start, duration); err != nil {
			s.logger.Warn("SESSION", "Session request email not sent", map[string]interface{}{"error": err.Error()})
		}
	}(receiver.Email, sender.FullName, session.Topic, session.StartTime, session.Duration)

	session.Sender = sender
	session.Receiver = receiver
	return toSessionResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.InvolvingUser{UserID: userId},
		specification.WithParticipants{},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = toSessionResponse(session)
	}
	return out, nil
}

// UpdateStatus fires the event that reaches newStatus. The status change, its
// XP awards and the counterpart's notification commit together; a concurrent
// request that moved the session first makes this one fail with
// ErrInvalidTransition and award nothing.
func (s *sessionService) UpdateStatus(ctx context.Context, actorId, sessionId uuid.UUID, newStatus entity.SessionStatus) (*dto.SessionResponse, error) {
	event, err := booking.EventForStatus(newStatus)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId}, specification.WithParticipants{})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session not found")
	}

	transition, err := booking.Resolve(session.Status, event, booking.ActorRole(session, actorId))
	if err != nil {
		s.metrics.RecordSessionTransition(string(newStatus), "rejected")
		return nil, err
	}

	moved, err := uow.SessionRepository().TransitionStatus(ctx, session.Id, transition.From, transition.To)
	if err != nil {
		return nil, err
	}
	if !moved {
		s.metrics.RecordSessionTransition(string(newStatus), "conflict")
		return nil, apperror.InvalidTransition("session was updated by another request")
	}

	grants, err := s.sessionAwards(ctx, uow, session, event)
	if err != nil {
		return nil, err
	}

	actor, counterpart := session.Sender, session.Receiver
	if actorId == session.ReceiverId {
		actor, counterpart = session.Receiver, session.Sender
	}
	notification := newNotification(counterpart.Id, &actorId, entity.NotificationTypeSession, sessionsLink,
		transitionMessage(event), actor.FullName, session.Topic)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	from := session.Status
	session.Status = transition.To

	pushNotification(s.delivery, notification)
	s.rewards.announce(ctx, grants...)
	s.metrics.RecordSessionTransition(string(transition.To), "ok")
	s.activity.PublishSessionTransition(ctx, session, from, actorId)

	go func(to, name, topic, status string) {
		if err := s.email.SendSessionStatus(to, name, topic, status); err != nil {
			s.logger.Warn("SESSION", "Session status email not sent", map[string]interface{}{"error": err.Error()})
		}
	}(counterpart.Email, actor.FullName, session.Topic, string(transition.To))

	return toSessionResponse(session), nil
}

// sessionAwards applies the XP side effects of event inside uow.
func (s *sessionService) sessionAwards(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.Session, event booking.Event) ([]grant, error) {
	type award struct {
		userId uuid.UUID
		amount int
		reason entity.XPReason
	}

	var awards []award
	switch event {
	case booking.EventAccept:
		awards = []award{
			{session.ReceiverId, s.rules.AcceptReceiverXP, entity.XPReasonSessionAccepted},
		}
	case booking.EventComplete:
		awards = []award{
			{session.ReceiverId, s.rules.CompleteReceiverXP, entity.XPReasonSessionCompleted},
			{session.SenderId, s.rules.CompleteSenderXP, entity.XPReasonSessionCompleted},
		}
	}

	grants := make([]grant, 0, len(awards))
	for _, a := range awards {
		result, err := s.rewards.ledger.AddXP(ctx, uow, a.userId, a.amount, a.reason, &session.Id)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant{reason: a.reason, award: result})
	}
	return grants, nil
}

func transitionMessage(event booking.Event) string {
	switch event {
	case booking.EventAccept:
		return "%s accepted your session request: %s"
	case booking.EventComplete:
		return "%s marked your session as completed: %s"
	default:
		return "%s cancelled the session: %s"
	}
}

func toSessionResponse(session *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		Sender:    toParticipant(session.Sender),
		Receiver:  toParticipant(session.Receiver),
		Topic:     session.Topic,
		StartTime: session.StartTime,
		Duration:  session.Duration,
		Status:    string(session.Status),
		Notes:     session.Notes,
		CreatedAt: session.CreatedAt,
	}
}
