package bootstrap

import (
	"context"
	"log"
	"strings"

	"collabhub-be/internal/config"
	"collabhub-be/internal/controller"
	"collabhub-be/internal/handler"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/pkg/mailer"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/internal/service"
	"collabhub-be/internal/websocket"
	"collabhub-be/pkg/activity"
	"collabhub-be/pkg/gamification"
	"collabhub-be/pkg/llm"
	"collabhub-be/pkg/llm/factory"
	"collabhub-be/pkg/matching"
	"collabhub-be/pkg/metrics"
	"collabhub-be/pkg/mlclient"
	pktNats "collabhub-be/pkg/nats"
	"collabhub-be/pkg/realtime"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController           controller.IAuthController
	UserController           controller.IUserController
	RecommendationController controller.IRecommendationController
	SessionController        controller.ISessionController
	RatingController         controller.IRatingController
	AIController             controller.IAIController
	AnalyticsController      controller.IAnalyticsController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	NotificationService service.INotificationService
	WebSocketHub        *websocket.Hub
	RealtimeBus         *realtime.Bus

	Metrics *metrics.Manager
	Logger  logger.ILogger

	pubSub *gochannel.GoChannel
	nc     *nats.Conn
	natsSb *pktNats.Subscriber
	rdb    *redis.Client
}

// NewContainer wires every service against db. NATS, Redis, SMTP, the LLM
// and the ML service are optional: when unset or unreachable the container
// logs a warning and runs without them.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	// AI calls run up to cfg.Ai.Timeout, so the latency buckets reach a minute.
	metricsManager := metrics.NewManager(metrics.WithHistogramBuckets([]float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}))
	ledger := gamification.NewLedger()
	auth := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
		sysLogger,
	)

	// 2. Event bus (NATS JetStream)
	var (
		nc        *nats.Conn
		natsPub   *pktNats.Publisher
		natsSub   *pktNats.Subscriber
		natsError error
	)
	if cfg.App.NatsURL != "" {
		nc, natsError = pktNats.Connect(cfg.App.NatsURL)
		if natsError == nil {
			natsPub, natsError = pktNats.NewPublisher(nc)
		}
		if natsError == nil {
			natsSub, natsError = pktNats.NewSubscriber(nc, sysLogger)
		}
		if natsError != nil {
			log.Printf("[WARN] NATS unavailable, domain events disabled: %v", natsError)
			natsPub, natsSub = nil, nil
		}
	}
	activityPublisher := activity.NewNatsPublisher(natsPub, sysLogger)

	// 3. Redis + WebSocket hub
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis, hub runs single-instance: %v", err)
			rdb.Close()
			rdb = nil
		}
	}
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	wsHub := websocket.NewHub(rdb, wsLogger)

	pubSub := realtime.NewPubSub()
	bus := realtime.NewBus(pubSub, cfg.App.RealtimeTopic, wsLogger)

	// 4. AI collaborators
	var llmProvider llm.LLMProvider
	provider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.OllamaURL,
		APIKey:   cfg.Keys.GoogleGemini,
		Timeout:  cfg.Ai.Timeout,
	})
	if err != nil {
		log.Printf("[WARN] LLM provider disabled, roadmap and chat use offline answers: %v", err)
	} else {
		llmProvider = provider
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	var (
		oracle matching.RelevanceOracle
		ml     service.MLService
	)
	if url := strings.TrimSpace(cfg.Ai.MLServiceURL); url != "" {
		client := mlclient.New(url, cfg.Ai.Timeout)
		oracle, ml = client, client
	}

	// 5. Caches
	matchCache := memory.NewMatchCache(cfg.Rules.AIMatchCacheTTL)
	quizStore := memory.NewQuizStore(cfg.Rules.QuizTTL)

	// 6. Services
	ranker := matching.NewRanker(matching.WithAIMatchScore(cfg.Rules.AIMatchScore))

	authService := service.NewAuthService(uowFactory, activityPublisher, cfg.App.JwtSecret, cfg.App.JwtTTL)
	userService := service.NewUserService(uowFactory, matchCache, cfg.Rules)
	recommendationService := service.NewRecommendationService(uowFactory, ranker, oracle, matchCache, metricsManager, sysLogger)
	sessionService := service.NewSessionService(uowFactory, ledger, bus, emailService, activityPublisher, metricsManager, sysLogger, cfg.Rules)
	ratingService := service.NewRatingService(uowFactory, ledger, bus, activityPublisher, metricsManager, sysLogger, cfg.Rules)
	notificationService := service.NewNotificationService(uowFactory, natsSub, bus, wsLogger)
	aiService := service.NewAIService(uowFactory, llmProvider, ml, matchCache, metricsManager, sysLogger)
	quizService := service.NewQuizService(uowFactory, quizStore, ledger, activityPublisher, metricsManager, sysLogger, cfg.Rules)
	analyticsService := service.NewAnalyticsService(uowFactory)

	return &Container{
		AuthController:           controller.NewAuthController(authService),
		UserController:           controller.NewUserController(userService, auth),
		RecommendationController: controller.NewRecommendationController(recommendationService, auth),
		SessionController:        controller.NewSessionController(sessionService, auth),
		RatingController:         controller.NewRatingController(ratingService, auth),
		AIController:             controller.NewAIController(aiService, quizService, auth),
		AnalyticsController:      controller.NewAnalyticsController(analyticsService, auth),

		NotificationHandler: handler.NewNotificationHandler(notificationService, wsHub, cfg.App.JwtSecret, wsLogger),
		NotificationService: notificationService,
		WebSocketHub:        wsHub,
		RealtimeBus:         bus,

		Metrics: metricsManager,
		Logger:  sysLogger,

		pubSub: pubSub,
		nc:     nc,
		natsSb: natsSub,
		rdb:    rdb,
	}
}

// Start runs the background workers: the websocket hub, the relay from the
// in-process bus into the hub and the level-up subscriber.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	go func() {
		if err := c.RealtimeBus.Relay(ctx, c.WebSocketHub); err != nil {
			c.Logger.Error("BOOTSTRAP", "Realtime relay stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	return c.NotificationService.Start(ctx)
}

func (c *Container) Close() {
	if c.natsSb != nil {
		c.natsSb.Close()
	}
	if c.nc != nil {
		c.nc.Drain()
	}
	if c.pubSub != nil {
		c.pubSub.Close()
	}
	if c.rdb != nil {
		c.rdb.Close()
	}
}
