package bootstrap

import (
	"context"
	"fmt"

	"outreach-server/internal/config"
	"outreach-server/internal/events"
	"outreach-server/internal/observability"
	"outreach-server/internal/ratelimit"
	"outreach-server/internal/store"

	analysisHandler "outreach-server/internal/analysis/handler"
	analysisProcessor "outreach-server/internal/analysis/processor"
	"outreach-server/internal/auth/handler"
	"outreach-server/internal/auth/processor"
	campaignHandler "outreach-server/internal/campaign/handler"
	campaignProcessor "outreach-server/internal/campaign/processor"
	chatHandler "outreach-server/internal/chat/handler"
	chatProcessor "outreach-server/internal/chat/processor"
	kafkaClient "outreach-server/internal/clients/kafka"
	"outreach-server/internal/clients/pagemeta"
	redisClient "outreach-server/internal/clients/redis"
	dashboardHandler "outreach-server/internal/dashboard/handler"
	dashboardProcessor "outreach-server/internal/dashboard/processor"
	draftHandler "outreach-server/internal/drafts/handler"
	draftProcessor "outreach-server/internal/drafts/processor"
	messageHandler "outreach-server/internal/messages/handler"
	messageProcessor "outreach-server/internal/messages/processor"
	settingsHandler "outreach-server/internal/settings/handler"
	settingsProcessor "outreach-server/internal/settings/processor"
	teamHandler "outreach-server/internal/team/handler"
	teamProcessor "outreach-server/internal/team/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store    *store.Store
	Logger   *observability.Logger
	Recorder *events.Recorder

	// Handlers
	AuthHandler      handler.Handler
	AnalysisHandler  analysisHandler.Handler
	DraftHandler     draftHandler.Handler
	CampaignHandler  campaignHandler.Handler
	MessageHandler   messageHandler.Handler
	SettingsHandler  settingsHandler.Handler
	TeamHandler      teamHandler.Handler
	DashboardHandler dashboardHandler.Handler
	ChatHandler      chatHandler.Handler

	RateLimiter *ratelimit.Service

	// Clients kept for cleanup
	KafkaProducer *kafkaClient.Producer
	RedisClient   *redisClient.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis backs token revocation and rate limiting. Disabled Redis leaves both in degraded mode.
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	deps.RateLimiter = ratelimit.NewService(deps.RedisClient, cfg.Server.RateLimitRPM, logger)

	// Every audit entry is mirrored onto Kafka when brokers are configured
	var publisher events.Publisher
	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		publisher = deps.KafkaProducer
	} else {
		logger.Info(ctx, "Kafka brokers not configured, audit events will not be published")
	}
	deps.Recorder = events.NewRecorder(deps.Store, publisher, logger)

	// Auth
	authProc := processor.New(deps.Store, deps.RedisClient, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = handler.New(authProc, logger)

	// Page intake
	fetcher := pagemeta.NewClient(cfg.Outreach.PageFetchTimeout, logger)
	analysisProc := analysisProcessor.New(deps.Store, fetcher, deps.Recorder, analysisProcessor.NewScorer(nil), logger)
	deps.AnalysisHandler = analysisHandler.New(analysisProc, logger)

	// Drafts and campaigns
	draftProc := draftProcessor.New(deps.Store, deps.Recorder, cfg.Outreach.AgencyName, logger)
	deps.DraftHandler = draftHandler.New(draftProc, logger)

	campaignProc := campaignProcessor.New(deps.Store, deps.Recorder, logger)
	deps.CampaignHandler = campaignHandler.New(campaignProc, logger)

	// Messages
	messageProc := messageProcessor.New(deps.Store, logger)
	deps.MessageHandler = messageHandler.New(messageProc, logger)

	// Settings, team and dashboard
	settingsProc := settingsProcessor.New(deps.Store, deps.Recorder, logger)
	deps.SettingsHandler = settingsHandler.New(settingsProc, logger)

	teamProc := teamProcessor.New(deps.Store, deps.Recorder, logger)
	deps.TeamHandler = teamHandler.New(teamProc, logger)

	dashboardProc := dashboardProcessor.New(deps.Store, logger)
	deps.DashboardHandler = dashboardHandler.New(dashboardProc, logger)

	// Chat
	provider, err := chatProcessor.NewProvider(cfg.Services.ChatProvider, cfg.Services.OpenAIAPIKey, cfg.Services.GoogleAIAPIKey, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to create chat provider: %w", err)
	}
	if provider == nil {
		logger.Warn(ctx, fmt.Sprintf("chat provider %s has no API key, chat is disabled", cfg.Services.ChatProvider))
	}
	deps.ChatHandler = chatHandler.New(chatProcessor.New(provider, logger), logger)

	return deps, nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	ctx := context.Background()

	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close Kafka producer", err)
		}
	}
	if err := d.RedisClient.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close Redis client", err)
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close database", err)
		}
	}
}
