package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"outreach-server/internal/clients/mail"
	"outreach-server/internal/config"
	"outreach-server/internal/email"
	messageProcessor "outreach-server/internal/messages/processor"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"
	"outreach-server/internal/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !cfg.Kafka.Enabled() {
		logger.Fatal(ctx, "KAFKA_BROKERS is not set, nothing to consume", nil)
	}

	logger.Info(ctx, "Starting Kafka event worker...")

	dataStore, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize store", err)
	}
	defer dataStore.Close()

	var consumers []workers.EventConsumer

	// Inbound replies. Each processor reads with its own consumer group so
	// both see every event.
	messages := messageProcessor.New(dataStore, logger)
	replyConfig := workers.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup+"-replies", cfg.Kafka.Topic)
	replyConfig.NumWorkers = cfg.WorkerPool.ReplyWorkers
	consumers = append(consumers, workers.NewConsumer(replyConfig, messageProcessor.NewReplyEventProcessor(&messages, logger), logger))

	// Team notification emails
	if cfg.Services.ResendAPIKey != "" {
		mailer, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
		if err != nil {
			logger.Fatal(ctx, "failed to create mail client", err)
		}
		emailService := email.New(mailer, cfg.Services.DefaultEmailSender, cfg.Outreach.AgencyName, cfg.Services.WebAppURI, logger)
		emailConfig := workers.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup+"-email", cfg.Kafka.Topic)
		emailConfig.NumWorkers = cfg.WorkerPool.EmailWorkers
		consumers = append(consumers, workers.NewConsumer(emailConfig, email.NewEmailEventProcessor(emailService, logger), logger))
	} else {
		logger.Warn(ctx, "RESEND_API_KEY is not set, notification emails are disabled")
	}

	logger.Info(ctx, fmt.Sprintf("Kafka worker configuration: brokers=%v topic=%s consumers=%d reply_workers=%d email_workers=%d",
		cfg.Kafka.Brokers, cfg.Kafka.Topic, len(consumers), cfg.WorkerPool.ReplyWorkers, cfg.WorkerPool.EmailWorkers))

	// Revocation rows outlive their tokens; the sweeper stops with ctx
	go workers.NewSweeper(dataStore, cfg.WorkerPool.TokenSweepInterval, logger).Run(ctx)

	var wg sync.WaitGroup
	for _, c := range consumers {
		wg.Add(1)
		go func(c workers.EventConsumer) {
			defer wg.Done()
			if err := c.Start(ctx); err != nil {
				logger.Error(ctx, "event consumer stopped with error", err)
			}
		}(c)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.Info(ctx, "Received shutdown signal, draining workers...")

	for _, c := range consumers {
		c.Stop()
	}
	wg.Wait()
	cancel()

	logger.Info(ctx, "Kafka event worker stopped")
}
