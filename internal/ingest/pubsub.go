package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// JobTypeRefresh is the Pub/Sub job type that triggers one ingestion cycle.
const JobTypeRefresh = "station_refresh"

// RefreshMessage is the payload of a refresh-trigger message.
type RefreshMessage struct {
	JobType string `json:"job_type"`
}

// PubSubConfig holds configuration for the refresh subscriber.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Scheduler        *Scheduler
	Logger           zerolog.Logger
}

// PubSubHandler triggers ingestion cycles from Pub/Sub messages. Triggered
// cycles go through the scheduler's single-flight guard like every other
// trigger source.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	scheduler        *Scheduler
	logger           zerolog.Logger
}

// NewPubSubHandler creates a new refresh subscriber.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = 1
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		scheduler:        cfg.Scheduler,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing refresh messages until the context is cancelled.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting refresh subscriber")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	logger := h.logger.With().
		Str("message_id", msg.ID).
		Logger()

	var refreshMsg RefreshMessage
	if err := json.Unmarshal(msg.Data, &refreshMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	if refreshMsg.JobType != JobTypeRefresh {
		logger.Warn().Str("job_type", refreshMsg.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}

	started := time.Now()
	if err := h.scheduler.RunCycle(ctx); err != nil {
		logger.Error().Err(err).Msg("triggered ingestion cycle failed")
		msg.Nack()
		return
	}

	logger.Info().
		Dur("duration", time.Since(started)).
		Msg("triggered ingestion cycle completed")
	msg.Ack()
}
