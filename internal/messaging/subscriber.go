package messaging

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
)

// EventHandler is called for each received reward event. A non-nil error
// NAKs the message so JetStream redelivers it.
type EventHandler func(ctx context.Context, event *domain.RewardEvent) error

// Subscriber defines the interface for consuming reward events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeVoteAccepted consumes reward events with a durable consumer
	// until ctx is cancelled
	SubscribeVoteAccepted(ctx context.Context, handler EventHandler) error
	// Close closes the connection
	Close()
}

type subscriber struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	config Config
}

// NewSubscriber creates a new NATS JetStream subscriber
func NewSubscriber(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (Subscriber, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// SubscribeVoteAccepted consumes reward events until ctx is cancelled
func (s *subscriber) SubscribeVoteAccepted(ctx context.Context, handler EventHandler) error {
	logger.Info("Starting reward event subscriber",
		zap.String("stream", s.config.StreamName),
		zap.String("consumer", s.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       s.config.AckWait,
		MaxDeliver:    s.config.MaxDeliver,
		FilterSubject: SubjectVoteAccepted,
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming reward events")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down reward event subscriber")
			return ctx.Err()
		case msg := <-msgChan:
			s.handleMessage(ctx, msg, handler)
		}
	}
}

// handleMessage processes a single NATS message. Unparseable payloads are
// terminated, handler failures are NAKed for redelivery.
func (s *subscriber) handleMessage(ctx context.Context, msg adapter.Message, handler EventHandler) {
	metadata, _ := msg.Metadata()

	var event domain.RewardEvent
	if err := s.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal reward event"))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	deliveries := uint64(1)
	if metadata != nil {
		deliveries = metadata.NumDelivered
	}
	logger.Info("Received reward event",
		zap.String("vote_id", event.VoteID),
		zap.Int64("voter_id", event.VoterID),
		zap.Int64("amount", event.Amount),
		zap.Uint64("deliveryCount", deliveries),
	)

	if err := handler(ctx, &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to process reward event"),
			zap.String("vote_id", event.VoteID))
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (s *subscriber) Close() {
	if s.nc == nil {
		return
	}

	s.nc.Close()
}
