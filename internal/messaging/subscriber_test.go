package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/mocks/adapter"
)

type subscriberHarness struct {
	ctrl    *gomock.Controller
	sub     Subscriber
	push    chan adapter.MessageHandler
	consCtx *mocks.MockConsumeContext
}

func newSubscriberHarness(t *testing.T) *subscriberHarness {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	consumer := mocks.NewMockNatsConsumer(ctrl)
	consCtx := mocks.NewMockConsumeContext(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), "REWARD_EVENTS", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cfg jetstream.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "distributor", cfg.Durable)
			assert.Equal(t, jetstream.AckExplicitPolicy, cfg.AckPolicy)
			assert.Equal(t, SubjectVoteAccepted, cfg.FilterSubject)
			return consumer, nil
		})
	consumer.EXPECT().Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "distributor"}, nil)

	push := make(chan adapter.MessageHandler, 1)
	consumer.EXPECT().Consume(gomock.Any()).
		DoAndReturn(func(h adapter.MessageHandler, _ ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			push <- h
			return consCtx, nil
		})
	consCtx.EXPECT().Stop()

	sub, err := NewSubscriber(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	return &subscriberHarness{ctrl: ctrl, sub: sub, push: push, consCtx: consCtx}
}

func TestSubscribeVoteAccepted(t *testing.T) {
	h := newSubscriberHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	received := make(chan *domain.RewardEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- h.sub.SubscribeVoteAccepted(ctx, func(_ context.Context, event *domain.RewardEvent) error {
			received <- event
			return nil
		})
	}()

	deliver := <-h.push

	payload, err := json.Marshal(testEvent())
	require.NoError(t, err)

	msg := mocks.NewMockJetStreamMessage(h.ctrl)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil)
	msg.EXPECT().Data().Return(payload)
	msg.EXPECT().Ack().Return(nil)
	deliver(msg)

	event := <-received
	assert.Equal(t, testEvent().VoteID, event.VoteID)
	assert.Equal(t, int64(60), event.Amount)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSubscribeHandlerFailureNaks(t *testing.T) {
	h := newSubscriberHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	naked := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- h.sub.SubscribeVoteAccepted(ctx, func(context.Context, *domain.RewardEvent) error {
			return errors.New("db down")
		})
	}()

	deliver := <-h.push

	payload, err := json.Marshal(testEvent())
	require.NoError(t, err)

	msg := mocks.NewMockJetStreamMessage(h.ctrl)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 2}, nil)
	msg.EXPECT().Data().Return(payload)
	msg.EXPECT().Nak().DoAndReturn(func() error {
		close(naked)
		return nil
	})
	deliver(msg)

	<-naked
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSubscribeMalformedPayloadTerminates(t *testing.T) {
	h := newSubscriberHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	terminated := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- h.sub.SubscribeVoteAccepted(ctx, func(context.Context, *domain.RewardEvent) error {
			t.Error("handler must not run for malformed payloads")
			return nil
		})
	}()

	deliver := <-h.push

	msg := mocks.NewMockJetStreamMessage(h.ctrl)
	msg.EXPECT().Metadata().Return(nil, errors.New("no metadata"))
	msg.EXPECT().Data().Return([]byte("not json"))
	msg.EXPECT().Term().DoAndReturn(func() error {
		close(terminated)
		return nil
	})
	deliver(msg)

	<-terminated
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
