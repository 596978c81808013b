// Package realtime carries pushes from request handlers to connected clients
// over an in-process watermill topic.
package realtime

import (
	"context"
	"encoding/json"

	"collabhub-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	FrameNotification = "notification"
	FrameLevelUp      = "level_up"
)

// Delivery writes an encoded frame to every connection of a user.
type Delivery interface {
	Deliver(userID uuid.UUID, frame []byte)
}

// Frame is what clients receive on the socket.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type envelope struct {
	RecipientID uuid.UUID       `json:"recipient_id"`
	Frame       json.RawMessage `json:"frame"`
}

// Bus publishes pushes without waiting for delivery.
type Bus struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewBus(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) *Bus {
	return &Bus{pubSub: pubSub, topic: topic, logger: log}
}

// Push queues a frame for userID. Errors are logged; the durable record of
// anything user-visible is the caller's responsibility.
func (b *Bus) Push(userID uuid.UUID, frameType string, data interface{}) {
	frame, err := json.Marshal(Frame{Type: frameType, Data: data})
	if err != nil {
		b.logger.Error("REALTIME", "Failed to encode frame", map[string]interface{}{"type": frameType, "error": err.Error()})
		return
	}

	payload, err := json.Marshal(envelope{RecipientID: userID, Frame: frame})
	if err != nil {
		b.logger.Error("REALTIME", "Failed to encode envelope", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(b.topic, msg); err != nil {
		b.logger.Warn("REALTIME", "Failed to publish push", map[string]interface{}{"user_id": userID, "error": err.Error()})
	}
}

// Relay consumes the topic and hands every frame to delivery until ctx ends.
func (b *Bus) Relay(ctx context.Context, delivery Delivery) error {
	messages, err := b.pubSub.Subscribe(ctx, b.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var env envelope
			if err := json.Unmarshal(msg.Payload, &env); err != nil {
				b.logger.Error("REALTIME", "Dropping malformed push", map[string]interface{}{"error": err.Error()})
				msg.Ack()
				continue
			}
			delivery.Deliver(env.RecipientID, env.Frame)
			msg.Ack()
		}
	}()
	return nil
}

// NewPubSub builds the in-process channel used by the bus.
func NewPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
}
