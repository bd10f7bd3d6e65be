package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"

	"kj-canvas-be/internal/websocket"
	"kj-canvas-be/pkg/events"
)

// IConsumerService bridges the in-process event bus to the websocket hub.
// Every board mutation published by the writer ends up as one broadcast to
// the connected canvases.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	publisher IPublisherService
	hub       *websocket.Hub
}

func NewConsumerService(publisher IPublisherService, hub *websocket.Hub) IConsumerService {
	return &consumerService{
		publisher: publisher,
		hub:       hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.publisher.Subscriber().Subscribe(ctx, cs.publisher.Topic())
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal board event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	eventType := msg.Metadata.Get("event_type")
	if eventType == "" {
		eventType = event.Type
	}

	cs.hub.Broadcast(eventType, event.Data)
	msg.Ack()
}
