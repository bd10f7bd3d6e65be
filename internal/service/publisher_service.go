package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/pkg/events"
)

// IPublisherService fans board events out to the in-process bus. The
// websocket consumer subscribes on the other end and notifies connected
// canvases to re-render.
type IPublisherService interface {
	PublishBoardEvent(event events.Event)
	Subscriber() *gochannel.GoChannel
	Topic() string
	Close() error
}

type publisherService struct {
	bus    *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewPublisherService(topic string, log logger.ILogger) IPublisherService {
	bus := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NopLogger{})

	return &publisherService{
		bus:    bus,
		topic:  topic,
		logger: log,
	}
}

func (s *publisherService) PublishBoardEvent(event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("publisher", "failed to marshal board event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())

	if err := s.bus.Publish(s.topic, msg); err != nil {
		s.logger.Error("publisher", "failed to publish board event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func (s *publisherService) Subscriber() *gochannel.GoChannel {
	return s.bus
}

func (s *publisherService) Topic() string {
	return s.topic
}

func (s *publisherService) Close() error {
	return s.bus.Close()
}
