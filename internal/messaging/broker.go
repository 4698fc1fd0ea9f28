package messaging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// BrokerOptions selects and configures the event transport.
type BrokerOptions struct {
	Broker       string // rabbitmq, kafka or none
	RabbitMQURL  string
	KafkaBrokers []string
	KafkaTopic   string
}

// NewFromOptions builds the publisher for the configured broker.
func NewFromOptions(opts BrokerOptions, logger zerolog.Logger) (PublisherInterface, error) {
	switch opts.Broker {
	case "rabbitmq", "":
		p, err := NewPublisher(opts.RabbitMQURL, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "kafka":
		p, err := NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "none":
		return NopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown events broker %q", opts.Broker)
	}
}

// baseOf finds the BaseEvent embedded in one of the known event types.
func baseOf(eventData interface{}) (BaseEvent, bool) {
	switch e := eventData.(type) {
	case PatientRegisteredEvent:
		return e.BaseEvent, true
	case *PatientRegisteredEvent:
		return e.BaseEvent, true
	case PatientUpdatedEvent:
		return e.BaseEvent, true
	case *PatientUpdatedEvent:
		return e.BaseEvent, true
	case PatientStatusChangedEvent:
		return e.BaseEvent, true
	case *PatientStatusChangedEvent:
		return e.BaseEvent, true
	}
	return BaseEvent{}, false
}
