package config

import (
	"log/slog"
	"strings"

	"github.com/smart-class/classroom-service/internal/events"
)

type EventConfig struct {
	Enabled      bool
	Publisher    string
	KafkaBrokers string
	Topic        string
}

// CreateEventPublisher builds the publisher named by the config. Unknown
// publisher names and disabled events both fall back to the mock so callers
// never have to nil-check.
func CreateEventPublisher(cfg EventConfig, logger *slog.Logger) events.EventPublisher {
	if !cfg.Enabled {
		logger.Info("event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger)
	}

	switch cfg.Publisher {
	case "kafka":
		publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: strings.Split(cfg.KafkaBrokers, ","),
			TopicName:    cfg.Topic,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("failed to create kafka publisher, falling back to mock", "error", err)
			return events.NewMockEventPublisher(logger)
		}
		return publisher
	case "mock":
		return events.NewMockEventPublisher(logger)
	default:
		logger.Warn("unknown event publisher, using mock", "publisher", cfg.Publisher)
		return events.NewMockEventPublisher(logger)
	}
}
