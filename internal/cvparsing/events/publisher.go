package events

import (
	"context"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/pkg/logger"
	"github.com/hireflow/hireflow-backend/pkg/messaging"
)

// Publisher is the subset of messaging.Publisher used here
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// CVEventPublisher publishes CV parsing events
type CVEventPublisher struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewCVEventPublisher creates a publisher on exchange, defaulting to the
// profile events exchange
func NewCVEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*CVEventPublisher, error) {
	if exchange == "" {
		exchange = messaging.ExchangeProfileEvents
	}
	publisher, err := messaging.NewPublisher(rmq, exchange, "cvparse-service", log)
	if err != nil {
		return nil, err
	}

	return NewCVEventPublisherWith(publisher, log), nil
}

// NewCVEventPublisherWith wraps an existing publisher
func NewCVEventPublisherWith(publisher Publisher, log *logger.Logger) *CVEventPublisher {
	return &CVEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

// PublishCVParsed publishes a cv.parsed event carrying the extracted fields.
// Failures are logged, never returned: the parse result is already final.
func (p *CVEventPublisher) PublishCVParsed(ctx context.Context, userID, parseID, filename string, format domain.Format, profile domain.ParsedProfile) {
	data := messaging.CVParsedEvent{
		UserID:   userID,
		ParseID:  parseID,
		Filename: filename,
		Format:   string(format),
		Fields:   profile.Fields(),
	}

	if err := p.publisher.Publish(ctx, messaging.EventCVParsed, data); err != nil {
		p.logger.Error().Err(err).Str("user_id", userID).Str("parse_id", parseID).Msg("failed to publish cv parsed event")
	}
}
