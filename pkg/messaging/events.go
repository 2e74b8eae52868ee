package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventCVParsed = "cv.parsed"
)

// ExchangeProfileEvents is the default exchange for profile related events
const ExchangeProfileEvents = "hireflow.profile"

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// CVParsedEvent is published after a CV was parsed successfully. Fields
// holds the extracted, empty-value-stripped profile fields the profile
// owner merges into the stored record.
type CVParsedEvent struct {
	UserID   string         `json:"user_id"`
	ParseID  string         `json:"parse_id"`
	Filename string         `json:"filename"`
	Format   string         `json:"format"`
	Fields   map[string]any `json:"fields"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.NewString()
}
