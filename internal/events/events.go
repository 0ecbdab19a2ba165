// Package events carries catalog notifications and export jobs over Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"felmel/internal/logger"
	"felmel/internal/models"
)

const (
	TypeCatalogLoaded   = "catalog.loaded"
	TypeCatalogExported = "catalog.exported"
	TypeExportRequested = "export.requested"
)

type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent stamps a payload with a fresh id and the current time.
func NewEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s has no data", e.ID)
	}
	return json.Unmarshal(e.Data, v)
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

// LoadedPayload describes a finished catalog load.
type LoadedPayload struct {
	Mode    string `json:"mode"`
	Total   int    `json:"total"`
	Pages   int    `json:"pages"`
	Dropped int    `json:"dropped"`
}

// ExportedPayload describes a produced export document.
type ExportedPayload struct {
	Format       string `json:"format"`
	Filename     string `json:"filename"`
	ProductCount int    `json:"product_count"`
	Source       string `json:"source"`
}

// ExportRequest asks the worker to load, filter, sort and export the catalog.
type ExportRequest struct {
	Format       string             `json:"format"`
	Mode         string             `json:"mode"`
	PageSizeHint int                `json:"page_size_hint"`
	Filters      models.FilterState `json:"filters"`
	Sort         *models.SortState  `json:"sort,omitempty"`
}

// Normalized resolves field aliases to their canonical names, treats a zero price bound as
// no bound and defaults the mode to a fast load. Unknown fields are left for validation.
func (r ExportRequest) Normalized() ExportRequest {
	if r.Mode == "" {
		r.Mode = string(models.LoadModeFast)
	}
	if r.Filters.MaxPrice != nil && r.Filters.MaxPrice.IsZero() {
		r.Filters.MaxPrice = nil
	}
	if r.Sort != nil {
		sort := *r.Sort
		if field, ok := models.ParseField(string(sort.Field)); ok {
			sort.Field = field
		}
		r.Sort = &sort
	}
	return r
}

// KafkaPublisher writes events to one topic, keyed by event type.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewKafkaPublisher(brokers, topic string, logger *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(SplitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(eventType), Value: value}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	p.logger.Debug("Published %s event %s", eventType, event.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                      { return nil }

// SplitBrokers turns a comma separated broker list into addresses.
func SplitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
