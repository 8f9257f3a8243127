// Package event publishes domain events to Kafka and reads the stock
// adjustment stream.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeJobCompleted    = "JobCompleted"
	TypeSaleRecorded    = "SaleRecorded"
	TypeWarrantyClaimed = "WarrantyClaimed"
	TypeStockAdjusted   = "StockAdjusted"
)

type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Publisher emits events keyed by the aggregate they concern.
type Publisher interface {
	Publish(ctx context.Context, key string, ev Event) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher discards every event. Used when Kafka is disabled.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, Event) error { return nil }
func (nopPublisher) Close() error                                 { return nil }

type JobCompletedPayload struct {
	JobID        string  `json:"job_id"`
	Status       string  `json:"status"`
	CustomerName string  `json:"customer_name"`
	Amount       float64 `json:"amount"`
}

type SaleRecordedPayload struct {
	SaleID        string  `json:"sale_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	JobID         *string `json:"job_id,omitempty"`
}

type WarrantyClaimedPayload struct {
	WarrantyID string `json:"warranty_id"`
	JobID      string `json:"job_id"`
	Reason     string `json:"reason"`
}

// StockAdjustedPayload is consumed, not published: other services report
// stock movements for items this shop tracks.
type StockAdjustedPayload struct {
	ItemID string `json:"item_id"`
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}
