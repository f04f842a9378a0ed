// Package redispub publishes order lifecycle events to Redis channels.
// Display surfaces subscribe to the channels to refresh without polling.
package redispub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

const (
	// OrderCreatedChannel carries announcements of newly submitted orders.
	OrderCreatedChannel = "orderflow:orders:created"

	// StatusChangedChannel carries committed status transitions.
	StatusChangedChannel = "orderflow:orders:status-changed"
)

// orderCreatedEvent is the wire payload for a new order announcement.
type orderCreatedEvent struct {
	OrderID     string    `json:"orderId"`
	AgentID     string    `json:"agentId"`
	AgentName   string    `json:"agentName"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// statusChangedEvent is the wire payload for a committed transition.
type statusChangedEvent struct {
	OrderID   string `json:"orderId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// Publisher implements the order event publishing port over Redis pub/sub.
// Publishing is advisory: transport failures are logged and swallowed so a
// flaky broker never fails a business operation that already committed.
type Publisher struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewPublisher creates a Redis-backed event publisher.
func NewPublisher(client redis.UniversalClient, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// PublishOrderCreated announces a newly submitted order.
func (p *Publisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	p.publish(ctx, OrderCreatedChannel, orderCreatedEvent{
		OrderID:     o.ID().String(),
		AgentID:     o.AgentID().String(),
		AgentName:   o.AgentName(),
		Status:      o.Status().String(),
		TotalAmount: o.Total().Amount(),
		ItemCount:   len(o.Items()),
		CreatedAt:   o.CreatedAt(),
	})
	return nil
}

// PublishStatusChanged announces a committed status transition.
func (p *Publisher) PublishStatusChanged(
	ctx context.Context,
	orderID kernel.UUID,
	oldStatus, newStatus order.Status,
) error {
	p.publish(ctx, StatusChangedChannel, statusChangedEvent{
		OrderID:   orderID.String(),
		OldStatus: oldStatus.String(),
		NewStatus: newStatus.String(),
	})
	return nil
}

func (p *Publisher) publish(ctx context.Context, channel string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "channel", channel, "error", err)
		return
	}

	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Error("failed to publish event", "channel", channel, "error", err)
	}
}
