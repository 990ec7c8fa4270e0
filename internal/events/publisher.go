package events

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/nverma/medstock/internal/domain"
)

const (
	exchangeName = "medstock.events"
	exchangeType = "topic"
)

// Publisher emits state-change events to a topic exchange. Publishing is
// best effort: failures are logged and never surfaced to the operation that
// triggered them. A nil *Publisher is safe to use.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, exchangeType, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
		log:     log,
	}, nil
}

type orderDeliveredPayload struct {
	OrderID       string `json:"order_id"`
	DistributorID string `json:"distributor_id"`
	OrdererID     string `json:"orderer_id"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	DeliveredAt   string `json:"delivered_at,omitempty"`
}

type inventoryUpdatedPayload struct {
	OwnerID   string `json:"owner_id"`
	OwnerType string `json:"owner_type"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (p *Publisher) OrderDelivered(order domain.Order) {
	payload := orderDeliveredPayload{
		OrderID:       order.ID,
		DistributorID: order.DistributorID,
		OrdererID:     order.OrdererID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
	}
	if order.DeliveredAt != nil {
		payload.DeliveredAt = order.DeliveredAt.Format(time.RFC3339)
	}
	p.publish("order.delivered", payload)
}

func (p *Publisher) InventoryUpdated(entry domain.InventoryEntry) {
	p.publish("inventory.updated", inventoryUpdatedPayload{
		OwnerID:   entry.OwnerID,
		OwnerType: string(entry.OwnerType),
		ProductID: entry.ProductID,
		Quantity:  entry.Quantity,
	})
}

func (p *Publisher) publish(routingKey string, payload any) {
	if p == nil || p.channel == nil {
		return
	}

	envelope := map[string]any{
		"event_type": routingKey,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"payload":    payload,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		p.log.Error("marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}

	err = p.channel.Publish(exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		p.log.Error("publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
