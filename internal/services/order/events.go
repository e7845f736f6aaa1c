package services

import (
	"github.com/streadway/amqp"

	"github.com/greenbowl/salad-storefront/internal/models"
	"github.com/greenbowl/salad-storefront/internal/rabbitmq"
)

// AMQPPublisher публикует события заказов в обменник магазина.
type AMQPPublisher struct {
	ch *amqp.Channel
}

// NewAMQPPublisher создает публикатора поверх настроенного канала.
func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

// PublishOrderCreated отправляет событие о созданном заказе.
func (p *AMQPPublisher) PublishOrderCreated(event models.OrderCreatedEvent) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.Exchange, rabbitmq.RoutingKeyOrderCreated, event)
}
