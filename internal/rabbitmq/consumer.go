package rabbitmq

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"
)

// ConsumerMessage запускает потребителя очереди. Обработка идёт в отдельной
// горутине до отмены контекста; при ошибке обработчика сообщение
// возвращается в очередь.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-delivery:
				if !ok {
					return
				}
				if err := handler(msg.Body); err != nil {
					_ = msg.Nack(false, true)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}
