package rabbitmq

import (
	"context"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// maxInFlight ограничивает число сообщений, обрабатываемых одновременно.
const maxInFlight = 10

// ConsumerMessage подписывается на очередь и передает тело каждого сообщения
// в handler. Сообщение подтверждается только после успешной обработки;
// при ошибке обработчика оно возвращается в очередь для повтора.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"

	delivery, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					processDelivery(d, handler)
				}(d)
			}
		}
	}()
	return nil
}

func processDelivery(d amqp.Delivery, handler func([]byte) error) {
	if err := handler(d.Body); err != nil {
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Printf("failed to nack message: %v", nackErr)
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Printf("failed to ack message: %v", ackErr)
	}
}
