package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// PublishNotification публикует уведомление платформы в обменник
// NotificationsExchange. Сообщение сериализуется в JSON, помечается
// уникальным идентификатором и временем отправки и сохраняется брокером
// на диске, чтобы подтверждение не потерялось при его перезапуске.
func PublishNotification(ch *amqp.Channel, routingKey string, message any) error {
	const op = "rabbitmq.PublishNotification"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		NotificationsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
