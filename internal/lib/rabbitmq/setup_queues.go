package rabbitmq

// Очередь и ключ маршрутизации подтверждений регистрации на события.
const (
	RegistrationQueue = "notification.registration"
	RegistrationKey   = "registration"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RegistrationQueue, RoutingKey: RegistrationKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
