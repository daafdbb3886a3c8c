package repository

import (
	"context"

	"github.com/delivery-tracker/internal/domain"
)

// EventPublisher - публикация событий в стрим
type EventPublisher interface {
	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	EventPublisher

	// ConsumeStream читает сообщения из стрима
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error
}
