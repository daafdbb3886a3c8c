package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DataField - поле сообщения стрима с JSON-телом события
const DataField = "data"

const (
	readBatch   = 10
	readBlock   = time.Second
	retryPause  = time.Second
	channelSize = 10
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает репозиторий событий доставки поверх Redis Streams
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создает группу с позиции "$"; стрим создается при необходимости
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает новые сообщения группы. Канал закрывается при отмене ctx.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	out := make(chan domain.StreamMessage, channelSize)
	go r.readLoop(ctx, stream, group, consumer, out)
	return out, nil
}

func (r *streamRepository) readLoop(ctx context.Context, stream, group, consumer string, out chan<- domain.StreamMessage) {
	defer close(out)

	for ctx.Err() == nil {
		result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{stream, ">"},
			Count:    readBatch,
			Block:    readBlock,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				break
			}
			r.logger.Error("Failed to read from stream",
				zap.String("stream", stream),
				zap.Error(err))
			select {
			case <-time.After(retryPause):
			case <-ctx.Done():
			}
			continue
		}

		for _, s := range result {
			for _, msg := range s.Messages {
				data, ok := msg.Values[DataField].(string)
				if !ok {
					r.logger.Warn("Message without data field",
						zap.String("stream", stream),
						zap.String("message_id", msg.ID))
					// без данных сообщение не обработать, подтверждаем сразу, чтобы не висело в PEL
					_ = r.AckMessage(ctx, stream, group, msg.ID)
					continue
				}

				select {
				case out <- domain.StreamMessage{ID: msg.ID, Data: data}:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	r.logger.Info("Stream consumer stopped",
		zap.String("stream", stream),
		zap.String("consumer", consumer))
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует событие в JSON и добавляет его в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal event", zap.String("stream", stream), zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{DataField: string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream", zap.String("stream", stream), zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Event published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
