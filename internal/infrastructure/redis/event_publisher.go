package redis

import (
	"context"

	"brcargo_cotacoes/internal/usecase/interfaces"

	goRedis "github.com/redis/go-redis/v9"
)

// EventPublisher fans quote events out over Redis pub/sub.
type EventPublisher struct {
	client goRedis.Cmdable
}

var _ interfaces.IEventPublisher = (*EventPublisher)(nil)

func NewEventPublisher(client goRedis.Cmdable) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}
