package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"opportunity-report-service/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

// channelPublisher es la parte de *amqp091.Channel que usa el publisher.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// EventPublisher implementa service.Notifier publicando cada evento en un
// exchange fanout.
type EventPublisher struct {
	mu       sync.Mutex
	ch       channelPublisher
	exchange string
}

func NewEventPublisher(ch channelPublisher, exchange string) *EventPublisher {
	return &EventPublisher{ch: ch, exchange: exchange}
}

func (p *EventPublisher) Notify(ctx context.Context, ev service.ReportEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, string(ev.Kind), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    ev.At,
		Type:         string(ev.Kind),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicando %s en %s: %w", ev.Kind, p.exchange, err)
	}
	return nil
}
