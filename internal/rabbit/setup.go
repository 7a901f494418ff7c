// setup.go
package rabbit

import (
	"context"
	"fmt"
	"log/slog"

	"opportunity-report-service/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

type Topology struct {
	IncidentsExchange string
	IncidentsQueue    string
	EventsExchange    string
}

// SetupPublisher declara el exchange de eventos y devuelve el notifier.
func SetupPublisher(ch *amqp091.Channel, t Topology) (*EventPublisher, error) {
	err := ch.ExchangeDeclare(
		t.EventsExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declarando exchange %s: %w", t.EventsExchange, err)
	}
	return NewEventPublisher(ch, t.EventsExchange), nil
}

// SetupConsumers declara la cola de incidentes, la bindea al exchange fanout
// y consume hasta que se cierre el canal o se cancele ctx.
func SetupConsumers(ctx context.Context, ch *amqp091.Channel, svc *service.ReportService, t Topology) error {
	consumer := NewGuestIncidentConsumer(svc)

	// 1. Declarar exchange y queue
	err := ch.ExchangeDeclare(t.IncidentsExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declarando exchange %s: %w", t.IncidentsExchange, err)
	}

	q, err := ch.QueueDeclare(
		t.IncidentsQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declarando queue %s: %w", t.IncidentsQueue, err)
	}

	// 2. Bindear al exchange fanout
	err = ch.QueueBind(
		q.Name,
		"", // fanout ignora routing key
		t.IncidentsExchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bindeando %s a %s: %w", q.Name, t.IncidentsExchange, err)
	}

	// 3. Consumir
	msgs, err := ch.ConsumeWithContext(
		ctx,
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumiendo %s: %w", q.Name, err)
	}

	go func() {
		for m := range msgs {
			if _, err := consumer.Handle(ctx, m.Body); err != nil {
				// descartar sin requeue
				_ = m.Nack(false, false)
				continue
			}
			_ = m.Ack(false)
		}
		slog.Info("Consumer de incidentes detenido")
	}()

	slog.Info("Suscrito a exchange de incidentes",
		slog.String("exchange", t.IncidentsExchange),
		slog.String("queue", q.Name))
	return nil
}
