package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"opportunity-report-service/internal/model"
	"opportunity-report-service/internal/service"
)

var ErrIncompleteIncident = errors.New("incidente incompleto")

type GuestIncidentConsumer struct {
	Service *service.ReportService
}

func NewGuestIncidentConsumer(s *service.ReportService) *GuestIncidentConsumer {
	return &GuestIncidentConsumer{Service: s}
}

// Mensaje publicado por los sistemas de recepción cuando registran un
// incidente de huésped.
type GuestIncidentMessage struct {
	CorrelationID string             `json:"correlation_id"`
	Exchange      string             `json:"exchange"`
	RoutingKey    string             `json:"routing_key"`
	Message       model.ReportFields `json:"message"`
}

// Handle crea un reporte a partir del mensaje. Los mensajes mal formados o
// con campos vacíos (o solo espacios) se descartan con error.
func (c *GuestIncidentConsumer) Handle(ctx context.Context, msg []byte) (model.OpportunityReport, error) {
	var event GuestIncidentMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		slog.Error("Error parseando incidente", slog.String("error", err.Error()))
		return model.OpportunityReport{}, err
	}

	if missing := missingFields(event.Message); len(missing) > 0 {
		slog.Warn("Incidente descartado por campos vacíos",
			slog.String("correlationId", event.CorrelationID),
			slog.Any("missing", missing))
		return model.OpportunityReport{}, ErrIncompleteIncident
	}

	r := c.Service.CreateReport(ctx, event.Message)
	slog.Info("Reporte creado desde incidente",
		slog.String("reportId", r.ID),
		slog.String("correlationId", event.CorrelationID))
	return r, nil
}

func missingFields(f model.ReportFields) []string {
	checks := []struct {
		name  string
		value string
	}{
		{"guestName", f.GuestName},
		{"roomNumber", f.RoomNumber},
		{"reservationNumber", f.ReservationNumber},
		{"reportedBy", f.ReportedBy},
		{"department", f.Department},
		{"arrivalDate", f.ArrivalDate},
		{"departureDate", f.DepartureDate},
		{"incidentReport", f.IncidentReport},
		{"guestMood", f.GuestMood},
	}
	var missing []string
	for _, ch := range checks {
		if strings.TrimSpace(ch.value) == "" {
			missing = append(missing, ch.name)
		}
	}
	return missing
}
