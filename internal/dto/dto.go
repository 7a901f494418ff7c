// dto.go
package dto

import (
	"time"

	"opportunity-report-service/internal/model"
)

// ReportFormRequest usado por la API para crear y editar reportes. Todos los
// campos del formulario son obligatorios.
type ReportFormRequest struct {
	GuestName         string `json:"guestName" binding:"required"`
	RoomNumber        string `json:"roomNumber" binding:"required"`
	ReservationNumber string `json:"reservationNumber" binding:"required"`
	ReportedBy        string `json:"reportedBy" binding:"required"`
	Department        string `json:"department" binding:"required"`
	ArrivalDate       string `json:"arrivalDate" binding:"required"`
	DepartureDate     string `json:"departureDate" binding:"required"`
	IncidentReport    string `json:"incidentReport" binding:"required"`
	GuestMood         string `json:"guestMood" binding:"required"`
}

func (r ReportFormRequest) ToFields() model.ReportFields {
	return model.ReportFields{
		GuestName:         r.GuestName,
		RoomNumber:        r.RoomNumber,
		ReservationNumber: r.ReservationNumber,
		ReportedBy:        r.ReportedBy,
		Department:        r.Department,
		ArrivalDate:       r.ArrivalDate,
		DepartureDate:     r.DepartureDate,
		IncidentReport:    r.IncidentReport,
		GuestMood:         r.GuestMood,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddUpdateRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateResponse struct {
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	FormattedDate string    `json:"formattedDate"`
}

type ReportResponse struct {
	ID string `json:"id"`
	model.ReportFields
	Status       model.Status     `json:"status"`
	StatusColor  string           `json:"statusColor"`
	LatestUpdate UpdateResponse   `json:"latestUpdate"`
	Updates      []UpdateResponse `json:"updates"`
}

type StatsResponse struct {
	Total    int                  `json:"total"`
	ByStatus map[model.Status]int `json:"byStatus"`
}

func toUpdateResponse(u model.Update, loc *time.Location) UpdateResponse {
	return UpdateResponse{
		Text:          u.Text,
		Timestamp:     u.Timestamp,
		FormattedDate: model.FormatDate(u.Timestamp, loc),
	}
}

// NewReportResponse arma la vista de la tarjeta con las fechas formateadas
// en la zona horaria del hotel.
func NewReportResponse(r model.OpportunityReport, loc *time.Location) ReportResponse {
	updates := make([]UpdateResponse, 0, len(r.Updates))
	for _, u := range r.Updates {
		updates = append(updates, toUpdateResponse(u, loc))
	}
	return ReportResponse{
		ID:           r.ID,
		ReportFields: r.ReportFields,
		Status:       r.Status,
		StatusColor:  model.StatusColor(r.Status),
		LatestUpdate: toUpdateResponse(model.LatestUpdate(r), loc),
		Updates:      updates,
	}
}

func NewReportListResponse(reports []model.OpportunityReport, loc *time.Location) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, NewReportResponse(r, loc))
	}
	return out
}

func NewStatsResponse(counts map[model.Status]int) StatsResponse {
	total := 0
	for _, n := range counts {
		total += n
	}
	return StatsResponse{Total: total, ByStatus: counts}
}
