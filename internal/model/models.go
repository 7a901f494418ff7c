// models.go
package model

import "time"

type Status string

// Estados del ticket. Cualquier estado puede pasar a cualquier otro.
const (
	StatusAbierto   Status = "abierto"
	StatusEnProceso Status = "en proceso"
	StatusCerrado   Status = "cerrado"
)

// StatusAll es el selector comodín del filtro (pestaña "Todos").
const StatusAll = "todos"

var Statuses = []Status{StatusAbierto, StatusEnProceso, StatusCerrado}

func (s Status) Valid() bool {
	switch s {
	case StatusAbierto, StatusEnProceso, StatusCerrado:
		return true
	}
	return false
}

// ReportFields son los datos que carga el formulario. No incluye id, estado
// ni actualizaciones.
type ReportFields struct {
	GuestName         string `json:"guestName"`
	RoomNumber        string `json:"roomNumber"`
	ReservationNumber string `json:"reservationNumber"`
	ReportedBy        string `json:"reportedBy"`
	Department        string `json:"department"`
	ArrivalDate       string `json:"arrivalDate"`
	DepartureDate     string `json:"departureDate"`
	IncidentReport    string `json:"incidentReport"`
	GuestMood         string `json:"guestMood"`
}

type OpportunityReport struct {
	ID string `json:"id"`
	ReportFields
	Status  Status   `json:"status"`
	Updates []Update `json:"updates"` // la más reciente primero
}

type Update struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Clone devuelve una copia que no comparte el slice de actualizaciones.
func (r OpportunityReport) Clone() OpportunityReport {
	out := r
	out.Updates = make([]Update, len(r.Updates))
	copy(out.Updates, r.Updates)
	return out
}
