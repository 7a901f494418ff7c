package model

import (
	"fmt"
	"time"
)

const NoUpdatesText = "No hay actualizaciones"

// StatusColor devuelve la clase de color de la tarjeta según el estado.
func StatusColor(s Status) string {
	switch s {
	case StatusAbierto:
		return "bg-red-600"
	case StatusEnProceso:
		return "bg-orange-500"
	case StatusCerrado:
		return "bg-green-600"
	default:
		return "bg-gray-600"
	}
}

// LatestUpdate devuelve la actualización más reciente, o el texto por defecto
// con timestamp cero si el reporte no tiene ninguna.
func LatestUpdate(r OpportunityReport) Update {
	if len(r.Updates) == 0 {
		return Update{Text: NoUpdatesText}
	}
	return r.Updates[0]
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate formatea en español largo: "17 de octubre de 2026, 09:05".
// Un timestamp cero se formatea como cadena vacía.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d de %s de %d, %02d:%02d",
		t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
