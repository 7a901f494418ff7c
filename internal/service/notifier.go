package service

import (
	"context"
	"time"
)

type EventKind string

const (
	EventCreated       EventKind = "report.created"
	EventUpdated       EventKind = "report.updated"
	EventDeleted       EventKind = "report.deleted"
	EventStatusChanged EventKind = "report.status_changed"
	EventUpdateAdded   EventKind = "update.added"
	EventUpdateDeleted EventKind = "update.deleted"
)

// ReportEvent avisa que la colección cambió. No lleva el reporte: quien lo
// recibe vuelve a leer la colección cuando le conviene.
type ReportEvent struct {
	Kind     EventKind `json:"kind"`
	ReportID string    `json:"reportId"`
	Version  uint64    `json:"version"`
	At       time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, ev ReportEvent) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, ReportEvent) error { return nil }
