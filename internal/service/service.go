package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"opportunity-report-service/internal/model"
)

// Interfaz que implementa el store en memoria
type ReportRepository interface {
	Create(fields model.ReportFields) (model.OpportunityReport, uint64)
	UpdateReport(id string, r model.OpportunityReport) (uint64, error)
	EditFields(id string, fields model.ReportFields) (model.OpportunityReport, uint64, error)
	DeleteReport(id string) (uint64, error)
	AddUpdate(id, text string) (model.OpportunityReport, uint64, error)
	DeleteUpdate(id string, index int) (uint64, error)
	SetStatus(id string, status model.Status) (uint64, error)
	Get(id string) (model.OpportunityReport, error)
	Filter(selector, search string) []model.OpportunityReport
	Counts() map[model.Status]int
}

// Errores de validación del lado del llamador (los usa el controller)
var (
	ErrEmptyUpdate     = errors.New("la actualización no puede estar vacía")
	ErrInvalidSelector = errors.New("filtro de estado inválido")
)

type ReportService struct {
	repo     ReportRepository
	notifier Notifier
	now      func() time.Time
}

func NewReportService(r ReportRepository, n Notifier) *ReportService {
	if n == nil {
		n = NopNotifier{}
	}
	return &ReportService{
		repo:     r,
		notifier: n,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateReport crea el reporte. El estado siempre arranca en "abierto".
func (s *ReportService) CreateReport(ctx context.Context, fields model.ReportFields) model.OpportunityReport {
	r, version := s.repo.Create(fields)
	s.notify(ctx, EventCreated, r.ID, version)
	return r
}

// UpdateReport reemplaza el reporte completo.
func (s *ReportService) UpdateReport(ctx context.Context, id string, r model.OpportunityReport) error {
	version, err := s.repo.UpdateReport(id, r)
	if err != nil {
		return fmt.Errorf("actualizando reporte %s: %w", id, err)
	}
	s.notify(ctx, EventUpdated, id, version)
	return nil
}

// EditReport aplica los campos del formulario sobre el reporte existente,
// conservando id, estado y actualizaciones.
func (s *ReportService) EditReport(ctx context.Context, id string, fields model.ReportFields) (model.OpportunityReport, error) {
	r, version, err := s.repo.EditFields(id, fields)
	if err != nil {
		return model.OpportunityReport{}, fmt.Errorf("editando reporte %s: %w", id, err)
	}
	s.notify(ctx, EventUpdated, id, version)
	return r, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	version, err := s.repo.DeleteReport(id)
	if err != nil {
		return fmt.Errorf("eliminando reporte %s: %w", id, err)
	}
	s.notify(ctx, EventDeleted, id, version)
	return nil
}

// AddUpdate recorta el texto y rechaza los vacíos antes de llegar al store.
// Devuelve el reporte tal como quedó después de agregar la actualización.
func (s *ReportService) AddUpdate(ctx context.Context, id, text string) (model.OpportunityReport, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.OpportunityReport{}, ErrEmptyUpdate
	}
	r, version, err := s.repo.AddUpdate(id, text)
	if err != nil {
		return model.OpportunityReport{}, fmt.Errorf("agregando actualización a %s: %w", id, err)
	}
	s.notify(ctx, EventUpdateAdded, id, version)
	return r, nil
}

func (s *ReportService) DeleteUpdate(ctx context.Context, id string, index int) error {
	version, err := s.repo.DeleteUpdate(id, index)
	if err != nil {
		return fmt.Errorf("eliminando actualización %d de %s: %w", index, id, err)
	}
	s.notify(ctx, EventUpdateDeleted, id, version)
	return nil
}

func (s *ReportService) SetStatus(ctx context.Context, id string, status model.Status) error {
	version, err := s.repo.SetStatus(id, status)
	if err != nil {
		return fmt.Errorf("cambiando estado de %s: %w", id, err)
	}
	s.notify(ctx, EventStatusChanged, id, version)
	return nil
}

// Getters
func (s *ReportService) GetReport(id string) (model.OpportunityReport, error) {
	return s.repo.Get(id)
}

// Filter valida el selector ("todos" o uno de los estados) y delega en el
// store.
func (s *ReportService) Filter(selector, search string) ([]model.OpportunityReport, error) {
	if selector == "" {
		selector = model.StatusAll
	}
	if selector != model.StatusAll && !model.Status(selector).Valid() {
		return nil, ErrInvalidSelector
	}
	return s.repo.Filter(selector, search), nil
}

func (s *ReportService) Counts() map[model.Status]int {
	return s.repo.Counts()
}

// notify publica el evento con la versión que devolvió la mutación. Un fallo
// al publicar no deshace el cambio; solo se registra.
func (s *ReportService) notify(ctx context.Context, kind EventKind, id string, version uint64) {
	ev := ReportEvent{
		Kind:     kind,
		ReportID: id,
		Version:  version,
		At:       s.now(),
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		slog.Warn("No se pudo publicar el evento",
			slog.String("kind", string(kind)),
			slog.String("reportId", id),
			slog.String("error", err.Error()))
	}
}
