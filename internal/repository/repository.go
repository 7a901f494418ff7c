package repository

import (
	"errors"
	"strings"
	"sync"
	"time"

	"opportunity-report-service/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = errors.New("reporte no encontrado")
	ErrUpdateNotFound = errors.New("actualización no encontrada")
	ErrInvalidStatus  = errors.New("estado inválido")
)

// ReportStore guarda los reportes en memoria, el más nuevo primero.
// Todas las mutaciones pasan por el lock de escritura; las lecturas
// devuelven copias.
//
// Ninguna operación entra en pánico con ids o índices desconocidos: la
// colección queda igual y se devuelve un error que el llamador puede ignorar.
type ReportStore struct {
	mu      sync.RWMutex
	reports []model.OpportunityReport
	version uint64

	now   func() time.Time
	newID func() string
}

type Option func(*ReportStore)

// WithClock reemplaza la fuente de tiempo de las actualizaciones.
func WithClock(now func() time.Time) Option {
	return func(s *ReportStore) { s.now = now }
}

// WithIDGenerator reemplaza el generador de ids. Debe devolver valores únicos.
func WithIDGenerator(gen func() string) Option {
	return func(s *ReportStore) { s.newID = gen }
}

func NewReportStore(opts ...Option) *ReportStore {
	s := &ReportStore{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return primitive.NewObjectID().Hex() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create agrega un reporte nuevo al principio con estado "abierto" y sin
// actualizaciones. Devuelve también la versión resultante.
func (s *ReportStore) Create(fields model.ReportFields) (model.OpportunityReport, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.OpportunityReport{
		ID:           s.newID(),
		ReportFields: fields,
		Status:       model.StatusAbierto,
		Updates:      []model.Update{},
	}
	s.reports = append([]model.OpportunityReport{r}, s.reports...)
	s.version++
	return r.Clone(), s.version
}

// UpdateReport reemplaza el reporte completo. El id guardado es siempre el
// id pedido, aunque el reemplazo traiga otro.
func (s *ReportStore) UpdateReport(id string, r model.OpportunityReport) (uint64, error) {
	if !r.Status.Valid() {
		return 0, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, ErrNotFound
	}
	r = r.Clone()
	r.ID = id
	s.reports[i] = r
	s.version++
	return s.version, nil
}

// EditFields reemplaza solo los campos del formulario; id, estado y
// actualizaciones quedan como están.
func (s *ReportStore) EditFields(id string, fields model.ReportFields) (model.OpportunityReport, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.OpportunityReport{}, 0, ErrNotFound
	}
	s.reports[i].ReportFields = fields
	s.version++
	return s.reports[i].Clone(), s.version, nil
}

func (s *ReportStore) DeleteReport(id string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, ErrNotFound
	}
	s.reports = append(s.reports[:i], s.reports[i+1:]...)
	s.version++
	return s.version, nil
}

// AddUpdate antepone una actualización con la hora actual y devuelve el
// reporte resultante. El texto no se valida acá.
func (s *ReportStore) AddUpdate(id, text string) (model.OpportunityReport, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.OpportunityReport{}, 0, ErrNotFound
	}
	u := model.Update{Text: text, Timestamp: s.now()}
	old := s.reports[i].Updates
	updates := make([]model.Update, 0, len(old)+1)
	updates = append(updates, u)
	updates = append(updates, old...)
	s.reports[i].Updates = updates
	s.version++
	return s.reports[i].Clone(), s.version, nil
}

// DeleteUpdate quita la actualización en la posición index (0 = la más
// reciente).
func (s *ReportStore) DeleteUpdate(id string, index int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, ErrNotFound
	}
	old := s.reports[i].Updates
	if index < 0 || index >= len(old) {
		return 0, ErrUpdateNotFound
	}
	updates := make([]model.Update, 0, len(old)-1)
	updates = append(updates, old[:index]...)
	updates = append(updates, old[index+1:]...)
	s.reports[i].Updates = updates
	s.version++
	return s.version, nil
}

// SetStatus cambia solo el estado.
func (s *ReportStore) SetStatus(id string, status model.Status) (uint64, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, ErrNotFound
	}
	s.reports[i].Status = status
	s.version++
	return s.version, nil
}

func (s *ReportStore) Get(id string) (model.OpportunityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.OpportunityReport{}, ErrNotFound
	}
	return s.reports[i].Clone(), nil
}

// Filter devuelve una vista derivada; nunca modifica la colección.
// selector "todos" (o vacío) acepta cualquier estado; cualquier otro valor
// se compara por igualdad exacta. search busca sin distinguir mayúsculas en
// el nombre del huésped o el número de habitación.
func (s *ReportStore) Filter(selector, search string) []model.OpportunityReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(search)
	out := make([]model.OpportunityReport, 0, len(s.reports))
	for _, r := range s.reports {
		if !matchesStatus(r, selector) || !matchesSearch(r, needle) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// Snapshot devuelve una copia de toda la colección junto con su versión.
func (s *ReportStore) Snapshot() ([]model.OpportunityReport, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.OpportunityReport, len(s.reports))
	for i, r := range s.reports {
		out[i] = r.Clone()
	}
	return out, s.version
}

// Version crece con cada mutación exitosa.
func (s *ReportStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Counts cuenta reportes por estado.
func (s *ReportStore) Counts() map[model.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[model.Status]int, len(model.Statuses))
	for _, st := range model.Statuses {
		counts[st] = 0
	}
	for _, r := range s.reports {
		counts[r.Status]++
	}
	return counts
}

func (s *ReportStore) indexOf(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}

func matchesStatus(r model.OpportunityReport, selector string) bool {
	return selector == "" || selector == model.StatusAll || string(r.Status) == selector
}

func matchesSearch(r model.OpportunityReport, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.GuestName), needle) ||
		strings.Contains(strings.ToLower(r.RoomNumber), needle)
}
