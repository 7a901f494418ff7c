package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"opportunity-report-service/internal/model"
	"opportunity-report-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, ev ReportEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func kindIs(kind EventKind) interface{} {
	return mock.MatchedBy(func(ev ReportEvent) bool { return ev.Kind == kind })
}

func sampleFields(guest, room string) model.ReportFields {
	return model.ReportFields{
		GuestName:         guest,
		RoomNumber:        room,
		ReservationNumber: "RES-1",
		ReportedBy:        "Ama de llaves",
		Department:        "Housekeeping",
		ArrivalDate:       "2026-10-16",
		DepartureDate:     "2026-10-18",
		IncidentReport:    "Toallas faltantes",
		GuestMood:         "tranquilo",
	}
}

func TestCreateReportNotifies(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, kindIs(EventCreated)).Return(nil).Once()
	svc := NewReportService(repository.NewReportStore(), n)

	r := svc.CreateReport(context.Background(), sampleFields("Ana", "101"))

	assert.Equal(t, model.StatusAbierto, r.Status)
	n.AssertExpectations(t)
	ev := n.Calls[0].Arguments.Get(1).(ReportEvent)
	assert.Equal(t, r.ID, ev.ReportID)
	assert.Equal(t, uint64(1), ev.Version)
}

func TestAddUpdateTrimsAndRejectsEmpty(t *testing.T) {
	store := repository.NewReportStore()
	svc := NewReportService(store, nil)
	r := svc.CreateReport(context.Background(), sampleFields("Ana", "101"))

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.AddUpdate(context.Background(), r.ID, text)
		assert.ErrorIs(t, err, ErrEmptyUpdate)
	}

	returned, err := svc.AddUpdate(context.Background(), r.ID, "  llamada al huésped  ")
	require.NoError(t, err)
	require.Len(t, returned.Updates, 1)
	assert.Equal(t, "llamada al huésped", returned.Updates[0].Text)

	got, err := svc.GetReport(r.ID)
	require.NoError(t, err)
	assert.Equal(t, returned, got)
}

func TestEditReportKeepsStatusAndUpdates(t *testing.T) {
	svc := NewReportService(repository.NewReportStore(), nil)
	ctx := context.Background()
	r := svc.CreateReport(ctx, sampleFields("Ana", "101"))
	require.NoError(t, svc.SetStatus(ctx, r.ID, model.StatusEnProceso))
	_, err := svc.AddUpdate(ctx, r.ID, "nota")
	require.NoError(t, err)

	edited, err := svc.EditReport(ctx, r.ID, sampleFields("Ana López", "102"))
	require.NoError(t, err)

	assert.Equal(t, r.ID, edited.ID)
	assert.Equal(t, "Ana López", edited.GuestName)
	assert.Equal(t, "102", edited.RoomNumber)
	assert.Equal(t, model.StatusEnProceso, edited.Status)
	require.Len(t, edited.Updates, 1)

	stored, _ := svc.GetReport(r.ID)
	assert.Equal(t, edited, stored)
}

func TestNotFoundIsWrapped(t *testing.T) {
	n := &mockNotifier{}
	svc := NewReportService(repository.NewReportStore(), n)
	ctx := context.Background()

	_, err := svc.EditReport(ctx, "nope", sampleFields("Ana", "101"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteReport(ctx, "nope"), repository.ErrNotFound)
	_, err = svc.AddUpdate(ctx, "nope", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUpdate(ctx, "nope", 0), repository.ErrNotFound)
	assert.ErrorIs(t, svc.SetStatus(ctx, "nope", model.StatusCerrado), repository.ErrNotFound)

	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestNotifierFailureDoesNotUndoMutation(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("broker caído"))
	svc := NewReportService(repository.NewReportStore(), n)
	ctx := context.Background()

	r := svc.CreateReport(ctx, sampleFields("Ana", "101"))
	require.NoError(t, svc.SetStatus(ctx, r.ID, model.StatusCerrado))

	got, err := svc.GetReport(r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCerrado, got.Status)
}

func TestMutationsEmitEvents(t *testing.T) {
	n := &mockNotifier{}
	for _, kind := range []EventKind{EventCreated, EventStatusChanged, EventUpdateAdded, EventUpdateDeleted, EventUpdated, EventDeleted} {
		n.On("Notify", mock.Anything, kindIs(kind)).Return(nil).Once()
	}
	svc := NewReportService(repository.NewReportStore(), n)
	ctx := context.Background()

	r := svc.CreateReport(ctx, sampleFields("Ana", "101"))
	require.NoError(t, svc.SetStatus(ctx, r.ID, model.StatusEnProceso))
	_, err := svc.AddUpdate(ctx, r.ID, "nota")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUpdate(ctx, r.ID, 0))
	_, err = svc.EditReport(ctx, r.ID, sampleFields("Ana", "103"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReport(ctx, r.ID))

	n.AssertExpectations(t)
	var last uint64
	for _, call := range n.Calls {
		ev := call.Arguments.Get(1).(ReportEvent)
		assert.Greater(t, ev.Version, last)
		last = ev.Version
	}
}

func TestFilterSelector(t *testing.T) {
	svc := NewReportService(repository.NewReportStore(), nil)
	ctx := context.Background()
	a := svc.CreateReport(ctx, sampleFields("Ana", "101"))
	svc.CreateReport(ctx, sampleFields("Beto", "202"))
	require.NoError(t, svc.SetStatus(ctx, a.ID, model.StatusCerrado))

	all, err := svc.Filter("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	closed, err := svc.Filter(string(model.StatusCerrado), "")
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, a.ID, closed[0].ID)

	_, err = svc.Filter("Cerrados", "")
	assert.ErrorIs(t, err, ErrInvalidSelector)

	assert.Equal(t, 1, svc.Counts()[model.StatusAbierto])
	assert.Equal(t, 1, svc.Counts()[model.StatusCerrado])
}

func TestEditReportKeepsConcurrentUpdates(t *testing.T) {
	svc := NewReportService(repository.NewReportStore(), nil)
	ctx := context.Background()
	r := svc.CreateReport(ctx, sampleFields("Ana", "101"))

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.AddUpdate(ctx, r.ID, "nota")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.EditReport(ctx, r.ID, sampleFields("Ana López", "102"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.GetReport(r.ID)
	require.NoError(t, err)
	assert.Len(t, got.Updates, n)
	assert.Equal(t, "Ana López", got.GuestName)
}

func TestEventVersionMatchesStore(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything).Return(nil)
	store := repository.NewReportStore()
	svc := NewReportService(store, n)
	ctx := context.Background()

	r := svc.CreateReport(ctx, sampleFields("Ana", "101"))
	_, err := svc.AddUpdate(ctx, r.ID, "nota")
	require.NoError(t, err)

	require.Len(t, n.Calls, 2)
	ev := n.Calls[1].Arguments.Get(1).(ReportEvent)
	assert.Equal(t, EventUpdateAdded, ev.Kind)
	assert.Equal(t, store.Version(), ev.Version)
}

// interleavingRepo agrega una actualización justo después de cada lectura,
// como lo haría otro handler entre la lectura y la escritura.
type interleavingRepo struct {
	*repository.ReportStore
	injected int
}

func (r *interleavingRepo) Get(id string) (model.OpportunityReport, error) {
	got, err := r.ReportStore.Get(id)
	if err == nil {
		if _, _, addErr := r.ReportStore.AddUpdate(id, "concurrente"); addErr == nil {
			r.injected++
		}
	}
	return got, err
}

func TestEditReportDoesNotOverwriteInterleavedUpdate(t *testing.T) {
	store := repository.NewReportStore()
	repo := &interleavingRepo{ReportStore: store}
	svc := NewReportService(repo, nil)
	ctx := context.Background()
	r := svc.CreateReport(ctx, sampleFields("Ana", "101"))

	edited, err := svc.EditReport(ctx, r.ID, sampleFields("Ana López", "102"))
	require.NoError(t, err)
	assert.Equal(t, "Ana López", edited.GuestName)

	got, err := store.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana López", got.GuestName)
	assert.Len(t, got.Updates, repo.injected)
}
