package orders_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/storefront/internal/application/orders"
	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testStatuses = []string{"Not Processed", "Processing", "Shipped", "Delivered", "Cancelled"}

// fakeAPI backend de pedidos en memoria. Con gate != nil, UpdateOrderStatus
// espera a que el test libere la llamada (o a que se cancele el contexto).
type fakeAPI struct {
	mu        sync.Mutex
	orders    []entity.Order
	updateErr error
	listErr   error
	gate      chan struct{}
	started   chan string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		orders: []entity.Order{
			{ID: "o2", Status: "Not Processed", Buyer: entity.OrderBuyer{ID: "u1", Name: "John Doe"}},
			{ID: "o1", Status: "Processing", Buyer: entity.OrderBuyer{ID: "u2", Name: "Jane Roe"}},
		},
		started: make(chan string, 8),
	}
}

func (f *fakeAPI) ListOrders(context.Context) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Order(nil), f.orders...), nil
}

func (f *fakeAPI) OrderStatuses(context.Context) ([]string, error) {
	return testStatuses, nil
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, id, status string) (entity.Order, error) {
	f.started <- id
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return entity.Order{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return entity.Order{}, f.updateErr
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			f.orders[i].UpdatedAt = time.Now()
			return f.orders[i], nil
		}
	}
	return entity.Order{}, domain.ErrNotFound
}

func loaded(t *testing.T, api *fakeAPI, opts ...orders.Option) *orders.Controller {
	t.Helper()
	c := orders.NewController(api, opts...)
	require.NoError(t, c.Load(context.Background()))
	t.Cleanup(c.Close)
	return c
}

func statusOf(c *orders.Controller, id string) string {
	for _, o := range c.Orders() {
		if o.ID == id {
			return o.Status
		}
	}
	return ""
}

func waitStarted(t *testing.T, api *fakeAPI) string {
	t.Helper()
	select {
	case id := <-api.started:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("se esperaba una llamada al backend")
		return ""
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_RespetaOrdenDelServidor(t *testing.T) {
	c := loaded(t, newFakeAPI())

	list := c.Orders()
	require.Len(t, list, 2)
	assert.Equal(t, "o2", list[0].ID)
	assert.Equal(t, "o1", list[1].ID)
	assert.Equal(t, testStatuses, c.Statuses())
}

func TestLoad_ErrorConservaEstadoPrevio(t *testing.T) {
	api := newFakeAPI()
	c := loaded(t, api)

	api.listErr = domain.ErrUnavailable
	err := c.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Len(t, c.Orders(), 2)
}

func TestUpdateStatus_ExitoAplicaValorDevuelto(t *testing.T) {
	c := loaded(t, newFakeAPI(), orders.WithAdmin())

	got, err := c.UpdateStatus(context.Background(), "o1", "Shipped")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", got.Status)
	assert.Equal(t, "Shipped", statusOf(c, "o1"))
	assert.Equal(t, "Not Processed", statusOf(c, "o2"), "los demás pedidos no cambian")
	assert.NoError(t, c.Failure("o1"))
}

func TestUpdateStatus_FalloDejaPedidoIgualYRegistraError(t *testing.T) {
	api := newFakeAPI()
	api.updateErr = domain.ErrUnavailable
	c := loaded(t, api, orders.WithAdmin())

	_, err := c.UpdateStatus(context.Background(), "o1", "Shipped")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, "Processing", statusOf(c, "o1"))
	assert.ErrorIs(t, c.Failure("o1"), domain.ErrUnavailable)
	assert.False(t, c.Busy("o1"))
}

func TestUpdateStatus_ExitoLimpiaFalloAnterior(t *testing.T) {
	api := newFakeAPI()
	api.updateErr = errors.New("boom")
	c := loaded(t, api, orders.WithAdmin())

	_, err := c.UpdateStatus(context.Background(), "o1", "Shipped")
	require.Error(t, err)

	api.mu.Lock()
	api.updateErr = nil
	api.mu.Unlock()
	_, err = c.UpdateStatus(context.Background(), "o1", "Shipped")
	require.NoError(t, err)
	assert.NoError(t, c.Failure("o1"))
}

func TestUpdateStatus_SinAdminEsProhibido(t *testing.T) {
	api := newFakeAPI()
	c := loaded(t, api)

	_, err := c.UpdateStatus(context.Background(), "o1", "Shipped")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, api.started, 0)
}

func TestUpdateStatus_EstadoNoAnunciado(t *testing.T) {
	api := newFakeAPI()
	c := loaded(t, api, orders.WithAdmin())

	_, err := c.UpdateStatus(context.Background(), "o1", "Perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, api.started, 0, "no se llama al backend con un estado desconocido")
}

func TestUpdateStatus_PedidoDesconocido(t *testing.T) {
	c := loaded(t, newFakeAPI(), orders.WithAdmin())

	_, err := c.UpdateStatus(context.Background(), "nope", "Shipped")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_SerializaPorPedido(t *testing.T) {
	api := newFakeAPI()
	api.gate = make(chan struct{})
	c := loaded(t, api, orders.WithAdmin())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.UpdateStatus(context.Background(), "o1", "Shipped")
		assert.NoError(t, err)
	}()
	waitStarted(t, api)
	assert.True(t, c.Busy("o1"))

	_, err := c.UpdateStatus(context.Background(), "o1", "Delivered")
	assert.ErrorIs(t, err, orders.ErrMutationInFlight)

	// Otro pedido avanza en paralelo.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.UpdateStatus(context.Background(), "o2", "Processing")
		assert.NoError(t, err)
	}()
	waitStarted(t, api)
	assert.True(t, c.Busy("o2"))

	close(api.gate)
	wg.Wait()
	assert.False(t, c.Busy("o1"))
	assert.Equal(t, "Shipped", statusOf(c, "o1"))
	assert.Equal(t, "Processing", statusOf(c, "o2"))
}

func TestClose_CancelaLlamadaPendienteYNoAplicaResultado(t *testing.T) {
	api := newFakeAPI()
	api.gate = make(chan struct{})
	c := orders.NewController(api, orders.WithAdmin())
	require.NoError(t, c.Load(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := c.UpdateStatus(context.Background(), "o1", "Shipped")
		done <- err
	}()
	waitStarted(t, api)
	c.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, orders.ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Close debe cancelar la llamada pendiente")
	}
	assert.Equal(t, "Processing", statusOf(c, "o1"))

	_, err := c.UpdateStatus(context.Background(), "o2", "Shipped")
	assert.ErrorIs(t, err, orders.ErrClosed)
}

// fakeReport guarda el reporte recibido.
type fakeReport struct {
	got orders.Report
}

func (f *fakeReport) GenerateOrdersPDF(_ context.Context, r orders.Report) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.3 fake"), nil
}

func TestExportPDF(t *testing.T) {
	gen := &fakeReport{}
	c := loaded(t, newFakeAPI(), orders.WithReportGenerator(gen, "Admin"))

	var buf bytes.Buffer
	require.NoError(t, c.ExportPDF(context.Background(), &buf))
	assert.Equal(t, "%PDF-1.3 fake", buf.String())
	assert.Equal(t, "Admin", gen.got.GeneratedBy)
	assert.Len(t, gen.got.Orders, 2)
}

func TestExportPDF_SinGenerador(t *testing.T) {
	c := loaded(t, newFakeAPI())
	assert.ErrorIs(t, c.ExportPDF(context.Background(), &bytes.Buffer{}), orders.ErrNoReportGenerator)
}
