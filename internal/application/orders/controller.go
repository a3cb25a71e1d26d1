// Package orders controla el listado de pedidos y, para administradores, los
// cambios de estado. Las mutaciones se serializan por pedido; pedidos distintos
// avanzan en paralelo.
package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront/internal/domain"
	"github.com/jhoicas/storefront/internal/domain/entity"
)

var (
	// ErrMutationInFlight ya hay un cambio de estado en curso para ese pedido.
	ErrMutationInFlight = errors.New("orders: actualización en curso para este pedido")
	// ErrClosed el controlador fue cerrado.
	ErrClosed = errors.New("orders: controlador cerrado")
	// ErrNoReportGenerator no se configuró generador de PDF.
	ErrNoReportGenerator = errors.New("orders: sin generador de reportes")
)

// API endpoints de pedidos del backend.
type API interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	OrderStatuses(ctx context.Context) ([]string, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (entity.Order, error)
}

// Report datos del reporte PDF de pedidos.
type Report struct {
	Title       string
	GeneratedBy string
	GeneratedAt time.Time
	Orders      []entity.Order
}

// ReportGenerator puerto para generar el PDF de pedidos (implementación: infrastructure/pdf).
type ReportGenerator interface {
	GenerateOrdersPDF(ctx context.Context, report Report) ([]byte, error)
}

// Option configura el Controller.
type Option func(*Controller)

// WithAdmin habilita UpdateStatus. Sin esta opción el controlador es de solo lectura.
func WithAdmin() Option {
	return func(c *Controller) { c.admin = true }
}

// WithLogger inyecta el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithReportGenerator habilita ExportPDF.
func WithReportGenerator(gen ReportGenerator, operator string) Option {
	return func(c *Controller) {
		c.report = gen
		c.operator = operator
	}
}

// Controller estado de la vista de pedidos.
type Controller struct {
	api      API
	admin    bool
	report   ReportGenerator
	operator string
	log      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	orders   []entity.Order
	statuses []string
	inflight map[string]struct{}
	failures map[string]error
}

// NewController construye el controlador. Close cancela las llamadas pendientes.
func NewController(api API, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		api:      api,
		log:      zerolog.Nop(),
		ctx:      ctx,
		cancel:   cancel,
		inflight: make(map[string]struct{}),
		failures: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load trae GET /orders (respetando el orden del servidor) y GET /orders/statuses.
// Si falla conserva lo que había.
func (c *Controller) Load(ctx context.Context) error {
	ctx, stop := c.bind(ctx)
	defer stop()

	statuses, err := c.api.OrderStatuses(ctx)
	if err != nil {
		return fmt.Errorf("orders: estados: %w", err)
	}
	list, err := c.api.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("orders: listado: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.statuses = append([]string(nil), statuses...)
	c.orders = make([]entity.Order, 0, len(list))
	for _, o := range list {
		c.orders = append(c.orders, cloneOrder(o))
	}
	c.log.Debug().Int("orders", len(list)).Int("statuses", len(statuses)).Msg("pedidos cargados")
	return nil
}

// Orders devuelve una copia del listado actual.
func (c *Controller) Orders() []entity.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

// Statuses devuelve los estados que anunció el backend.
func (c *Controller) Statuses() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.statuses...)
}

// Busy indica si hay un cambio de estado en curso para el pedido.
func (c *Controller) Busy(orderID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[orderID]
	return ok
}

// Failure devuelve el error del último cambio de estado fallido del pedido (nil si no hay).
func (c *Controller) Failure(orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures[orderID]
}

// UpdateStatus PUT /orders/:id/status. En éxito reemplaza ese pedido por la
// versión que devolvió el backend; en error el pedido queda igual y el fallo
// se registra en Failure(id).
func (c *Controller) UpdateStatus(ctx context.Context, orderID, status string) (entity.Order, error) {
	if !c.admin {
		return entity.Order{}, domain.ErrForbidden
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return entity.Order{}, ErrClosed
	}
	if !contains(c.statuses, status) {
		c.mu.Unlock()
		return entity.Order{}, fmt.Errorf("%w: estado %q no anunciado por el backend", domain.ErrInvalidInput, status)
	}
	if c.indexOf(orderID) < 0 {
		c.mu.Unlock()
		return entity.Order{}, domain.ErrNotFound
	}
	if _, busy := c.inflight[orderID]; busy {
		c.mu.Unlock()
		return entity.Order{}, ErrMutationInFlight
	}
	c.inflight[orderID] = struct{}{}
	delete(c.failures, orderID)
	c.mu.Unlock()

	callCtx, stop := c.bind(ctx)
	updated, err := c.api.UpdateOrderStatus(callCtx, orderID, status)
	stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, orderID)
	if c.closed {
		return entity.Order{}, ErrClosed
	}
	if err != nil {
		c.failures[orderID] = err
		c.log.Warn().Err(err).Str("order_id", orderID).Str("status", status).Msg("cambio de estado rechazado")
		return entity.Order{}, err
	}
	if i := c.indexOf(orderID); i >= 0 {
		c.orders[i] = cloneOrder(updated)
	}
	c.log.Info().Str("order_id", orderID).Str("status", updated.Status).Msg("estado de pedido actualizado")
	return cloneOrder(updated), nil
}

// ExportPDF escribe en w el reporte PDF del listado actual.
func (c *Controller) ExportPDF(ctx context.Context, w io.Writer) error {
	if c.report == nil {
		return ErrNoReportGenerator
	}
	out, err := c.report.GenerateOrdersPDF(ctx, Report{
		Title:       "Reporte de pedidos",
		GeneratedBy: c.operator,
		GeneratedAt: time.Now(),
		Orders:      c.Orders(),
	})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Close cancela las llamadas pendientes; sus resultados ya no se aplican.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// bind deriva de ctx un contexto que también se cancela con Close.
func (c *Controller) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// indexOf requiere c.mu.
func (c *Controller) indexOf(orderID string) int {
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cloneOrder(o entity.Order) entity.Order {
	o.Products = append([]entity.Product(nil), o.Products...)
	return o
}
