package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/storefront/internal/application/orders"
)

// OrdersView listado de pedidos; en el panel admin permite cambiar estados.
type OrdersView struct {
	*loaderView
	ctrl  *orders.Controller
	admin bool
}

func newOrdersView(ctrl *orders.Controller, admin bool, rc RouteContext) *OrdersView {
	title := "Orders"
	if admin {
		title = "All Orders"
	}
	v := &OrdersView{ctrl: ctrl, admin: admin}
	v.loaderView = &loaderView{rc: rc, title: title, fetch: ctrl.Load, body: v.body}
	return v
}

// Unmount cancela las llamadas pendientes del controlador.
func (v *OrdersView) Unmount() {
	v.ctrl.Close()
	v.loaderView.Unmount()
}

// Wait espera la carga inicial de estados y pedidos.
func (v *OrdersView) Wait(ctx context.Context) error {
	return v.loaderView.Wait(ctx)
}

// Controller controlador de pedidos de la vista.
func (v *OrdersView) Controller() *orders.Controller {
	return v.ctrl
}

// UpdateStatus cambia el estado de un pedido y refresca la vista.
func (v *OrdersView) UpdateStatus(ctx context.Context, orderID, status string) error {
	_, err := v.ctrl.UpdateStatus(ctx, orderID, status)
	v.rc.Notify()
	return err
}

// ExportPDF escribe el reporte de los pedidos mostrados.
func (v *OrdersView) ExportPDF(ctx context.Context, w io.Writer) error {
	return v.ctrl.ExportPDF(ctx, w)
}

func (v *OrdersView) body() string {
	list := v.ctrl.Orders()
	if len(list) == 0 {
		return "No orders"
	}
	var b strings.Builder
	for i, o := range list {
		payment := "Failed"
		if o.Payment.Success {
			payment = "Success"
		}
		fmt.Fprintf(&b, "#%d %s | %s | %s | %d products | $%s | %s\n",
			i+1, o.Status, o.Buyer.Name, payment, len(o.Products), o.Total().StringFixed(2), o.ID)
		if v.ctrl.Busy(o.ID) {
			b.WriteString("   updating...\n")
		}
		if err := v.ctrl.Failure(o.ID); err != nil {
			fmt.Fprintf(&b, "   update failed: %v\n", err)
		}
	}
	if v.admin {
		fmt.Fprintf(&b, "statuses: %s", strings.Join(v.ctrl.Statuses(), ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
