package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/storefront/internal/interfaces/console"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Pedidos del usuario (o de toda la tienda para administradores)",
	RunE: func(cmd *cobra.Command, args []string) error {
		show(cmd, ordersPath())
		return nil
	},
}

var ordersStatusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Estados de pedido que anuncia el backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		statuses, err := app.API.OrderStatuses(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(statuses, "\n"))
		return nil
	},
}

var ordersSetStatusCmd = &cobra.Command{
	Use:   "set-status <order-id> <status>",
	Short: "Cambia el estado de un pedido (solo administradores)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		view, err := openOrders(ctx)
		if err != nil {
			return err
		}
		if err := view.UpdateStatus(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Router.Render())
		return nil
	},
}

var ordersExportCmd = &cobra.Command{
	Use:   "export <file.pdf>",
	Short: "Exporta a PDF los pedidos visibles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		view, err := openOrders(ctx)
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := view.ExportPDF(ctx, f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pedidos exportados a %s\n", len(view.Controller().Orders()), args[0])
		return nil
	},
}

func init() {
	ordersCmd.AddCommand(ordersStatusesCmd, ordersSetStatusCmd, ordersExportCmd)
}

func ordersPath() string {
	return app.DashboardPath() + "/orders"
}

// openOrders navega al listado y espera a que el gate autorice y cargue.
func openOrders(ctx context.Context) (*console.OrdersView, error) {
	if !app.Session.Session().Authenticated() {
		return nil, fmt.Errorf("inicia sesión primero (storefront login)")
	}
	app.Router.Navigate(ordersPath(), console.NavState{})
	for {
		if view, ok := app.OrdersView(); ok {
			if err := view.Wait(ctx); err != nil {
				return nil, err
			}
			return view, nil
		}
		if loc, _ := app.Router.Location(); loc != ordersPath() {
			return nil, fmt.Errorf("sin acceso a %s", ordersPath())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-app.Router.Changes():
		}
	}
}
