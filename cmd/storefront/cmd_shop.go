package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/storefront/internal/domain/entity"
	"github.com/jhoicas/storefront/internal/interfaces/console"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Navega a una ruta e imprime la vista hasta que se estabiliza",
	Long: `Navega a una ruta de la tienda (por ejemplo /dashboard/user) e imprime
cada render. Las rutas protegidas verifican el token en el servidor y, si no
está autorizado, cuentan hacia atrás y redirigen al login.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		show(cmd, args[0])
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Busca productos por palabra clave",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := app.SearchProducts(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Router.Render())
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category <slug>",
	Short: "Lista los productos de una categoría",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		show(cmd, "/category/"+args[0])
		return nil
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Carrito persistente (no depende de la sesión)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Router.Navigate("/cart", console.NavState{})
		fmt.Fprintln(cmd.OutOrStdout(), app.Router.Render())
		return nil
	},
}

var cartAddQty int

var cartAddCmd = &cobra.Command{
	Use:   "add <keyword>",
	Short: "Agrega al carrito el primer producto que coincide con la búsqueda",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		keyword := strings.Join(args, " ")
		products, err := app.API.SearchProducts(ctx, keyword)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return fmt.Errorf("sin productos para %q", keyword)
		}
		p := products[0]
		app.Cart.Add(entity.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Price:     p.Price,
			Quantity:  cartAddQty,
		})
		fmt.Fprintf(cmd.OutOrStdout(), "%s agregado (%d items)\n", p.Name, app.Cart.Count())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Quita un producto del carrito",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Cart.Remove(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%d items\n", app.Cart.Count())
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Vacía el carrito",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Cart.Clear()
		fmt.Fprintln(cmd.OutOrStdout(), "Your Cart Is Empty")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&cartAddQty, "quantity", "q", 1, "Cantidad")
	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartClearCmd)
}
