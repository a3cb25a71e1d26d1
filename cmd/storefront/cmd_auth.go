package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/storefront/internal/application/dto"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Inicia sesión y guarda el token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := app.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		u := app.Session.Session().User
		fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s\ndashboard: %s\n", u.Name, app.DashboardPath())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Cierra la sesión local",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Logout Successfully")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Muestra la sesión guardada",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.Session.Session()
		if !s.Authenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
			return nil
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s.User)
	},
}

var registerIn dto.RegisterRequest

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Crea una cuenta de cliente",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		user, err := app.Register(ctx, registerIn)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Register Successfully, please login (%s)\n", user.Email)
		return nil
	},
}

var profileIn dto.UpdateProfileRequest

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Actualiza el perfil del usuario en sesión",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		user, err := app.UpdateProfile(ctx, profileIn)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile Updated Successfully\n%s <%s>\n%s\n", user.Name, user.Email, user.Address)
		return nil
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&registerIn.Name, "name", "", "Nombre")
	f.StringVar(&registerIn.Email, "email", "", "Email")
	f.StringVar(&registerIn.Password, "password", "", "Contraseña (mínimo 6 caracteres)")
	f.StringVar(&registerIn.Phone, "phone", "", "Teléfono")
	f.StringVar(&registerIn.Address, "address", "", "Dirección")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	p := profileCmd.Flags()
	p.StringVar(&profileIn.Name, "name", "", "Nombre")
	p.StringVar(&profileIn.Phone, "phone", "", "Teléfono")
	p.StringVar(&profileIn.Address, "address", "", "Dirección")
	p.StringVar(&profileIn.Password, "password", "", "Nueva contraseña")
}
