package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "STOREFRONT_PASSWORD"

func passwordFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("password required: use --password or set %s", PasswordEnv)
}

func newLoginCommand(rt *runtime) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in to the shop",
		Args:  cobra.ExactArgs(1),
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}
			sess, err := rt.sessions.Login(cmd.Context(), rt.shopper, args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", sess.User.Username)
			return nil
		}),
	}
	cmd.Flags().StringVar(&password, "password", "", "password (defaults to $"+PasswordEnv+")")
	return cmd
}

func newRegisterCommand(rt *runtime) *cobra.Command {
	var (
		reg      model.Registration
		password string
	)

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}
			if reg.Email == "" {
				return errors.New("--email is required")
			}
			reg.Username = args[0]
			reg.Password = pw

			sess, err := rt.sessions.Register(cmd.Context(), rt.shopper, reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. You are signed in.\n", sess.User.Username)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&password, "password", "", "password (defaults to $"+PasswordEnv+")")
	f.StringVar(&reg.Email, "email", "", "email address")
	f.StringVar(&reg.NombreCompleto, "nombre", "", "full name")
	f.StringVar(&reg.Telefono, "telefono", "", "phone number")
	f.StringVar(&reg.Direccion, "direccion", "", "address")
	f.StringVar(&reg.MarcaPreferida, "marca", "", "preferred brand")
	f.StringVar(&reg.SistemaOperativoPreferido, "so", "", "preferred operating system")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; the cart is kept",
		Args:  cobra.NoArgs,
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			if err := rt.sessions.Logout(cmd.Context(), rt.shopper); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		}),
	}
}

func newProfileCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's profile",
		Args:  cobra.NoArgs,
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			profile, err := rt.sessions.RefreshProfile(cmd.Context(), rt.shopper)
			if err != nil {
				return err
			}
			return printProfile(cmd.OutOrStdout(), profile)
		}),
	}
}
