package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

var (
	serverURL string
	api       *Client.Client
)

func Execute() error {
	root := &cobra.Command{
		Use:   "odontallctl",
		Short: "Administration CLI for an OdontAll clinic server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := Client.NewFileStore()
			if err != nil {
				return err
			}
			api = Client.New(serverURL, store)
			api.OnSessionInvalidated = func() {
				fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
			}
			api.Restore()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", envOr("ODONTALL_SERVER", "http://localhost:8000"), "server base URL")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		professionalsCmd(), servicesCmd(), attentionsCmd(), discountsCmd(),
		settlementsCmd(), usersCmd(),
	)
	return root.Execute()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// requireSession fails fast with a friendly message instead of letting every
// subcommand surface the raw error.
func requireSession() error {
	if api.Session() == nil {
		return fmt.Errorf("not logged in, run: odontallctl login")
	}
	return nil
}
