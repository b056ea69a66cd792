package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

func servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Browse the service catalog",
	}
	cmd.AddCommand(servicesListCmd())
	return cmd
}

func servicesListCmd() *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog services",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			var services []Client.Service
			var err error
			if activeOnly {
				services, err = api.ActiveServices()
			} else {
				services, _, err = api.ListServices(Client.ServiceFilter{})
			}
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "CODE\tNAME\tBASE PRICE\tACTIVE")
			for _, service := range services {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%t\n",
					service.Code, service.Name, Client.FormatAmount(service.BasePrice), service.IsActive)
			}
			return writer.Flush()
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active services")
	return cmd
}
