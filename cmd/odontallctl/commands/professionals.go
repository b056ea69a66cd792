package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

func professionalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "professionals",
		Short: "Manage the professional roster",
	}
	cmd.AddCommand(professionalsListCmd(), professionalsShowCmd(), professionalsHistoryCmd())
	return cmd
}

func professionalsListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List professionals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			professionals, count, err := api.ListProfessionals(Client.ProfessionalFilter{Status: status})
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tSPECIALIZATION\tCOMMISSION %\tSTATUS")
			for _, professional := range professionals {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%.1f\t%s\n",
					professional.ID, professional.FullName(), professional.Specialization,
					professional.DefaultCommissionPercentage, professional.Status)
			}
			writer.Flush()
			fmt.Printf("%d total\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, inactive, suspended)")
	return cmd
}

func professionalsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one professional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			professional, err := api.GetProfessional(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", professional.FullName())
			if professional.LicenseNumber != nil {
				fmt.Printf("License: %s\n", *professional.LicenseNumber)
			}
			fmt.Printf("Specialization: %s\n", professional.Specialization)
			fmt.Printf("Default commission: %.1f%%\n", professional.DefaultCommissionPercentage)
			fmt.Printf("Status: %s\n", professional.Status)
			return nil
		},
	}
}

func professionalsHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show a professional's settlement history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlements, err := api.ProfessionalSettlementHistory(args[0])
			if err != nil {
				return err
			}
			printSettlementTable(settlements)
			return nil
		},
	}
}
