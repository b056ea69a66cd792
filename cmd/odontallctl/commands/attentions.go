package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

func attentionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attentions",
		Short: "Browse and record attentions",
	}
	cmd.AddCommand(attentionsListCmd(), attentionsLogCmd())
	return cmd
}

func attentionsListCmd() *cobra.Command {
	var filter Client.AttentionFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attentions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			attentions, count, err := api.ListAttentions(filter)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "DATE\tPATIENT\tSERVICE\tCHARGED\tSTATUS")
			for _, attention := range attentions {
				serviceName := attention.ServiceID
				if attention.Service != nil {
					serviceName = attention.Service.Name
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					attention.Date, attention.PatientName, serviceName,
					Client.FormatAmount(attention.AmountCharged), attention.Status)
			}
			writer.Flush()
			fmt.Printf("%d total\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.ProfessionalID, "professional", "", "filter by professional id")
	cmd.Flags().StringVar(&filter.StartDate, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "end", "", "period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status")
	return cmd
}

func attentionsLogCmd() *cobra.Command {
	var input Client.AttentionInput
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an attention",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			attention, err := api.CreateAttention(input)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded attention %s for %s on %s\n", attention.ID, attention.PatientName, attention.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.ProfessionalID, "professional", "", "professional id")
	cmd.Flags().StringVar(&input.ServiceID, "service", "", "service id")
	cmd.Flags().StringVar(&input.PatientName, "patient", "", "patient name")
	cmd.Flags().StringVar(&input.Date, "date", "", "attention date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&input.AmountCharged, "amount", 0, "amount charged")
	cmd.Flags().Float64Var(&input.InsuranceDiscountPercentage, "insurance-discount", 0, "insurance discount percentage")
	cmd.Flags().StringVar(&input.HealthInsurance, "insurance", "", "health insurance name")
	cmd.MarkFlagRequired("service")
	cmd.MarkFlagRequired("patient")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("amount")
	return cmd
}
