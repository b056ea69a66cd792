package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

func settlementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settlements",
		Short: "Manage settlement lifecycle",
	}
	cmd.AddCommand(
		settlementsListCmd(), settlementsShowCmd(), settlementsGenerateCmd(),
		settlementsCalculateCmd(), settlementsApproveCmd(), settlementsPayCmd(),
		settlementsCancelCmd(), settlementsReportCmd(), settlementsExportCmd(),
	)
	return cmd
}

func printSettlementTable(settlements []Client.Settlement) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tPROFESSIONAL\tPERIOD\tNET\tSTATUS")
	for _, settlement := range settlements {
		name := settlement.ProfessionalID
		if settlement.Professional != nil {
			name = settlement.Professional.FullName()
		}
		fmt.Fprintf(writer, "%s\t%s\t%s - %s\t%s\t%s\n",
			settlement.ID, name, settlement.PeriodStart, settlement.PeriodEnd,
			Client.FormatAmount(settlement.NetAmount), Client.StatusLabel(settlement.Status))
	}
	writer.Flush()
}

func settlementsListCmd() *cobra.Command {
	var filter Client.SettlementFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List settlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlements, count, err := api.ListSettlements(filter)
			if err != nil {
				return err
			}
			printSettlementTable(settlements)
			fmt.Printf("%d total\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.ProfessionalID, "professional", "", "filter by professional id")
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status")
	return cmd
}

func settlementsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one settlement with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlement, err := api.GetSettlement(args[0])
			if err != nil {
				return err
			}

			name := settlement.ProfessionalID
			if settlement.Professional != nil {
				name = settlement.Professional.FullName()
			}
			fmt.Printf("Settlement %s\n", settlement.ID)
			fmt.Printf("Professional: %s\n", name)
			fmt.Printf("Period: %s - %s\n", settlement.PeriodStart, settlement.PeriodEnd)
			fmt.Printf("Status: %s\n", Client.StatusLabel(settlement.Status))
			if settlement.PaymentReference != "" {
				fmt.Printf("Payment reference: %s\n", settlement.PaymentReference)
			}
			fmt.Println()

			if len(settlement.LineItems) > 0 {
				writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(writer, "DATE\tSERVICE\tPATIENT\tCHARGED\t%\tCOMMISSION")
				for _, item := range settlement.LineItems {
					fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
						item.AttendanceDate, item.ServiceName, item.PatientName,
						Client.FormatAmount(item.AmountCharged), item.CommissionPercentage,
						Client.FormatAmount(item.CommissionAmount))
				}
				writer.Flush()
				fmt.Println()
			}
			for _, applied := range settlement.DiscountsApplied {
				fmt.Printf("%s (%s): -%s\n", applied.DiscountName, applied.Category, Client.FormatAmount(applied.DiscountAmount))
			}

			fmt.Printf("Total commission: %s\n", Client.FormatAmount(settlement.TotalCommission))
			fmt.Printf("Total discounts:  %s\n", Client.FormatAmount(settlement.TotalDiscounts))
			fmt.Printf("Net amount:       %s\n", Client.FormatAmount(settlement.NetAmount))

			if actions := Client.AllowedActions(settlement.Status); len(actions) > 0 {
				fmt.Printf("Available actions: %s\n", strings.Join(actions, ", "))
			}
			return nil
		},
	}
}

func settlementsGenerateCmd() *cobra.Command {
	var periodStart, periodEnd string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate draft settlements for every active professional in a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			result, err := api.GenerateSettlementsForPeriod(periodStart, periodEnd)
			if err != nil {
				return err
			}
			fmt.Printf("%d new drafts created\n", result.CreatedCount)
			printSettlementTable(result.Settlements)
			return nil
		},
	}
	cmd.Flags().StringVar(&periodStart, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&periodEnd, "end", "", "period end (YYYY-MM-DD)")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func settlementsCalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculate <id>",
		Short: "Calculate (or recalculate) a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlement, err := api.CalculateSettlement(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Calculated: %d attentions, net %s\n",
				len(settlement.LineItems), Client.FormatAmount(settlement.NetAmount))
			return nil
		},
	}
}

func settlementsApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a calculated settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlement, err := api.ApproveSettlement(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Settlement %s approved, net %s\n", settlement.ID, Client.FormatAmount(settlement.NetAmount))
			return nil
		},
	}
}

func settlementsPayCmd() *cobra.Command {
	var reference string
	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark an approved settlement as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlement, err := api.MarkSettlementAsPaid(args[0], reference)
			if err != nil {
				return err
			}
			fmt.Printf("Settlement %s paid (reference %s)\n", settlement.ID, settlement.PaymentReference)
			return nil
		},
	}
	cmd.Flags().StringVar(&reference, "reference", "", "payment reference (transfer number, check number)")
	cmd.MarkFlagRequired("reference")
	return cmd
}

func settlementsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a settlement that has not been paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			settlement, err := api.CancelSettlement(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Settlement %s cancelled\n", settlement.ID)
			return nil
		},
	}
}

func settlementsReportCmd() *cobra.Command {
	var filter Client.SettlementFilter
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize settlements by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			report, err := api.GetSettlementReport(filter)
			if err != nil {
				return err
			}
			fmt.Printf("Settlements: %d, total net %s\n", report.TotalSettlements, Client.FormatAmount(report.TotalAmount))
			for _, status := range []string{
				Client.SettlementDraft, Client.SettlementCalculated, Client.SettlementApproved,
				Client.SettlementPaid, Client.SettlementCancelled,
			} {
				bucket := report.ByStatus[status]
				fmt.Printf("  %-11s %3d  %s\n", Client.StatusLabel(status), bucket.Count, Client.FormatAmount(bucket.Total))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.StartDate, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "end", "", "period end (YYYY-MM-DD)")
	return cmd
}

func settlementsExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export one settlement as PDF, or all as a spreadsheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			var data []byte
			var err error
			if len(args) == 1 {
				data, err = api.DownloadSettlementPDF(args[0])
				if output == "" {
					output = "settlement_" + args[0] + ".pdf"
				}
			} else {
				data, err = api.DownloadSettlementsExcel()
				if output == "" {
					output = "settlements.xlsx"
				}
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%d bytes)\n", output, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
