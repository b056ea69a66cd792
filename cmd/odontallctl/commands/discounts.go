package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

func discountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discounts",
		Short: "Browse discounts, retentions and deductions",
	}
	cmd.AddCommand(discountsListCmd())
	return cmd
}

func discountsListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured discounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			discounts, _, err := api.ListDiscounts(Client.DiscountFilter{Category: category})
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tCATEGORY\tTYPE\tVALUE\tMANDATORY\tACTIVE")
			for _, discount := range discounts {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%.2f\t%t\t%t\n",
					discount.Name, discount.Category, discount.DiscountType,
					discount.Value, discount.IsMandatory, discount.IsActive)
			}
			return writer.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category (discount, retention, deduction)")
	return cmd
}
