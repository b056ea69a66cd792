package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"OdontAll/Client"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin only)",
	}
	cmd.AddCommand(usersListCmd(), usersCreateCmd())
	return cmd
}

func usersListCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			users, count, err := api.ListUsers(Client.UserFilter{Role: role})
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tUSERNAME\tNAME\tROLE\tACTIVE")
			for _, user := range users {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%t\n",
					user.ID, user.Username, user.FullName(), user.Role, user.IsActive)
			}
			writer.Flush()
			fmt.Printf("%d total\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "filter by role (admin, professional, staff)")
	return cmd
}

func usersCreateCmd() *cobra.Command {
	var input Client.UserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if !api.Session().CanManageUsers() {
				return fmt.Errorf("user management requires the admin role")
			}
			user, err := api.CreateUser(input)
			if err != nil {
				return err
			}
			fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Username, "username", "", "username")
	cmd.Flags().StringVar(&input.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&input.Role, "role", "professional", "role (admin, professional, staff)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}
