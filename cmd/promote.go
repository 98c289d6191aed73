package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

// promoteCmd changes a user's role. It is the only way to create an admin.
func promoteCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Change the role of an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := common.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			res := config.DB.Model(&user.User{}).
				Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
				Update("role", r)
			if res.Error != nil {
				return fmt.Errorf("update role: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("no user with email %s", email)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", email, r)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email of the user")
	cmd.Flags().StringVarP(&role, "role", "r", string(common.RoleAdmin), "Role to assign")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
