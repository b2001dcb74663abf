package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studygo/internal/cli/formatter"
	"github.com/alexanderramin/studygo/internal/contract"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *App, idFlags *identityFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create or delete an account",
	}

	cmd.AddCommand(
		newAccountSignupCmd(app, idFlags),
		newAccountDeleteCmd(app, idFlags),
	)

	return cmd
}

func newAccountSignupCmd(app *App, idFlags *identityFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account so plans and chats are saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := contract.Credentials{
				Username: strings.TrimSpace(idFlags.user),
				Password: idFlags.password,
			}
			if (creds.Username == "" || creds.Password == "") && app.interactive() {
				var confirm string
				if err := signupForm(&creds.Username, &creds.Password, &confirm).Run(); err != nil {
					return err
				}
				if confirm != creds.Password {
					return errors.New("passwords do not match")
				}
			}

			user, err := app.Accounts.SignUp(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Account %q created. Use --user %s to sign in.", user.Username, user.Username)))
			return nil
		},
	}
}

func newAccountDeleteCmd(app *App, idFlags *identityFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account with all saved plans and chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireAccount(cmd, app, idFlags)
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return errors.New("refusing to delete without confirmation: pass --yes")
				}
				confirmed := false
				title := fmt.Sprintf("Delete account %q with every saved plan and chat?", id.Username)
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Accounts.Delete(cmd.Context(), id.UserID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Account %q deleted.", id.Username)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
