package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studygo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimetableCmd(app *App, idFlags *identityFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timetable",
		Aliases: []string{"tt"},
		Short:   "Manage saved timetables",
	}

	cmd.AddCommand(
		newTimetableListCmd(app, idFlags),
		newTimetableShowCmd(app, idFlags),
		newTimetableRemoveCmd(app, idFlags),
	)

	return cmd
}

func newTimetableListCmd(app *App, idFlags *identityFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved timetables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.planService()
			if err != nil {
				return err
			}
			id, err := requireAccount(cmd, app, idFlags)
			if err != nil {
				return err
			}
			items, err := plans.List(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimetableList(items))
			return nil
		},
	}
}

func newTimetableShowCmd(app *App, idFlags *identityFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved timetable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.planService()
			if err != nil {
				return err
			}
			id, err := requireAccount(cmd, app, idFlags)
			if err != nil {
				return err
			}
			rec, err := plans.Get(cmd.Context(), id, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimetable(rec))
			return nil
		},
	}
}

func newTimetableRemoveCmd(app *App, idFlags *identityFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a saved timetable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.planService()
			if err != nil {
				return err
			}
			id, err := requireAccount(cmd, app, idFlags)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if !yes && app.interactive() {
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete timetable %q?", name), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := plans.Delete(cmd.Context(), id, name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted timetable %q", name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
