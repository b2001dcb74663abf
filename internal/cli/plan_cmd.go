package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/studygo/internal/cli/formatter"
	"github.com/alexanderramin/studygo/internal/contract"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/spf13/cobra"
)

type planFlags struct {
	topics  string
	days    int
	hours   int
	name    string
	verbose bool
}

func (p planFlags) request() domain.TopicRequest {
	return domain.TopicRequest{Topics: p.topics, TotalDays: p.days, DailyHours: p.hours}
}

func newPlanCmd(app *App, idFlags *identityFlags) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a day-by-day study timetable",
		Long: `Generate a study timetable for the given topics within a budget of days
and hours per day. Signed-in users get the plan saved under --name, or
under a dated default name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.planService()
			if err != nil {
				return err
			}
			id, err := resolveIdentity(cmd, app, idFlags)
			if err != nil {
				return err
			}

			if flags.topics == "" && app.interactive() {
				values := planFormValues{name: flags.name}
				if err := planForm(&values, !id.IsGuest()).Run(); err != nil {
					return err
				}
				values.apply(&flags)
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Generating your timetable...")
			}
			res, err := plans.Generate(cmd.Context(), id, flags.request(), flags.name)
			if stop != nil {
				stop()
			}
			if err != nil {
				var planErr *contract.PlanError
				if errors.As(err, &planErr) {
					fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatPlanError(planErr, flags.verbose))
				}
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanResult(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.topics, "topics", "t", "", "Topics to study")
	cmd.Flags().IntVarP(&flags.days, "days", "d", 0, "Total days available")
	cmd.Flags().IntVar(&flags.hours, "hours", 0, "Hours available per day")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Name to save the plan under")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show model output when a plan is rejected")

	return cmd
}
