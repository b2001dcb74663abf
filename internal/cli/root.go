package cli

import (
	"fmt"

	"github.com/alexanderramin/studygo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
// Plans and Chats are nil when generation is disabled.
type App struct {
	Plans    service.StudyPlanService
	Chats    service.ChatService
	Accounts service.AccountService

	// IsInteractive reports whether stdin is a terminal. Forms, spinners and
	// the chat view are only used when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) planService() (service.StudyPlanService, error) {
	if a.Plans == nil {
		return nil, errGenerationDisabled
	}
	return a.Plans, nil
}

func (a *App) chatService() (service.ChatService, error) {
	if a.Chats == nil {
		return nil, errGenerationDisabled
	}
	return a.Chats, nil
}

var errGenerationDisabled = fmt.Errorf("generation is disabled: set STUDYGO_LLM_ENABLED=true")

// NewRootCmd creates the top-level "studygo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studygo",
		Short:         "Study planner and learning assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := &identityFlags{}
	bindIdentityFlags(root.PersistentFlags(), flags)
	root.MarkFlagsMutuallyExclusive("guest", "user")

	root.AddCommand(
		newPlanCmd(app, flags),
		newTimetableCmd(app, flags),
		newChatCmd(app, flags),
		newAccountCmd(app, flags),
	)

	return root
}
