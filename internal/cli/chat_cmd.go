package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studygo/internal/cli/formatter"
	"github.com/alexanderramin/studygo/internal/contract"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App, idFlags *identityFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the study assistant",
		Long: `Start an interactive conversation with the study assistant. Questions
outside academic or professional learning are politely refused.
Signed-in users have each conversation saved after the first answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chats, err := app.chatService()
			if err != nil {
				return err
			}
			if !app.interactive() {
				return errors.New("interactive chat needs a terminal; use 'studygo chat ask <question>'")
			}
			id, err := resolveIdentity(cmd, app, idFlags)
			if err != nil {
				return err
			}
			view := newChatView(cmd.Context(), chats, id)
			_, err = tea.NewProgram(view, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.AddCommand(
		newChatAskCmd(app, idFlags),
		newChatHistoryCmd(app, idFlags),
	)

	return cmd
}

func newChatAskCmd(app *App, idFlags *identityFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chats, err := app.chatService()
			if err != nil {
				return err
			}
			id, err := resolveIdentity(cmd, app, idFlags)
			if err != nil {
				return err
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			reply, err := chats.Send(cmd.Context(), id, domain.NewChatSession(), strings.Join(args, " "))
			if stop != nil {
				stop()
			}
			switch {
			case errors.Is(err, service.ErrChatNotSaved):
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(err.Error()))
			case err != nil:
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), reply)
			if id.IsGuest() {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.GuestNotice())
			}
			return nil
		},
	}
}

func newChatHistoryCmd(app *App, idFlags *identityFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved conversations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent conversations, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				chats, id, err := historyContext(cmd, app, idFlags)
				if err != nil {
					return err
				}
				history, err := chats.History(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChatHistory(history))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <number>",
			Short: "Show a conversation by its number in 'history list'",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				chats, id, err := historyContext(cmd, app, idFlags)
				if err != nil {
					return err
				}
				session := domain.NewChatSession()
				if err := loadByNumber(cmd, chats, id, session, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(session.Title()))
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTranscript(session.Transcript))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <title>",
			Short: "Delete every conversation with this title",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				chats, id, err := historyContext(cmd, app, idFlags)
				if err != nil {
					return err
				}
				title := strings.Join(args, " ")
				if err := chats.Delete(cmd.Context(), id, title); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted chat %q", title)))
				return nil
			},
		},
	)

	return cmd
}

func historyContext(cmd *cobra.Command, app *App, idFlags *identityFlags) (service.ChatService, domain.Identity, error) {
	chats, err := app.chatService()
	if err != nil {
		return nil, domain.Identity{}, err
	}
	id, err := requireAccount(cmd, app, idFlags)
	return chats, id, err
}

// loadByNumber loads the conversation listed under a 1-based number in the
// newest-first history listing.
func loadByNumber(cmd *cobra.Command, chats service.ChatService, id domain.Identity, session *domain.ChatSession, arg string) error {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return fmt.Errorf("invalid chat number %q", arg)
	}
	history, err := chats.History(cmd.Context(), id)
	if err != nil {
		return err
	}
	index, err := historyIndex(history, n)
	if err != nil {
		return err
	}
	return chats.Load(cmd.Context(), id, session, index)
}

// historyIndex maps a listing number to the record index it shows.
func historyIndex(history *contract.ChatHistory, n int) (int, error) {
	_, indexes, _ := history.Recent(len(history.Records))
	if n < 1 || n > len(indexes) {
		return 0, fmt.Errorf("no chat number %d (%d saved)", n, len(indexes))
	}
	return indexes[n-1], nil
}
