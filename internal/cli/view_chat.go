package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studygo/internal/cli/formatter"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type chatKeyMap struct {
	Send key.Binding
	Quit key.Binding
}

func defaultChatKeyMap() chatKeyMap {
	return chatKeyMap{
		Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// chatView is the interactive conversation. Replies are fetched inside
// Update, one request at a time.
type chatView struct {
	ctx     context.Context
	chats   service.ChatService
	id      domain.Identity
	session *domain.ChatSession
	input   textinput.Model
	keys    chatKeyMap

	lines    []string
	quitting bool
}

func newChatView(ctx context.Context, chats service.ChatService, id domain.Identity) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000
	ti.Placeholder = "Ask about what to study..."

	return &chatView{
		ctx:     ctx,
		chats:   chats,
		id:      id,
		session: domain.NewChatSession(),
		input:   ti,
		keys:    defaultChatKeyMap(),
		lines:   []string{formatter.FormatChatWelcome(id)},
	}
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, v.keys.Quit):
			v.quitting = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Send):
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	if v.quitting {
		return ""
	}
	var b strings.Builder
	for _, line := range v.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(formatter.StylePurple.Render(v.id.DisplayName()))
	b.WriteString(formatter.Dim("> "))
	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%s %s · %s %s",
		v.keys.Send.Help().Key, v.keys.Send.Help().Desc,
		v.keys.Quit.Help().Key, v.keys.Quit.Help().Desc)))
	return b.String()
}

// ── input handling ───────────────────────────────────────────────────────────

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		v.quitting = true
		return v, tea.Quit
	case "/new":
		v.session.Reset()
		v.lines = []string{formatter.FormatChatWelcome(v.id), formatter.Dim("Started a new chat.")}
		return v, nil
	case "/history":
		v.showHistory()
		return v, nil
	case "/load":
		if len(fields) < 2 {
			v.lines = append(v.lines, formatter.Failure("usage: /load N"))
			return v, nil
		}
		v.load(fields[1])
		return v, nil
	}

	v.lines = append(v.lines, formatter.FormatChatMessage(domain.ChatMessage{Role: domain.RoleUser, Content: input}))
	reply, err := v.chats.Send(v.ctx, v.id, v.session, input)
	switch {
	case errors.Is(err, service.ErrChatNotSaved):
		v.lines = append(v.lines, formatter.FormatChatMessage(domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}))
		v.lines = append(v.lines, formatter.Warning(err.Error()))
	case err != nil:
		v.lines = append(v.lines, formatter.Failure(err.Error()))
	default:
		v.lines = append(v.lines, formatter.FormatChatMessage(domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}))
	}
	return v, nil
}

func (v *chatView) showHistory() {
	if v.id.IsGuest() {
		v.lines = append(v.lines, formatter.GuestNotice())
		return
	}
	history, err := v.chats.History(v.ctx, v.id)
	if err != nil {
		v.lines = append(v.lines, formatter.Failure(err.Error()))
		return
	}
	v.lines = append(v.lines, strings.TrimRight(formatter.FormatChatHistory(history), "\n"))
}

func (v *chatView) load(arg string) {
	if v.id.IsGuest() {
		v.lines = append(v.lines, formatter.GuestNotice())
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		v.lines = append(v.lines, formatter.Failure(fmt.Sprintf("invalid chat number %q", arg)))
		return
	}
	history, err := v.chats.History(v.ctx, v.id)
	if err == nil {
		var index int
		if index, err = historyIndex(history, n); err == nil {
			err = v.chats.Load(v.ctx, v.id, v.session, index)
		}
	}
	if err != nil {
		v.lines = append(v.lines, formatter.Failure(err.Error()))
		return
	}
	v.lines = []string{
		formatter.FormatChatWelcome(v.id),
		formatter.Dim("Loaded: " + v.session.Title()),
		strings.TrimRight(formatter.FormatTranscript(v.session.Transcript), "\n"),
	}
}
