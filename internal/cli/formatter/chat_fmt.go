package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studygo/internal/contract"
	"github.com/alexanderramin/studygo/internal/domain"
)

// GuestNotice reminds guests that nothing is kept.
func GuestNotice() string {
	return Dim("Guest mode: nothing is saved. Sign up to keep your plans and chats.")
}

func FormatChatMessage(m domain.ChatMessage) string {
	if m.Role == domain.RoleUser {
		return Dim("You: ") + m.Content
	}
	return StylePurple.Render("Assistant: ") + m.Content
}

func FormatTranscript(msgs []domain.ChatMessage) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(FormatChatMessage(m))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatChatWelcome is shown when an interactive chat starts.
func FormatChatWelcome(id domain.Identity) string {
	var b strings.Builder
	b.WriteString(Header("Study chat"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Signed in as %s. Ask about what to learn and how.", id.DisplayName())))
	b.WriteString("\n")
	b.WriteString(Dim("Commands: /new  /history  /load N  /quit"))
	if id.IsGuest() {
		b.WriteString("\n")
		b.WriteString(GuestNotice())
	}
	return b.String()
}

// FormatChatHistory lists the most recent transcripts, newest first and
// numbered from 1, and says how many older ones were left out.
func FormatChatHistory(h *contract.ChatHistory) string {
	return FormatChatHistoryAt(h, time.Now())
}

func FormatChatHistoryAt(h *contract.ChatHistory, now time.Time) string {
	if h == nil || len(h.Records) == 0 {
		return Dim("No saved chats.") + "\n"
	}
	recent, _, hidden := h.Recent(contract.RecentHistoryLimit)

	var b strings.Builder
	for i, rec := range recent {
		user, _ := (&domain.ChatSession{Transcript: rec.Messages}).Counts()
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			StyleBlue.Render(fmt.Sprintf("%2d.", i+1)),
			rec.Title,
			Dim(fmt.Sprintf("%s, %s", HumanTimestampFrom(rec.Timestamp, now), Plural(user, "question"))),
		))
	}
	if hidden > 0 {
		b.WriteString(Dim(fmt.Sprintf("... and %d more", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}
