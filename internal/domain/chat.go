package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRecord is a persisted transcript. Records are written once and never
// updated.
type ChatRecord struct {
	ID        string
	UserID    string
	Title     string
	Messages  []ChatMessage
	Timestamp time.Time
}

// TitleMaxRunes bounds the title derived from a transcript's first message.
const TitleMaxRunes = 40

// ChatTitle derives a transcript title from its first message, truncated to
// TitleMaxRunes runes with "..." appended when longer.
func ChatTitle(firstMessage string) string {
	return Truncate(firstMessage, TitleMaxRunes)
}

// Truncate shortens s to at most n runes, appending "..." when it cut anything.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// ChatSession is the state of one conversation in progress. Saved records
// whether the transcript has been persisted; it is persisted at most once.
// SelectedIndex points at the history entry the transcript was loaded from.
type ChatSession struct {
	Transcript    []ChatMessage
	Saved         bool
	SelectedIndex *int
}

func NewChatSession() *ChatSession {
	return &ChatSession{}
}

// Reset starts a fresh conversation.
func (s *ChatSession) Reset() {
	s.Transcript = nil
	s.Saved = false
	s.SelectedIndex = nil
}

// Load replaces the transcript with a stored record. A loaded transcript is
// already persisted, so it is marked saved.
func (s *ChatSession) Load(index int, rec *ChatRecord) {
	s.Transcript = append([]ChatMessage(nil), rec.Messages...)
	s.Saved = true
	idx := index
	s.SelectedIndex = &idx
}

func (s *ChatSession) Append(role Role, content string) {
	s.Transcript = append(s.Transcript, ChatMessage{Role: role, Content: content})
}

// Title is derived from the first message of the transcript.
func (s *ChatSession) Title() string {
	if len(s.Transcript) == 0 {
		return ""
	}
	return ChatTitle(s.Transcript[0].Content)
}

// HasAssistantReply reports whether any assistant turn exists.
func (s *ChatSession) HasAssistantReply() bool {
	_, assistant := s.Counts()
	return assistant > 0
}

// Counts returns the number of user and assistant turns.
func (s *ChatSession) Counts() (user, assistant int) {
	for _, m := range s.Transcript {
		switch m.Role {
		case RoleUser:
			user++
		case RoleAssistant:
			assistant++
		}
	}
	return user, assistant
}
