package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/intelligence"
	"github.com/alexanderramin/studygo/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatDriver(t *testing.T, app *App, id domain.Identity) (*teatest.Driver, *chatView) {
	t.Helper()
	view := newChatView(context.Background(), app.Chats, id)
	d := teatest.New(t, view, teatest.WithSize(100, 40))
	d.DrainInit()
	return d, view
}

func TestChatView_GuestConversation(t *testing.T) {
	app, client := testApp(t)
	client.push("Begin with linear equations.")
	d, view := newChatDriver(t, app, domain.Guest())

	d.RequireViewContains("Signed in as guest")
	d.RequireViewContains("Guest mode")

	d.Submit("How do I learn algebra?")
	d.RequireViewContains("You: How do I learn algebra?")
	d.RequireViewContains("Assistant: Begin with linear equations.")
	assert.False(t, view.session.Saved)
	assert.Len(t, view.session.Transcript, 2)

	d.Submit("/history")
	assert.Contains(t, d.View(), "Guest mode")
}

func TestChatView_SavesAndReloads(t *testing.T) {
	app, client := testApp(t)
	signUp(t, app, "ana")
	user, err := app.Accounts.Authenticate(context.Background(), credentials("ana", "secret"))
	require.NoError(t, err)
	id := domain.IdentityOf(user)
	client.push("Use spaced repetition.")

	d, view := newChatDriver(t, app, id)
	d.Submit("Best way to learn Spanish vocabulary?")
	assert.True(t, view.session.Saved)

	d.Submit("/new")
	assert.Empty(t, view.session.Transcript)
	assert.False(t, view.session.Saved)
	d.RequireViewContains("Started a new chat.")

	d.Submit("/history")
	d.RequireViewContains("1. Best way to learn Spanish vocabulary?")

	d.Submit("/load 1")
	d.RequireViewContains("Loaded: Best way to learn Spanish vocabulary?")
	d.RequireViewContains("Assistant: Use spaced repetition.")
	assert.True(t, view.session.Saved)
	require.NotNil(t, view.session.SelectedIndex)
	assert.Equal(t, 0, *view.session.SelectedIndex)

	d.Submit("/load 7")
	d.RequireViewContains("no chat number 7")
}

func TestChatView_RefusalAndQuit(t *testing.T) {
	app, client := testApp(t)
	client.push(intelligence.RefusalReply)
	d, _ := newChatDriver(t, app, domain.Guest())

	d.Submit("Write me a poem about cats")
	d.RequireViewContains(intelligence.RefusalReply)

	d.Submit("/quit")
	assert.True(t, d.Quitting)
}

func TestChatView_EscQuits(t *testing.T) {
	app, _ := testApp(t)
	d, _ := newChatDriver(t, app, domain.Guest())

	d.PressEsc()
	assert.True(t, d.Quitting)
}

func TestChatView_BlankInputIgnored(t *testing.T) {
	app, _ := testApp(t)
	d, view := newChatDriver(t, app, domain.Guest())

	d.Submit("   ")
	assert.Empty(t, view.session.Transcript)
}
