package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/config"
	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/internal/service/conversation"
	"github.com/sandevgo/lyla/internal/service/reveal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvoker struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	reqs    []core.PromptRequest
	ctxs    []context.Context
}

func (r *recordingInvoker) Invoke(ctx context.Context, req core.PromptRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	r.ctxs = append(r.ctxs, ctx)
	if r.err != nil {
		return "", r.err
	}
	return r.replies[req.Question], nil
}

func lylaProfile() config.Profile {
	return config.Profile{
		Name:           "lyla",
		Title:          "Lyla",
		Template:       "{context}{question}",
		UserLabel:      "أنت",
		AssistantLabel: "ليلي",
		Fallback:       "حدث خطأ أثناء توليد الرد.",
	}
}

func newTestModel(inv core.Invoker) (Model, *conversation.Session) {
	session := conversation.NewSession(lylaProfile(), inv)
	m := NewModel(context.Background(), session, time.Millisecond)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), session
}

func typeLine(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

// replyFrom runs the batch returned by submit and picks out the reply.
func replyFrom(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if reply, ok := c().(replyMsg); ok {
				return reply
			}
		}
	}
	if reply, ok := msg.(replyMsg); ok {
		return reply
	}
	t.Fatalf("no replyMsg produced by %T", msg)
	return replyMsg{}
}

func deliver(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// revealAll feeds ticks until the running reveal is committed.
func revealAll(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.reveal.State() == reveal.Revealing; i++ {
		require.Less(t, i, 10000, "reveal never finished")
		m, _ = deliver(m, revealTickMsg{gen: m.revealGen})
	}
	return m
}

func TestModel_SubmitRecordsAndReveals(t *testing.T) {
	inv := &recordingInvoker{replies: map[string]string{"hello": "ok"}}
	m, session := newTestModel(inv)

	m, cmd := typeLine(t, m, "hello")
	assert.True(t, m.waiting)
	assert.Equal(t, "", m.input.Value(), "input is cleared on submit")
	assert.Equal(t, 0, session.Transcript().Len(), "nothing recorded before the reply")

	m, tick := deliver(m, replyFrom(t, cmd))
	require.NotNil(t, tick, "reveal must schedule a tick")
	assert.False(t, m.waiting)
	assert.Equal(t, "أنت: hello\nليلي: ok\n", session.Transcript().String())
	assert.Equal(t, reveal.Revealing, m.reveal.State())

	m, next := deliver(m, revealTickMsg{gen: m.revealGen})
	assert.Equal(t, "o", m.reveal.Visible())
	assert.NotNil(t, next)

	before := len(m.Transcript())
	m, next = deliver(m, revealTickMsg{gen: m.revealGen})
	assert.Equal(t, "ok", m.reveal.Visible())
	assert.Equal(t, reveal.Done, m.reveal.State())
	assert.Nil(t, next, "no further ticks once the reply is fully shown")
	require.Len(t, m.Transcript(), before+1)
	assert.Contains(t, m.Transcript()[before], "ok")
}

func TestModel_BlankInputIgnored(t *testing.T) {
	inv := &recordingInvoker{}
	m, session := newTestModel(inv)

	m, cmd := typeLine(t, m, "   ")
	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
	assert.Equal(t, 0, m.gen)
	assert.Equal(t, 0, session.Transcript().Len())
	assert.Empty(t, inv.reqs)
}

func TestModel_StaleReplyDiscarded(t *testing.T) {
	inv := &recordingInvoker{replies: map[string]string{"first": "one", "second": "two"}}
	m, session := newTestModel(inv)

	m, firstCmd := typeLine(t, m, "first")
	m, secondCmd := typeLine(t, m, "second")
	assert.Equal(t, 2, m.gen)

	first := replyFrom(t, firstCmd)
	second := replyFrom(t, secondCmd)

	require.Len(t, inv.ctxs, 2)
	assert.Error(t, inv.ctxs[0].Err(), "superseded request must be cancelled")

	m, cmd := deliver(m, first)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, session.Transcript().Len(), "stale reply must not touch the context")
	assert.True(t, m.waiting, "still waiting for the latest question")

	m, _ = deliver(m, second)
	assert.Equal(t, "أنت: second\nليلي: two\n", session.Transcript().String())
	assert.Equal(t, "", inv.reqs[1].Context, "second request never saw the abandoned first question")

	m = revealAll(t, m)
	assert.Contains(t, strings.Join(m.Transcript(), "\n"), "two")
}

func TestModel_StaleTickIgnored(t *testing.T) {
	inv := &recordingInvoker{replies: map[string]string{"a": "long reply", "b": "xy"}}
	m, _ := newTestModel(inv)

	m, cmd := typeLine(t, m, "a")
	m, _ = deliver(m, replyFrom(t, cmd))
	oldGen := m.revealGen
	m, _ = deliver(m, revealTickMsg{gen: oldGen})
	assert.Equal(t, "l", m.reveal.Visible())

	// second reply lands while the first is mid-reveal
	m, cmd = typeLine(t, m, "b")
	before := len(m.Transcript())
	m, _ = deliver(m, replyFrom(t, cmd))

	require.Greater(t, len(m.Transcript()), before)
	assert.Contains(t, m.Transcript()[before], "long reply", "interrupted reveal is committed in full")
	assert.Equal(t, "xy", m.reveal.Text())

	m, next := deliver(m, revealTickMsg{gen: oldGen})
	assert.Nil(t, next)
	assert.Equal(t, "", m.reveal.Visible(), "stale tick must not advance the new reveal")
}

func TestModel_RevealsReplyVerbatim(t *testing.T) {
	const reply = `<vector> gives std::vector<int> v; "quotes" -- x`
	inv := &recordingInvoker{replies: map[string]string{"code": reply}}
	m, session := newTestModel(inv)

	m, cmd := typeLine(t, m, "code")
	m, _ = deliver(m, replyFrom(t, cmd))
	assert.Equal(t, reply, m.reveal.Text())

	m = revealAll(t, m)
	last := m.Transcript()[len(m.Transcript())-1]
	assert.Contains(t, last, "std::vector<int> v;")
	assert.Contains(t, last, `"quotes" -- x`)
	assert.Contains(t, last, "<vector>")
	assert.Contains(t, session.Transcript().String(), reply)
}

func TestModel_MarkdownKeepsCharacters(t *testing.T) {
	const reply = "**Note**: use std::vector<int> v; and \"quotes\" -- x"
	inv := &recordingInvoker{replies: map[string]string{"md": reply}}
	m, session := newTestModel(inv)
	m = m.WithMarkdown(true)

	m, cmd := typeLine(t, m, "md")
	m, _ = deliver(m, replyFrom(t, cmd))
	assert.NotContains(t, m.reveal.Text(), "**")

	m = revealAll(t, m)
	last := m.Transcript()[len(m.Transcript())-1]
	assert.Contains(t, last, "std::vector<int> v;")
	assert.Contains(t, last, `"quotes" -- x`)
	assert.Contains(t, session.Transcript().String(), reply, "transcript keeps the raw reply")
}

func TestModel_ReplyDuringRevealCommitsBothInOrder(t *testing.T) {
	inv := &recordingInvoker{replies: map[string]string{"a": "first answer", "b": "second answer"}}
	m, session := newTestModel(inv)
	start := len(m.Transcript())

	m, cmd := typeLine(t, m, "a")
	m, _ = deliver(m, replyFrom(t, cmd))
	m, _ = deliver(m, revealTickMsg{gen: m.revealGen})
	m, _ = deliver(m, revealTickMsg{gen: m.revealGen})
	require.Equal(t, reveal.Revealing, m.reveal.State())
	assert.Equal(t, "fi", m.reveal.Visible())

	m, cmd = typeLine(t, m, "b")
	m, _ = deliver(m, replyFrom(t, cmd))
	m = revealAll(t, m)

	got := m.Transcript()[start:]
	require.Len(t, got, 4)
	assert.Contains(t, got[0], "a")
	assert.Contains(t, got[1], "first answer")
	assert.Contains(t, got[2], "b")
	assert.Contains(t, got[3], "second answer")
	assert.Equal(t, "أنت: a\nليلي: first answer\nأنت: b\nليلي: second answer\n", session.Transcript().String())
}

func TestModel_FailureShowsFallback(t *testing.T) {
	inv := &recordingInvoker{err: errors.New("connection refused")}
	m, session := newTestModel(inv)

	m, cmd := typeLine(t, m, "hello")
	m, _ = deliver(m, replyFrom(t, cmd))
	m = revealAll(t, m)

	assert.Equal(t, "أنت: hello\nليلي: حدث خطأ أثناء توليد الرد.\n", session.Transcript().String())
	assert.Contains(t, strings.Join(m.Transcript(), "\n"), "حدث خطأ أثناء توليد الرد.")
}

func TestModel_EmptyReplyCommittedImmediately(t *testing.T) {
	inv := &recordingInvoker{replies: map[string]string{}}
	m, _ := newTestModel(inv)

	m, cmd := typeLine(t, m, "hello")
	before := len(m.Transcript())
	m, tick := deliver(m, replyFrom(t, cmd))

	assert.Nil(t, tick)
	assert.Equal(t, reveal.Done, m.reveal.State())
	assert.Len(t, m.Transcript(), before+1)
}

func TestModel_QuitCancelsOutstanding(t *testing.T) {
	inv := &recordingInvoker{replies: map[string]string{"hello": "hi"}}
	m, _ := newTestModel(inv)

	m, cmd := typeLine(t, m, "hello")
	m, quit := deliver(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
	assert.True(t, m.quitting)
	assert.Equal(t, "", m.View())

	replyFrom(t, cmd)
	require.Len(t, inv.ctxs, 1)
	assert.Error(t, inv.ctxs[0].Err())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(&recordingInvoker{})
	view := m.View()
	assert.Contains(t, view, "Lyla")
	assert.Contains(t, view, "esc: quit")
}

func TestStartsNonASCII(t *testing.T) {
	tests := map[string]bool{
		"":             false,
		"hello":        false,
		"  مرحبا":      true,
		"ليلي: أهلا":   true,
		"123 ليلي":     false,
	}
	for text, want := range tests {
		assert.Equal(t, want, startsNonASCII(text), text)
	}
}
