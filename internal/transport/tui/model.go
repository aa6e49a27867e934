package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/internal/service/conversation"
	"github.com/sandevgo/lyla/internal/service/reveal"
	"github.com/sandevgo/lyla/pkg/conv"
	"github.com/sandevgo/lyla/pkg/log"
)

const (
	defaultRevealInterval = 30 * time.Millisecond
	headerHeight          = 2
	inputHeight           = 3
	statusHeight          = 1
)

// replyMsg carries a finished invocation back to the event loop. gen tells
// whether it still answers the latest question.
type replyMsg struct {
	gen      int
	question string
	result   conversation.Result
}

// revealTickMsg advances the typing effect of reveal generation gen.
type revealTickMsg struct {
	gen int
}

// Model is the chat window. The event loop goroutine owns the session, the
// transcript and the reveal; workers only call Session.Invoke.
type Model struct {
	ctx      context.Context
	session  *conversation.Session
	interval time.Duration
	markdown bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	committed []string
	reveal    *reveal.Reveal
	cancel    *cancelManager

	gen       int // generation of the latest submitted question
	revealGen int
	waiting   bool
	ready     bool
	width     int
	height    int
	quitting  bool
}

func NewModel(ctx context.Context, session *conversation.Session, interval time.Duration) Model {
	if interval <= 0 {
		interval = defaultRevealInterval
	}

	profile := session.Profile()

	ti := textinput.New()
	ti.Placeholder = profile.Placeholder
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantStyle

	// letters belong to the input, so the transcript only scrolls on
	// arrows and page keys
	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}

	m := Model{
		ctx:      ctx,
		session:  session,
		interval: interval,
		input:    ti,
		viewport: vp,
		spinner:  sp,
		reveal:   reveal.New(),
		cancel:   newCancelManager(),
	}
	if profile.Greeting != "" {
		m.committed = append(m.committed, assistantStyle.Render(profile.Greeting))
	}
	return m
}

// WithMarkdown makes the window flatten markdown replies before revealing
// them. Off by default: the reply is revealed exactly as the model sent it.
func (m Model) WithMarkdown(on bool) Model {
	m.markdown = on
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-inputHeight-statusHeight)
		m.input.Width = max(10, msg.Width-6)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancel.cancel()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		return m.handleReply(msg)

	case revealTickMsg:
		return m.handleTick(msg)

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, vpCmd)
}

// submit sends the input line to the model on a worker. Any request still
// in flight is cancelled and its reply will be discarded.
func (m Model) submit() (tea.Model, tea.Cmd) {
	question := m.input.Value()
	req, ok := m.session.Prepare(question)
	if !ok {
		return m, nil
	}

	profile := m.session.Profile()
	m.committed = append(m.committed, paragraph(userStyle, profile.UserLabel, req.Question, m.viewport.Width))
	m.input.Reset()

	m.gen++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel.replace(cancel)
	m.waiting = true
	m.refresh()

	log.FromCtx(m.ctx).Debug().Int("gen", m.gen).Msg("question submitted")

	return m, tea.Batch(invoke(ctx, m.session, m.gen, req), m.spinner.Tick)
}

func invoke(ctx context.Context, session *conversation.Session, gen int, req core.PromptRequest) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{
			gen:      gen,
			question: req.Question,
			result:   session.Invoke(ctx, req),
		}
	}
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		log.FromCtx(m.ctx).Debug().Int("gen", msg.gen).Int("latest", m.gen).Msg("discarding stale reply")
		return m, nil
	}

	m.waiting = false
	m.cancel.cancel()

	text := m.session.Record(msg.question, msg.result)
	m.session.LogTurn(m.ctx)

	// a reveal still running belongs to an earlier reply; show it in full
	if m.reveal.State() == reveal.Revealing {
		m.commit(m.reveal.Finish())
	}

	if m.markdown {
		text = conv.MarkdownToText(text)
	}

	m.revealGen++
	m.reveal.Start(text)
	if m.reveal.State() == reveal.Done {
		m.commit(m.reveal.Text())
		return m, nil
	}

	m.refresh()
	return m, m.tick()
}

func (m Model) handleTick(msg revealTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.revealGen || m.reveal.State() != reveal.Revealing {
		return m, nil
	}

	if _, done := m.reveal.Tick(); done {
		m.commit(m.reveal.Text())
		return m, nil
	}

	m.refresh()
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	gen := m.revealGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

// commit appends a finished reply as a styled paragraph.
func (m *Model) commit(text string) {
	label := m.session.Profile().AssistantLabel
	m.committed = append(m.committed, paragraph(assistantStyle, label, text, m.viewport.Width))
	m.refresh()
}

func (m *Model) refresh() {
	lines := m.committed
	if m.reveal.State() == reveal.Revealing {
		label := m.session.Profile().AssistantLabel
		lines = append(lines[:len(lines):len(lines)], paragraph(assistantStyle, label, m.reveal.Visible(), m.viewport.Width))
	}
	m.viewport.SetContent(strings.Join(lines, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := m.session.Profile().Title
	if title == "" {
		title = core.AppName
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spinner.View())
	} else {
		b.WriteString(hintStyle.Render("enter: send • esc: quit"))
	}
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	return b.String()
}

// Transcript exposes the rendered paragraphs, mainly for tests.
func (m Model) Transcript() []string {
	out := make([]string, len(m.committed))
	copy(out, m.committed)
	return out
}
