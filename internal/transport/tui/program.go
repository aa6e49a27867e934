package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/service/conversation"
	"github.com/sandevgo/lyla/pkg/log"
)

// Program runs the chat window as a service.
type Program struct {
	session  *conversation.Session
	interval time.Duration
	markdown bool
	opts     []tea.ProgramOption

	mu sync.Mutex
	p  *tea.Program
}

func NewProgram(session *conversation.Session, interval time.Duration, opts ...tea.ProgramOption) *Program {
	return &Program{
		session:  session,
		interval: interval,
		opts:     opts,
	}
}

// RenderMarkdown toggles markdown flattening of replies in the window.
func (p *Program) RenderMarkdown(on bool) *Program {
	p.markdown = on
	return p
}

func (p *Program) Start(ctx context.Context) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, p.opts...)
	program := tea.NewProgram(NewModel(ctx, p.session, p.interval).WithMarkdown(p.markdown), opts...)

	p.mu.Lock()
	p.p = program
	p.mu.Unlock()

	log.FromCtx(ctx).Info().Str("profile", p.session.Profile().Name).Msg("chat window opened")

	_, err := program.Run()
	if err != nil && (ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled)) {
		return nil
	}
	return err
}

func (p *Program) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.p != nil {
		p.p.Quit()
	}
	return nil
}
