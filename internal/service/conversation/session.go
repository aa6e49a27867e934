package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/sandevgo/lyla/internal/config"
	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/pkg/log"
)

// Session is one conversation: a profile, an invoker and the transcript they
// build up. Prepare and Record touch the transcript and must be called from
// the goroutine owning the session; Invoke may run anywhere.
type Session struct {
	profile    config.Profile
	invoker    core.Invoker
	transcript *Transcript
}

func NewSession(profile config.Profile, invoker core.Invoker) *Session {
	return &Session{
		profile:    profile,
		invoker:    invoker,
		transcript: NewTranscript(profile.UserLabel, profile.AssistantLabel),
	}
}

func (s *Session) Profile() config.Profile {
	return s.profile
}

func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Text resolves a result to the string shown to the user.
func (s *Session) Text(r Result) string {
	return r.Text(s.profile.Fallback)
}

// Submit runs one full exchange synchronously. Blank questions are ignored
// and reported with ok == false.
func (s *Session) Submit(ctx context.Context, question string) (Result, bool) {
	req, ok := s.Prepare(question)
	if !ok {
		return Result{}, false
	}

	res := s.Invoke(ctx, req)
	s.Record(req.Question, res)
	s.LogTurn(ctx)
	return res, true
}

// Prepare snapshots the current context for a new question without mutating
// anything.
func (s *Session) Prepare(question string) (core.PromptRequest, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return core.PromptRequest{}, false
	}
	return core.PromptRequest{
		Context:  s.transcript.String(),
		Question: question,
	}, true
}

// Invoke calls the model. Any error becomes an InvocationFailure.
func (s *Session) Invoke(ctx context.Context, req core.PromptRequest) Result {
	logger := log.FromCtx(ctx)

	reply, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// superseded or shutting down, the caller drops this result
			logger.Debug().Err(err).Str("profile", s.profile.Name).Msg("model invocation cancelled")
			return Failure(err)
		}
		logger.Warn().Err(err).Str("profile", s.profile.Name).Msg("model invocation failed, using fallback reply")
		return Failure(err)
	}
	return Success(reply)
}

// Record appends the exchange to the transcript and returns the recorded
// reply text.
func (s *Session) Record(question string, res Result) string {
	text := s.Text(res)
	s.transcript.Append(question, text)
	return text
}

// LogTurn reports the transcript size after a turn.
func (s *Session) LogTurn(ctx context.Context) {
	e := log.FromCtx(ctx).Debug()
	if !e.Enabled() {
		return
	}
	e.Int("turns", s.transcript.Len()).
		Int("context_tokens", countTokens(s.transcript.String())).
		Msg("turn recorded")
}
