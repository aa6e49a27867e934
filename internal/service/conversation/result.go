package conversation

import "github.com/sandevgo/lyla/internal/core"

// Result is the outcome of one model invocation: either a reply or an
// InvocationFailure, never both.
type Result struct {
	reply   string
	failure *core.InvocationFailure
}

func Success(reply string) Result {
	return Result{reply: reply}
}

func Failure(cause error) Result {
	return Result{failure: &core.InvocationFailure{Cause: cause}}
}

func (r Result) OK() bool {
	return r.failure == nil
}

// Failure returns the invocation error, nil on success.
func (r Result) Failure() *core.InvocationFailure {
	return r.failure
}

// Text is what gets shown and recorded: the reply, or fallback on failure.
func (r Result) Text(fallback string) string {
	if r.failure != nil {
		return fallback
	}
	return r.reply
}
