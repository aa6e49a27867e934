package core

import "fmt"

// InvocationFailure is the only error kind a conversation knows about: the
// model call did not complete normally, whatever the reason.
type InvocationFailure struct {
	Cause error
}

func (e *InvocationFailure) Error() string {
	if e.Cause == nil {
		return "model invocation failed"
	}
	return fmt.Sprintf("model invocation failed: %v", e.Cause)
}

func (e *InvocationFailure) Unwrap() error {
	return e.Cause
}
