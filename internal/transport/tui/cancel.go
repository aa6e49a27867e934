package tui

import (
	"context"
	"sync"
)

// cancelManager holds the cancel func of the outstanding request. It is
// shared by pointer because bubbletea copies the model on every Update.
type cancelManager struct {
	mu         sync.Mutex
	cancelFunc context.CancelFunc
}

func newCancelManager() *cancelManager {
	return &cancelManager{}
}

// replace cancels the previous request, if any, and stores fn.
func (cm *cancelManager) replace(fn context.CancelFunc) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
	}
	cm.cancelFunc = fn
}

func (cm *cancelManager) cancel() {
	cm.replace(nil)
}
