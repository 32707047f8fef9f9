// SPDX-License-Identifier: MIT

package matrix

import (
	"sync"
	"sync/atomic"
)

// State is the lifecycle of a Holder.
type State int32

const (
	StateUninitialized State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Holder builds the process-wide Document exactly once. Both outcomes are
// terminal: every caller sees the same document or the same error.
type Holder struct {
	opts   Options
	loadFn func(Options) (*Document, error)

	once  sync.Once
	state atomic.Int32
	doc   *Document
	err   error
}

// NewHolder returns a Holder that loads with opts on first use.
func NewHolder(opts Options) *Holder {
	return &Holder{opts: opts, loadFn: Load}
}

// Get returns the document, loading it on first call.
func (h *Holder) Get() (*Document, error) {
	h.once.Do(func() {
		h.doc, h.err = h.loadFn(h.opts)
		if h.err != nil {
			h.doc = nil
			h.state.Store(int32(StateFailed))
			return
		}
		h.state.Store(int32(StateLoaded))
	})
	return h.doc, h.err
}

// State reports the current lifecycle state without triggering a load.
func (h *Holder) State() State {
	return State(h.state.Load())
}
