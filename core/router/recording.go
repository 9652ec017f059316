package router

import (
	"sync"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/routing"
	"github.com/sirupsen/logrus"
)

// Handler produces the outcome of an intercepted call. Router routes live calls; a Recording
// captures the template calls of a configuration.
type Handler interface {
	Route(c *call.Call) routing.Outcome
}

var (
	_ Handler = (*Router)(nil)
	_ Handler = (*Recording)(nil)
)

// Recording captures calls instead of routing them. It is detached from the router that
// created it: calls routed by the router meanwhile are routed as usual, so a substitute can be
// reconfigured while other goroutines call it.
type Recording struct {
	log logrus.FieldLogger

	mu    sync.Mutex
	calls []*call.Call
	ended bool
}

// BeginRecording returns a new recording logging to the router's logger. The calls to capture
// must be routed to the recording, typically through a recording copy of the substitute.
func (r *Router) BeginRecording() *Recording {
	return &Recording{log: r.opts.Logger}
}

// Route captures c and returns the zero values of its member. No action runs and nothing is
// recorded in a call log. Calls routed after End are not captured.
func (rec *Recording) Route(c *call.Call) routing.Outcome {
	rec.mu.Lock()
	captured := !rec.ended
	if captured {
		rec.calls = append(rec.calls, c)
	}
	rec.mu.Unlock()

	if captured {
		rec.log.WithField("call", c.String()).Debug("call captured for configuration")
	}

	return routing.Return(c.Member().ZeroResults())
}

// End stops capturing and returns the captured calls. Calling End again returns the same calls.
func (rec *Recording) End() []*call.Call {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.ended = true

	return append([]*call.Call(nil), rec.calls...)
}
