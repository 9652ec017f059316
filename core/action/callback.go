package action

import (
	"sync"

	"github.com/anoideaopen/substitute/core/call"
)

// Callback is a sequence of callbacks: each matching call runs the next step of the
// sequence, plus the callbacks registered with AndAlways.
//
//	cb := action.First(logFirst).Then(logSecond).ThenKeepDoing(logRest).AndAlways(count)
//
// Callback is safe for concurrent use.
type Callback struct {
	mu     sync.Mutex
	steps  []CallbackFunc
	keep   CallbackFunc
	always []CallbackFunc
	next   int
}

// First starts a sequence with cb.
func First(cb CallbackFunc) *Callback {
	return &Callback{steps: []CallbackFunc{cb}}
}

// Always runs cb for every call.
func Always(cb CallbackFunc) *Callback {
	return &Callback{always: []CallbackFunc{cb}}
}

// Then appends cb to the sequence.
func (c *Callback) Then(cb CallbackFunc) *Callback {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.steps = append(c.steps, cb)
	return c
}

// ThenThrow appends a step that throws err.
func (c *Callback) ThenThrow(err error) *Callback {
	return c.Then(func(*call.Call) error { return err })
}

// ThenKeepDoing runs cb for every call after the sequence is exhausted.
func (c *Callback) ThenKeepDoing(cb CallbackFunc) *Callback {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keep = cb
	return c
}

// AndAlways adds cb to the callbacks run for every call, after the sequence step.
func (c *Callback) AndAlways(cb CallbackFunc) *Callback {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.always = append(c.always, cb)
	return c
}

// Call runs the callbacks due for this call.
func (c *Callback) Call(ci *call.Call) error {
	c.mu.Lock()
	var step CallbackFunc
	if c.next < len(c.steps) {
		step = c.steps[c.next]
		c.next++
	} else {
		step = c.keep
	}
	always := append([]CallbackFunc(nil), c.always...)
	c.mu.Unlock()

	if step != nil {
		if err := step(ci); err != nil {
			return err
		}
	}

	for _, cb := range always {
		if err := cb(ci); err != nil {
			return err
		}
	}

	return nil
}
