// Package session installs routes from captured template calls.
//
// A Session runs a trigger function with a recording of the substitute's router. The trigger
// makes exactly the call to configure on a copy of the substitute that routes to the recording;
// the session captures the call and installs a route with the requested action for the
// captured member and arguments. Calls made on the substitute itself meanwhile are routed as
// usual.
//
//	s := session.New(r, func(rec *router.Recording) error {
//	    recordingGreeter(rec).Greet("Alice")
//	    return nil
//	}, session.SpecificArguments)
//	if err := s.Return("Hi Alice"); err != nil {
//	    t.Fatal(err)
//	}
//
// Captured argument values become Equal matchers; values that are matchers themselves, or
// matchers given with WithArgs, are used as they are.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/anoideaopen/substitute/core/action"
	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/matcher"
	"github.com/anoideaopen/substitute/core/router"
	"github.com/anoideaopen/substitute/core/routing"
)

// ArgumentMatching selects how the captured arguments constrain the installed route.
type ArgumentMatching int

const (
	// SpecificArguments matches the captured arguments.
	SpecificArguments ArgumentMatching = iota
	// AnyArguments matches every call of the captured member.
	AnyArguments
)

// Trigger makes the call to configure on a substitute routing its calls to rec. An error
// aborts the configuration.
type Trigger func(rec *router.Recording) error

// Session is a single-use configuration of the call made by its trigger.
type Session struct {
	router   *router.Router
	trigger  Trigger
	matching ArgumentMatching
	matchers []matcher.Matcher
	explicit bool

	mu   sync.Mutex
	used bool
}

// New returns a session capturing the call trigger makes on the substitute routed by r.
func New(r *router.Router, trigger Trigger, matching ArgumentMatching) *Session {
	return &Session{
		router:   r,
		trigger:  trigger,
		matching: matching,
	}
}

// WithArgs sets the matchers of the installed route, one per argument of the captured call.
func (s *Session) WithArgs(matchers ...matcher.Matcher) *Session {
	s.matchers = append([]matcher.Matcher(nil), matchers...)
	s.explicit = true
	return s
}

// Install captures the templated call and installs a route running act for it.
//
// Returns:
//   - *routing.Route: the installed route.
//   - error: a *ConfigurationError; no route is installed on error.
func (s *Session) Install(act action.Action) (*routing.Route, error) {
	if err := s.use(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	if err := act.Validate(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	c, err := s.capture()
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	member := c.Member()

	if values, ok := act.FixedValues(); ok {
		if _, err = member.NormalizeResults(values); err != nil {
			return nil, &ConfigurationError{Member: member.ID(), Err: err}
		}
	}

	route, err := s.router.Registry().Install(member, s.policy(c), act)
	if err != nil {
		return nil, &ConfigurationError{Member: member.ID(), Err: err}
	}

	s.router.Logger().
		WithField("route", route.String()).
		Debug("route installed")

	return route, nil
}

// Return configures the call to return values. Missing trailing values are zero values.
func (s *Session) Return(values ...any) error {
	_, err := s.Install(action.Return(values...))
	return err
}

// ReturnFunc configures the call to return the values computed by fn.
func (s *Session) ReturnFunc(fn action.ValueFunc) error {
	_, err := s.Install(action.ReturnFunc(fn))
	return err
}

// ReturnSequence configures successive calls to return the given values in turn, the last
// one repeating.
func (s *Session) ReturnSequence(values ...any) error {
	_, err := s.Install(action.ReturnSequence(values...))
	return err
}

// Do configures a callback for the call. The result of the call is unaffected.
func (s *Session) Do(cb action.CallbackFunc) error {
	_, err := s.Install(action.Invoke(cb))
	return err
}

// DoCallback configures a callback sequence for the call.
func (s *Session) DoCallback(cb *action.Callback) error {
	if cb == nil {
		_, err := s.Install(action.Invoke(nil))
		return err
	}

	_, err := s.Install(action.Invoke(cb.Call))
	return err
}

// Throw configures the call to throw err. Every matching call throws the same error value.
func (s *Session) Throw(err error) error {
	_, installErr := s.Install(action.Throw(err))
	return installErr
}

// ThrowFunc configures the call to throw the error fn builds for each call.
func (s *Session) ThrowFunc(fn action.ErrorFunc) error {
	_, err := s.Install(action.ThrowFunc(fn))
	return err
}

// ThrowNew configures the call to throw a new error from newErr for each call.
func (s *Session) ThrowNew(newErr func() error) error {
	_, err := s.Install(action.ThrowNew(newErr))
	return err
}

// DoNotCallBase keeps the base implementation of a partial substitute from running for the
// call.
func (s *Session) DoNotCallBase() error {
	_, err := s.Install(action.SuppressBase())
	return err
}

func (s *Session) use() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.used {
		return ErrSessionUsed
	}
	s.used = true

	return nil
}

func (s *Session) capture() (*call.Call, error) {
	rec := s.router.BeginRecording()

	err := func() error {
		defer rec.End()

		return s.trigger(rec)
	}()
	if err != nil {
		return nil, err
	}

	calls := rec.End()
	switch len(calls) {
	case 0:
		return nil, ErrNoCallCaptured
	case 1:
		return calls[0], nil
	default:
		captured := make([]string, len(calls))
		for i, c := range calls {
			captured[i] = c.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousCapture, strings.Join(captured, ", "))
	}
}

func (s *Session) policy(c *call.Call) matcher.Policy {
	switch {
	case s.matching == AnyArguments:
		return matcher.AnyArguments()
	case s.explicit:
		return matcher.SpecificArguments(s.matchers...)
	default:
		return matcher.ExactArguments(c.Args())
	}
}
