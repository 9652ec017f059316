package routing

import (
	"fmt"
	"sync"

	"github.com/anoideaopen/substitute/core/action"
	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/matcher"
)

// Registry is the ordered set of routes of one substitute.
//
// Install and the lookups may be called concurrently.
type Registry struct {
	mu       sync.RWMutex
	seq      uint64
	routes   []*Route
	byMember map[string][]*Route
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byMember: make(map[string][]*Route)}
}

// Install appends a route and makes it the highest priority route for the calls it accepts.
//
// Parameters:
//   - member: the configured member.
//   - policy: the argument policy; SpecificArguments must have one matcher per argument.
//   - act: the action to run on matching calls.
//
// Returns:
//   - *Route: the installed route.
//   - error: ErrInvalidMember or ErrArityMismatch; nothing is installed on error.
func (r *Registry) Install(member call.Member, policy matcher.Policy, act action.Action) (*Route, error) {
	if member.IsZero() {
		return nil, ErrInvalidMember
	}

	if !policy.IsAny() && policy.Arity() != member.NumArgs() {
		return nil, fmt.Errorf(
			"%w: %d matchers for %d arguments of %s",
			ErrArityMismatch,
			policy.Arity(),
			member.NumArgs(),
			member.ID(),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	route := &Route{
		Member: member,
		Policy: policy,
		Action: act,
		Seq:    r.seq,
	}

	r.routes = append(r.routes, route)
	r.byMember[member.ID()] = append(r.byMember[member.ID()], route)

	return route, nil
}

// Resolve returns the newest route that accepts c. It reports false when no route matches and
// the call falls through to the default behaviour.
func (r *Registry) Resolve(c *call.Call) (*Route, bool) {
	return r.ResolveWhere(c, nil)
}

// ResolveWhere is Resolve restricted to the routes for which keep returns true.
// A nil keep accepts every route.
func (r *Registry) ResolveWhere(c *call.Call, keep func(*Route) bool) (*Route, bool) {
	candidates := r.candidates(c)

	for i := len(candidates) - 1; i >= 0; i-- {
		route := candidates[i]
		if keep != nil && !keep(route) {
			continue
		}
		if route.Matches(c) {
			return route, true
		}
	}

	return nil, false
}

// Matching returns every route accepting c, in installation order.
func (r *Registry) Matching(c *call.Call) []*Route {
	candidates := r.candidates(c)

	matching := candidates[:0]
	for _, route := range candidates {
		if route.Matches(c) {
			matching = append(matching, route)
		}
	}

	return matching
}

// Suppressed reports whether any route accepting c suppresses the base implementation.
func (r *Registry) Suppressed(c *call.Call) bool {
	_, ok := r.ResolveWhere(c, func(route *Route) bool {
		return route.Action.SuppressesBase()
	})

	return ok
}

// Routes returns the installed routes in installation order.
func (r *Registry) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Route(nil), r.routes...)
}

// Len returns the number of installed routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.routes)
}

// Clear removes every route. Sequence numbers keep growing.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = nil
	r.byMember = make(map[string][]*Route)
}

// candidates returns a snapshot of the routes of the call's member, so matchers run without
// the lock held.
func (r *Registry) candidates(c *call.Call) []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Route(nil), r.byMember[c.Member().ID()]...)
}
