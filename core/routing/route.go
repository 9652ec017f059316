package routing

import (
	"fmt"

	"github.com/anoideaopen/substitute/core/action"
	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/matcher"
)

// Route is an action bound to a member and an argument policy. Routes are created by
// Registry.Install and are not modified afterwards.
type Route struct {
	Member call.Member    // The member the route is configured for.
	Policy matcher.Policy // Arguments the route applies to.
	Action action.Action  // What happens on a matching call.
	Seq    uint64         // Installation order within the registry, starting at 1.
}

// Matches reports whether the route applies to c.
func (r *Route) Matches(c *call.Call) bool {
	return r.Member.Equal(c.Member()) && r.Policy.Accepts(c.Args())
}

func (r *Route) String() string {
	return fmt.Sprintf("#%d %s.%s%s -> %s", r.Seq, r.Member.Owner().Name(), r.Member.Name(), r.Policy, r.Action.Kind())
}
