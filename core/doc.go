// Package core creates substitutes: test doubles that record the calls made on them and
// answer them according to configured routes.
//
// Go has no runtime proxies, so a substitute for an interface is a small stub type that embeds
// *Substitute and forwards every method to [Substitute.Invoke]:
//
//	type Greeter struct {
//	    *core.Substitute
//	}
//
//	func (g *Greeter) Greet(name string) string {
//	    return core.Out[string](g.Invoke("Greet", name), 0)
//	}
//
//	func (g *Greeter) Lookup(id int) (string, error) {
//	    r := g.Invoke("Lookup", id)
//	    return core.Out[string](r, 0), r.Err()
//	}
//
// Routes are configured with [When] and [WhenForAnyArgs]. The function passed to them makes
// the call to configure; the call is captured, not executed:
//
//	g := &Greeter{Substitute: core.MustNew[GreeterInterface]()}
//
//	err := core.When(g, func(g *Greeter) { g.Greet("Alice") }).Return("Hi Alice")
//	err = core.WhenForAnyArgs(g, func(g *Greeter) { g.Lookup(0) }).Throw(ErrNotFound)
//
// Calls without a matching route return zero values. A partial substitute, created with
// [WithBase], forwards them to the real implementation instead, unless DoNotCallBase was
// configured for them.
//
// Errors are delivered the way the member can report them: as its trailing error result, as
// a failed [future.Future] for members returning one, and as a panic otherwise.
//
// [future.Future]: github.com/anoideaopen/substitute/core/future.Future
package core
