// Package routing keeps the routes configured for one substitute and resolves intercepted calls
// to them.
//
// A [Route] binds an [action.Action] to a member and an argument policy. Routes live in a
// [Registry] in installation order, and the newest route that accepts a call wins:
//
//	reg := routing.NewRegistry()
//	reg.Install(greet, matcher.AnyArguments(), action.Return("Hi"))
//	reg.Install(greet, matcher.ExactArguments([]any{"Alice"}), action.Return("Hi Alice"))
//
//	reg.Resolve(greetAlice) // second route
//	reg.Resolve(greetBob)   // first route
//
// A route that does not accept the call never hides older routes, so an any-arguments route
// keeps backing up every argument list a newer specific route does not match.
//
// The result of routing a call is an [Outcome]: values to return, an error to throw, or a
// request to forward the call to the real implementation.
//
// [action.Action]: github.com/anoideaopen/substitute/core/action.Action
package routing
