package routing

import "errors"

var (
	// ErrArityMismatch is returned when the number of matchers of a policy differs from the
	// number of arguments of the member.
	ErrArityMismatch = errors.New("matcher count does not match member arity")

	// ErrInvalidMember is returned when a route is installed for the zero member.
	ErrInvalidMember = errors.New("invalid member")
)
