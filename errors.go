package ciggurat

import "github.com/rotisserie/eris"

// Sentinel errors returned by World operations. Call sites wrap these
// with the offending identifier; match with errors.Is.
var (
	// ErrAlreadyExists is returned when a type or system identifier is
	// registered twice.
	ErrAlreadyExists = eris.New("identifier already registered")

	// ErrNotFound is returned when a composition names an unregistered
	// type identifier.
	ErrNotFound = eris.New("unknown type identifier")

	// ErrBadRequirement is returned when a requirement expression cannot
	// be satisfied: it names an unregistered type, negates a type in an
	// entity composition, or lists more tokens than registered types.
	ErrBadRequirement = eris.New("bad requirement expression")

	// ErrUnknownSystem is returned by Run for an unregistered system
	// identifier.
	ErrUnknownSystem = eris.New("unknown system")

	// ErrTooManyTypes is returned when registering more than
	// MaxComponentTypes component types.
	ErrTooManyTypes = eris.New("component type limit exceeded")
)
