package ciggurat

import (
	"log/slog"

	"github.com/rotisserie/eris"
)

// TypeDesc describes a component type to register: a unique string
// identifier, the component's size in bytes and its alignment (a power
// of two).
type TypeDesc struct {
	Identifier string
	Size       uintptr
	Alignment  uintptr
}

// typeRegistry holds the registered component types in registration
// order. A type's ID is its index, so IDs are dense and stable for the
// lifetime of the world. The registry is append-only.
type typeRegistry struct {
	types []TypeDesc
}

// lookup resolves an identifier to its type ID. Lookup is a linear scan;
// registration is a setup-phase operation and type counts are small.
func (r *typeRegistry) lookup(identifier string) (uint8, bool) {
	for i := range r.types {
		if r.types[i].Identifier == identifier {
			return uint8(i), true
		}
	}
	return 0, false
}

// register appends a new type and returns its ID.
func (r *typeRegistry) register(desc TypeDesc) (uint8, error) {
	if _, ok := r.lookup(desc.Identifier); ok {
		return 0, eris.Wrapf(ErrAlreadyExists, "type %q", desc.Identifier)
	}
	if len(r.types) >= MaxComponentTypes {
		return 0, eris.Wrapf(ErrTooManyTypes, "type %q would exceed %d", desc.Identifier, MaxComponentTypes)
	}
	id := uint8(len(r.types))
	r.types = append(r.types, desc)
	slog.Debug("ciggurat: type registered", "identifier", desc.Identifier, "id", id, "size", desc.Size, "alignment", desc.Alignment)
	return id, nil
}

// typeAt returns the descriptor for a registered ID.
func (r *typeRegistry) typeAt(id uint8) TypeDesc {
	return r.types[id]
}

// len returns the number of registered types.
func (r *typeRegistry) len() int {
	return len(r.types)
}
