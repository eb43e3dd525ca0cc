package ciggurat

import (
	"strings"

	"github.com/rotisserie/eris"
)

// tokenize splits a requirement expression of the form "a, b, !c" into
// identifier tokens, in order. The input is copied, spaces are stripped
// before splitting and empty tokens are dropped, so "" yields no tokens.
func tokenize(expr string) []string {
	stripped := strings.ReplaceAll(expr, " ", "")
	if stripped == "" {
		return nil
	}
	parts := strings.Split(stripped, ",")
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// systemMasks parses a system requirement expression. A token prefixed
// with '!' contributes to mustNotHave and is not part of the ordered
// type list; every other token contributes to mustHave and is appended
// to types in token order.
func (w *World) systemMasks(requirements string) (mustHave, mustNotHave bitmask256, types []uint8, err error) {
	tokens := tokenize(requirements)
	if len(tokens) > w.registry.len() {
		err = eris.Wrapf(ErrBadRequirement, "%d types required but only %d registered", len(tokens), w.registry.len())
		return
	}
	for _, tok := range tokens {
		name, negated := strings.CutPrefix(tok, "!")
		id, ok := w.registry.lookup(name)
		if !ok {
			err = eris.Wrapf(ErrBadRequirement, "requirement names unregistered type %q", name)
			return
		}
		if negated {
			mustNotHave.set(id)
		} else {
			mustHave.set(id)
			types = append(types, id)
		}
	}
	return
}

// compositionMask parses an entity composition. Compositions are
// positive-only; '!' is rejected.
func (w *World) compositionMask(composition string) (bitmask256, error) {
	var mask bitmask256
	tokens := tokenize(composition)
	if len(tokens) > w.registry.len() {
		return mask, eris.Wrapf(ErrBadRequirement, "%d types listed but only %d registered", len(tokens), w.registry.len())
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "!") {
			return bitmask256{}, eris.Wrapf(ErrBadRequirement, "composition cannot negate %q", tok)
		}
		id, ok := w.registry.lookup(tok)
		if !ok {
			return bitmask256{}, eris.Wrapf(ErrNotFound, "composition names type %q", tok)
		}
		mask.set(id)
	}
	return mask, nil
}
