package ciggurat

import (
	"errors"
	"testing"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld()
	for _, d := range []TypeDesc{
		{Identifier: "int", Size: 4, Alignment: 4},
		{Identifier: "float", Size: 4, Alignment: 4},
		{Identifier: "char", Size: 1, Alignment: 1},
		{Identifier: "short", Size: 2, Alignment: 2},
	} {
		if err := w.RegisterType(d); err != nil {
			t.Fatalf("RegisterType(%q): %v", d.Identifier, err)
		}
	}
	return w
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		expr string
		want []string
	}{
		{"a, b, !c, d", []string{"a", "b", "!c", "d"}},
		{"  a ,b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
		{"   ", nil},
		{"single", []string{"single"}},
	}
	for _, c := range cases {
		got := tokenize(c.expr)
		if len(got) != len(c.want) {
			t.Errorf("tokenize(%q): expected %v, got %v", c.expr, c.want, got)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("tokenize(%q): expected %v, got %v", c.expr, c.want, got)
				break
			}
		}
	}
}

func TestSystemMasks(t *testing.T) {
	w := newTestWorld(t)
	mustHave, mustNotHave, types, err := w.systemMasks("int, !char, float")
	if err != nil {
		t.Fatalf("systemMasks: %v", err)
	}
	if !mustHave.has(0) || !mustHave.has(1) || mustHave.count() != 2 {
		t.Errorf("Expected mustHave {int,float}, got %v", mustHave)
	}
	if !mustNotHave.has(2) || mustNotHave.count() != 1 {
		t.Errorf("Expected mustNotHave {char}, got %v", mustNotHave)
	}
	// Negated tokens are not part of the ordered type list.
	if len(types) != 2 || types[0] != 0 || types[1] != 1 {
		t.Errorf("Expected ordered types [int float], got %v", types)
	}
}

func TestSystemMasksUnknownType(t *testing.T) {
	w := newTestWorld(t)
	_, _, _, err := w.systemMasks("int, missing")
	if !errors.Is(err, ErrBadRequirement) {
		t.Errorf("Expected ErrBadRequirement, got %v", err)
	}
	_, _, _, err = w.systemMasks("!missing")
	if !errors.Is(err, ErrBadRequirement) {
		t.Errorf("Expected ErrBadRequirement for negated unknown, got %v", err)
	}
}

func TestSystemMasksTooManyTokens(t *testing.T) {
	w := newTestWorld(t)
	_, _, _, err := w.systemMasks("int, float, char, short, int")
	if !errors.Is(err, ErrBadRequirement) {
		t.Errorf("Expected ErrBadRequirement for excess tokens, got %v", err)
	}
}

func TestCompositionMask(t *testing.T) {
	w := newTestWorld(t)
	mask, err := w.compositionMask("int, char, float, short")
	if err != nil {
		t.Fatalf("compositionMask: %v", err)
	}
	if mask.count() != 4 {
		t.Errorf("Expected 4 types, got %d", mask.count())
	}
}

func TestCompositionMaskRejectsNegation(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.compositionMask("int, !char")
	if !errors.Is(err, ErrBadRequirement) {
		t.Errorf("Expected ErrBadRequirement, got %v", err)
	}
}

func TestCompositionMaskUnknownType(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.compositionMask("int, missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCompositionMaskEmpty(t *testing.T) {
	w := newTestWorld(t)
	mask, err := w.compositionMask("")
	if err != nil {
		t.Fatalf("compositionMask(\"\"): %v", err)
	}
	if mask.count() != 0 {
		t.Errorf("Expected an empty mask, got %d types", mask.count())
	}
}
