package termkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNames(t *testing.T) {
	t.Parallel()

	k := DefaultKeyNames()
	assert.Equal(t, "Space", k.Name(SymSpace))
	assert.Equal(t, "PageUp", k.Name(SymPageUp))
	assert.Equal(t, "KPEnter", k.Name(SymKPEnter))
	assert.Equal(t, "NONE", k.Name(SymNone))
	assert.Equal(t, "UNKNOWN", k.Name(SymUnknown))
	assert.Equal(t, "UNKNOWN", k.Name(NumSyms+10))

	assert.Equal(t, SymPageUp, k.Sym("PageUp"))
	assert.Equal(t, SymDEL, k.Sym("DEL"))
	assert.Equal(t, SymUnknown, k.Sym("Pageup"))
	assert.Equal(t, SymUnknown, k.Sym(""))
}

func TestKeyNamesEveryNameRoundTrips(t *testing.T) {
	t.Parallel()

	k := DefaultKeyNames()
	for sym := SymNone + 1; sym < NumSyms; sym++ {
		name := k.Name(sym)
		require.NotEqual(t, unknownKeyName, name, "sym %d has no name", sym)
		assert.Equal(t, sym, k.Sym(name), name)
	}
}

func TestKeyNamesLookup(t *testing.T) {
	t.Parallel()

	k := DefaultKeyNames()

	sym, n, ok := k.Lookup("PageUp and more")
	require.True(t, ok)
	assert.Equal(t, SymPageUp, sym)
	assert.Equal(t, 6, n)

	sym, n, ok = k.Lookup("Delete")
	require.True(t, ok)
	assert.Equal(t, SymDelete, sym)
	assert.Equal(t, 6, n)

	sym, _, ok = k.Lookup("KP5x")
	require.True(t, ok)
	assert.Equal(t, SymKP5, sym)

	_, _, ok = k.Lookup("xyz")
	assert.False(t, ok)
	_, _, ok = k.Lookup("NONE")
	assert.False(t, ok)

	sym, n, ok = k.lookup("page down", true)
	require.True(t, ok)
	assert.Equal(t, SymPageDown, sym)
	assert.Equal(t, 9, n)

	sym, n, ok = k.lookup("delete", true)
	require.True(t, ok)
	assert.Equal(t, SymDelete, sym)
	assert.Equal(t, 6, n)
}

func TestKeyNamesWith(t *testing.T) {
	t.Parallel()

	base := DefaultKeyNames()

	k, sym := base.With(SymUnknown, "Hyper")
	assert.Equal(t, NumSyms, sym)
	assert.Equal(t, "Hyper", k.Name(sym))
	assert.Equal(t, sym, k.Sym("Hyper"))
	assert.Equal(t, "UNKNOWN", base.Name(sym), "base table unchanged")

	k2, sym2 := k.With(SymUnknown, "Super")
	assert.Equal(t, NumSyms+1, sym2)
	assert.Equal(t, "Hyper", k2.Name(sym))
	assert.Equal(t, int(NumSyms)+2, k2.Len())
	assert.Equal(t, int(NumSyms), base.Len())

	k3, sym3 := base.With(SymSpace, "SPACE")
	assert.Equal(t, SymSpace, sym3)
	assert.Equal(t, "SPACE", k3.Name(SymSpace))
	assert.Equal(t, "Space", base.Name(SymSpace))
}

func TestSessionRegisterKeyName(t *testing.T) {
	t.Parallel()

	s := New()
	sym := s.RegisterKeyName(SymUnknown, "Hyper")
	assert.Equal(t, "Hyper", s.KeyName(sym))
	assert.Equal(t, sym, s.SymFor("Hyper"))
	assert.Equal(t, "Hyper", s.Format(KeySym{Sym: sym}, 0))

	got, n, ok := s.LookupKeyName("Hyper-x")
	require.True(t, ok)
	assert.Equal(t, sym, got)
	assert.Equal(t, 5, n)

	other := New()
	assert.Equal(t, SymUnknown, other.SymFor("Hyper"))
}

func TestCamelToSpaces(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"PageUp":    "page up",
		"PageDown":  "page down",
		"Backspace": "backspace",
		"DEL":       "del",
		"KPEnter":   "kpenter",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelToSpaces(in), in)
	}
}
