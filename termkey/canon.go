package termkey

// canonicalize rewrites ev into the preferred form for flags. Applying it
// twice gives the same result as applying it once.
func canonicalize(ev Event, flags CanonFlags) Event {
	switch e := ev.(type) {
	case Unicode:
		if e.Rune == ' ' && flags.Has(CanonSpaceSymbol) {
			return KeySym{Sym: SymSpace, Mod: e.Mod}
		}
	case KeySym:
		switch {
		case e.Sym == SymSpace && !flags.Has(CanonSpaceSymbol):
			return unicodeEvent(' ', e.Mod)
		case e.Sym == SymDEL && flags.Has(CanonDelBS):
			return KeySym{Sym: SymBackspace, Mod: e.Mod}
		}
	}
	return ev
}
