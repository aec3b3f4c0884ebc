package keyboard

import "github.com/phroun/termkey/termkey"

// macOSOptionKeys maps the characters a US-layout macOS keyboard produces for
// Option+key back to the key, to be reported with Alt held.
// Option+Shift+letter maps to the uppercase letter rather than Shift.
var macOSOptionKeys = map[rune]rune{
	// Option+letter
	'å': 'a',
	'∫': 'b',
	'ç': 'c',
	'∂': 'd',
	'´': 'e', // dead key (acute accent)
	'ƒ': 'f',
	'©': 'g',
	'˙': 'h',
	'ˆ': 'i', // dead key (circumflex)
	'∆': 'j',
	'˚': 'k',
	'¬': 'l',
	'µ': 'm',
	'˜': 'n', // dead key (tilde)
	'ø': 'o',
	'π': 'p',
	'œ': 'q',
	'®': 'r',
	'ß': 's',
	'†': 't',
	'¨': 'u', // dead key (diaeresis)
	'√': 'v',
	'∑': 'w',
	'≈': 'x',
	'¥': 'y',
	'Ω': 'z',

	// Option+Shift+letter; E, I, N and U repeat the dead keys above
	'Å': 'A',
	'ı': 'B',
	'Ç': 'C',
	'Î': 'D',
	'Ï': 'F',
	'˝': 'G',
	'Ó': 'H',
	'Ô': 'J',
	'\uF8FF': 'K', // Apple logo, private use area
	'Ò': 'L',
	'Â': 'M',
	'Ø': 'O',
	'∏': 'P',
	'Œ': 'Q',
	'‰': 'R',
	'Í': 'S',
	'ˇ': 'T',
	'◊': 'V',
	'„': 'W',
	'˛': 'X',
	'Á': 'Y',
	'¸': 'Z',

	// Option+digit
	'¡': '1',
	'™': '2',
	'£': '3',
	'¢': '4',
	'∞': '5',
	'§': '6',
	'¶': '7',
	'•': '8',
	'ª': '9',
	'º': '0',

	// Option+symbol
	'–': '-',
	'≠': '=',
	'\u201C': '[',
	'\u2019': ']',
	'«': '\\',
	'…': ';',
	'æ': '\'',
	'≤': ',',
	'≥': '.',
	'÷': '/',
}

// decodeMacOSOption rewrites an unmodified Option character as Alt+key.
func decodeMacOSOption(ev termkey.Event) termkey.Event {
	u, ok := ev.(termkey.Unicode)
	if !ok || u.Mod != 0 {
		return ev
	}
	r, ok := macOSOptionKeys[u.Rune]
	if !ok {
		return ev
	}
	return termkey.Unicode{Rune: r, Mod: termkey.ModAlt, UTF8: string(r)}
}
