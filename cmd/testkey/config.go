package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/phroun/termkey/termkey"
)

// fileConfig is the YAML configuration file. Command-line flags override it.
type fileConfig struct {
	WaitTime   time.Duration     `yaml:"wait_time"`
	BufferSize int               `yaml:"buffer_size"`
	Format     []string          `yaml:"format"`
	Flags      []string          `yaml:"flags"`
	Canon      []string          `yaml:"canon"`
	KeyNames   map[string]string `yaml:"keynames"` // existing or new name -> display name
}

// loadConfig reads a YAML config file; an empty path yields the zero config.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

var flagNames = map[string]termkey.Flags{
	"no-interpret": termkey.FlagNoInterpret,
	"convert-kp":   termkey.FlagConvertKP,
	"raw":          termkey.FlagRaw,
	"utf8":         termkey.FlagUTF8,
	"no-termios":   termkey.FlagNoTermios,
	"space-symbol": termkey.FlagSpaceSymbol,
	"ctrl-c":       termkey.FlagCtrlC,
	"eintr":        termkey.FlagEINTR,
}

var canonNames = map[string]termkey.CanonFlags{
	"space-symbol": termkey.CanonSpaceSymbol,
	"del-bs":       termkey.CanonDelBS,
}

var formatNames = map[string]termkey.Format{
	"long-mod":     termkey.FormatLongMod,
	"caret-ctrl":   termkey.FormatCaretCtrl,
	"alt-is-meta":  termkey.FormatAltIsMeta,
	"wrap-bracket": termkey.FormatWrapBracket,
	"space-mod":    termkey.FormatSpaceMod,
	"lower-mod":    termkey.FormatLowerMod,
	"lower-space":  termkey.FormatLowerSpace,
	"mouse-pos":    termkey.FormatMousePos,
	"vim":          termkey.FormatVim,
	"urwid":        termkey.FormatURWID,
}

// parseNames ORs together the named bits. Unknown names are reported with the
// closest known names as suggestions.
func parseNames[T ~uint8 | ~uint16](what string, names []string, table map[string]T) (T, error) {
	var v T
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		bit, ok := table[name]
		if !ok {
			return 0, unknownNameError(what, name, mapKeys(table))
		}
		v |= bit
	}
	return v, nil
}

func mapKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// suggest returns up to three of candidates that fuzzily match name, best first.
func suggest(name string, candidates []string) []string {
	var out []string
	for _, m := range fuzzy.Find(name, candidates) {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func unknownNameError(what, name string, candidates []string) error {
	if s := suggest(name, candidates); len(s) > 0 {
		return fmt.Errorf("unknown %s %q (did you mean %s?)", what, name, strings.Join(s, ", "))
	}
	return fmt.Errorf("unknown %s %q", what, name)
}

// settings are the resolved decoder settings shared by every command.
type settings struct {
	flags      termkey.Flags
	canon      termkey.CanonFlags
	format     termkey.Format
	waitTime   time.Duration
	bufferSize int
	keyNames   *termkey.KeyNames
}

// resolve merges the config file with command-line values; non-empty flags win.
func resolve(cfg fileConfig, flags, canon, format []string, wait time.Duration) (settings, error) {
	var s settings
	var err error

	if len(flags) == 0 {
		flags = cfg.Flags
	}
	if s.flags, err = parseNames("flag", flags, flagNames); err != nil {
		return s, err
	}
	if len(canon) == 0 {
		canon = cfg.Canon
	}
	if s.canon, err = parseNames("canon flag", canon, canonNames); err != nil {
		return s, err
	}
	if len(format) == 0 {
		format = cfg.Format
	}
	if len(format) == 0 {
		format = []string{"alt-is-meta"}
	}
	if s.format, err = parseNames("format", format, formatNames); err != nil {
		return s, err
	}

	s.waitTime = cfg.WaitTime
	if wait > 0 {
		s.waitTime = wait
	}
	if s.waitTime <= 0 {
		s.waitTime = termkey.DefaultWaitTime
	}
	s.bufferSize = cfg.BufferSize
	if s.bufferSize <= 0 {
		s.bufferSize = termkey.DefaultBufferSize
	}

	s.keyNames = termkey.DefaultKeyNames()
	for _, from := range mapKeys(cfg.KeyNames) {
		s.keyNames, _ = s.keyNames.With(s.keyNames.Sym(from), cfg.KeyNames[from])
	}
	return s, nil
}

// session builds a decoder with the resolved settings.
func (s settings) session(opts ...termkey.Option) *termkey.Session {
	return termkey.New(append([]termkey.Option{
		termkey.WithFlags(s.flags),
		termkey.WithCanonFlags(s.canon),
		termkey.WithWaitTime(s.waitTime),
		termkey.WithBufferSize(s.bufferSize),
		termkey.WithKeyNames(s.keyNames),
	}, opts...)...)
}
