package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultSearch and DefaultReplace are the file patching templates used
	// when a configuration does not override them.
	DefaultSearch  = "{current_version}"
	DefaultReplace = "{new_version}"
)

// Config owns the compiled parse pattern, the candidate serialization
// templates and the per-part configurations. The first serialize template
// is canonical: its field order decides bump and reset ordering.
type Config struct {
	parse       string
	parseRe     *regexp.Regexp
	serialize   []string
	search      string
	replace     string
	parts       map[string]*PartConfig
	defaultPart *PartConfig
}

// NewConfig compiles the parse pattern, which uses verbose syntax:
// whitespace and #-comments outside character classes are ignored.
// Construction fails on a pattern that does not compile.
func NewConfig(parse string, serialize []string, search, replace string, parts map[string]*PartConfig) (*Config, error) {
	re, err := regexp.Compile(normalizePattern(parse))
	if err != nil {
		return nil, fmt.Errorf("compiling version parse pattern %q: %w", parse, err)
	}
	if search == "" {
		search = DefaultSearch
	}
	if replace == "" {
		replace = DefaultReplace
	}
	cfg := &Config{
		parse:       parse,
		parseRe:     re,
		serialize:   append([]string(nil), serialize...),
		search:      search,
		replace:     replace,
		parts:       map[string]*PartConfig{},
		defaultPart: DefaultPartConfig(),
	}
	for name, pc := range parts {
		cfg.parts[name] = pc
	}
	return cfg, nil
}

// normalizePattern strips the whitespace and #-comments of a verbose-style
// pattern so it can be handed to regexp.Compile, which has no verbose
// mode. Escapes and character classes are left alone.
func normalizePattern(pattern string) string {
	var b strings.Builder
	inClass := false
	escaped := false
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch {
		case escaped:
			b.WriteByte(ch)
			escaped = false
		case ch == '\\':
			b.WriteByte(ch)
			escaped = true
		case inClass:
			b.WriteByte(ch)
			if ch == ']' {
				inClass = false
			}
		case ch == '[':
			b.WriteByte(ch)
			inClass = true
		case ch == '#':
			for i+1 < len(pattern) && pattern[i+1] != '\n' {
				i++
			}
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			// ignored in verbose mode
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Parse searches for the pattern anywhere in raw and builds a version from
// its named groups. Groups that did not participate in the match become
// parts without a literal value, falling back to their optional value. It
// returns nil when raw is empty or does not match; a failed match is not
// an error, callers decide how to proceed.
func (c *Config) Parse(raw string) *Version {
	if raw == "" {
		return nil
	}
	idx := c.parseRe.FindStringSubmatchIndex(raw)
	if idx == nil {
		return nil
	}
	v := New(raw)
	for i, name := range c.parseRe.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		value := ""
		if idx[2*i] >= 0 {
			value = raw[idx[2*i]:idx[2*i+1]]
		}
		v.AddPart(name, NewPart(value, c.partConfig(name)))
	}
	return v
}

func (c *Config) partConfig(name string) *PartConfig {
	if pc, ok := c.parts[name]; ok {
		return pc
	}
	return c.defaultPart
}

// Order returns the canonical part sequence: the field references of the
// first serialize template, which is treated as the most complete
// representation.
func (c *Config) Order() []string {
	if len(c.serialize) == 0 {
		return nil
	}
	return Fields(c.serialize[0])
}

// Serialize picks the best fitting template and renders the version with
// it: the shortest candidate that loses no significant part, or the first
// incomplete candidate when none is complete.
func (c *Config) Serialize(v *Version, ctx *Context) (string, error) {
	format, err := c.chooseSerializeFormat(v, ctx)
	if err != nil {
		return "", err
	}
	return c.serializeWith(v, format, ctx, false)
}

func (c *Config) chooseSerializeFormat(v *Version, ctx *Context) (string, error) {
	var (
		chosen       string
		chosenCount  int
		complete     bool
		fallback     string
		haveFallback bool
	)
	for _, format := range c.serialize {
		_, err := c.serializeWith(v, format, ctx, true)
		var incomplete *IncompleteRepresentationError
		switch {
		case err == nil:
			n := len(Fields(format))
			if !complete || n < chosenCount {
				chosen, chosenCount, complete = format, n, true
			}
		case errors.As(err, &incomplete):
			if !haveFallback {
				fallback, haveFallback = format, true
			}
		default:
			// A field absent from both version and context is a real
			// configuration gap, not a format mismatch.
			return "", err
		}
	}
	if complete {
		return chosen, nil
	}
	if haveFallback {
		return fallback, nil
	}
	return "", ErrNoSuitableFormat
}

// serializeWith renders one candidate template. With requireComplete set
// it also rejects templates that drop parts still carrying significant
// values.
func (c *Config) serializeWith(v *Version, format string, ctx *Context, requireComplete bool) (string, error) {
	values := map[string]string{}
	var times map[string]time.Time
	if ctx != nil {
		for k, val := range ctx.Values {
			values[k] = val
		}
		times = ctx.Times
	}
	for name, val := range v.Values() {
		values[name] = val
	}
	out, err := expand(format, values, times)
	if err != nil {
		return "", err
	}
	if requireComplete {
		referenced := map[string]bool{}
		for _, f := range Fields(format) {
			referenced[f] = true
		}
		var missing []string
		for _, k := range c.keysNeedingRepresentation(v) {
			if !referenced[k] {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return "", &IncompleteRepresentationError{Format: format, Missing: missing}
		}
	}
	return out, nil
}

// keysNeedingRepresentation walks the canonical order and keeps every part
// name up to and including the last one not sitting at its optional value.
// Parts after the last significant one may be elided without loss.
func (c *Config) keysNeedingRepresentation(v *Version) []string {
	var names []string
	upTo := 0
	for _, name := range c.Order() {
		p, ok := v.Part(name)
		if !ok {
			continue
		}
		names = append(names, name)
		if !p.IsOptional() {
			upTo = len(names)
		}
	}
	return names[:upTo]
}

// SearchText renders the search template against the context.
func (c *Config) SearchText(ctx *Context) (string, error) {
	return Expand(c.search, ctx)
}

// ReplaceText renders the replace template against the context.
func (c *Config) ReplaceText(ctx *Context) (string, error) {
	return Expand(c.replace, ctx)
}

// IsDefaultSearch reports whether the search template was left at its
// default, in which case file matching may fall back to the originally
// parsed version string.
func (c *Config) IsDefaultSearch() bool {
	return c.search == DefaultSearch
}
