package version

import (
	"regexp"
	"time"
)

// Context carries the caller-supplied values merged with version parts at
// serialize time. Version parts win on key collision. Time entries render
// through Go layout format specs, e.g. "{now:2006-01-02}".
type Context struct {
	Values map[string]string
	Times  map[string]time.Time
}

func NewContext() *Context {
	return &Context{
		Values: map[string]string{},
		Times:  map[string]time.Time{},
	}
}

// Clone returns a deep copy so per-file serialization can add keys like
// current_version without leaking them into other call sites.
func (c *Context) Clone() *Context {
	clone := NewContext()
	if c == nil {
		return clone
	}
	for k, v := range c.Values {
		clone.Values[k] = v
	}
	for k, t := range c.Times {
		clone.Times[k] = t
	}
	return clone
}

// Field references look like {name} or {name:spec}. Names may carry a $
// prefix for environment-derived keys.
var fieldRef = regexp.MustCompile(`\{([^{}:\s]+)(?::([^{}]*))?\}`)

// Fields returns the distinct field names referenced by a template, in
// order of first appearance.
func Fields(tmpl string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range fieldRef.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Expand renders a standalone template, such as a commit message or a tag
// name, against the context alone.
func Expand(tmpl string, ctx *Context) (string, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	return expand(tmpl, ctx.Values, ctx.Times)
}

// expand substitutes every field reference from values and times. A field
// found in neither yields a MissingValueError.
func expand(tmpl string, values map[string]string, times map[string]time.Time) (string, error) {
	var missing error
	out := fieldRef.ReplaceAllStringFunc(tmpl, func(ref string) string {
		m := fieldRef.FindStringSubmatch(ref)
		name, layout := m[1], m[2]
		if t, ok := times[name]; ok {
			if layout == "" {
				layout = time.RFC3339
			}
			return t.Format(layout)
		}
		if val, ok := values[name]; ok {
			return val
		}
		if missing == nil {
			missing = &MissingValueError{Field: name, Format: tmpl}
		}
		return ref
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}
