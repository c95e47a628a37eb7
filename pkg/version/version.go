package version

// Version is an ordered mapping from part name to Part, together with the
// original string it was parsed from. Versions are never mutated by bump
// operations; Bump returns a new instance.
type Version struct {
	names    []string
	parts    map[string]*Part
	original string
	manual   map[string]bool
}

// New returns an empty version remembering the original matched string.
// Synthetic versions pass an empty original.
func New(original string) *Version {
	return &Version{
		parts:    map[string]*Part{},
		original: original,
	}
}

// AddPart appends a named part, preserving declaration order.
func (v *Version) AddPart(name string, p *Part) {
	if _, ok := v.parts[name]; !ok {
		v.names = append(v.names, name)
	}
	v.parts[name] = p
}

// Part returns the named part.
func (v *Version) Part(name string) (*Part, bool) {
	p, ok := v.parts[name]
	return p, ok
}

// Names returns the part names in declaration order.
func (v *Version) Names() []string {
	names := make([]string, len(v.names))
	copy(names, v.names)
	return names
}

// Values returns the effective value of every part.
func (v *Version) Values() map[string]string {
	values := make(map[string]string, len(v.parts))
	for name, p := range v.parts {
		values[name] = p.Value()
	}
	return values
}

// Original returns the string the version was parsed from, empty when the
// version was produced by a bump.
func (v *Version) Original() string {
	return v.original
}

// Set overwrites the literal value of an existing part, keeping its
// configuration. Hooks use it to redirect sibling parts during a bump.
func (v *Version) Set(name, value string) error {
	p, ok := v.parts[name]
	if !ok {
		return &UnknownPartError{Part: name}
	}
	v.parts[name] = &Part{value: value, config: p.config}
	return nil
}

// Bump returns a new version with the named part advanced. Walking order,
// every non-independent part after the bumped one is reset to its first
// value; parts before it, independent parts, and parts the bump hook set
// manually keep their values. The receiver is left untouched.
func (v *Version) Bump(target string, order []string) (*Version, error) {
	next := &Version{
		names:  append([]string(nil), v.names...),
		parts:  make(map[string]*Part, len(v.parts)),
		manual: map[string]bool{},
	}
	for name, p := range v.parts {
		next.parts[name] = p.Copy()
	}

	bumped := false
	for _, name := range order {
		p, ok := next.parts[name]
		if !ok {
			continue
		}
		switch {
		case name == target:
			bp, manual, err := v.parts[name].Bump(next)
			if err != nil {
				return nil, err
			}
			for _, m := range manual {
				next.manual[m] = true
			}
			if !next.manual[name] {
				next.parts[name] = bp
			}
			bumped = true
		case bumped && !p.IsIndependent() && !next.manual[name]:
			next.parts[name] = p.Null()
		}
	}
	if !bumped {
		return nil, &UnknownPartError{Part: target}
	}
	next.manual = nil
	return next, nil
}

// Compare orders two versions part by part along the given canonical
// order. Names missing from both versions are skipped; a name present in
// only one of them cannot be ordered.
func (v *Version) Compare(other *Version, order []string) (int, error) {
	for _, name := range order {
		p1, ok1 := v.parts[name]
		p2, ok2 := other.parts[name]
		if !ok1 && !ok2 {
			continue
		}
		if ok1 != ok2 {
			return 0, &UnknownPartError{Part: name}
		}
		c, err := p1.Compare(p2)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Equal reports whether both versions hold equal part values along order.
func (v *Version) Equal(other *Version, order []string) (bool, error) {
	c, err := v.Compare(other, order)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}
