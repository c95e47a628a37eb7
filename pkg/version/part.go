package version

import "math/big"

// PartConfig couples a bump strategy with part-level flags. Configurations
// are shared read-only between all parts of the same name.
type PartConfig struct {
	Strategy    Strategy
	Independent bool
}

// DefaultPartConfig returns the configuration used for parts that were
// not configured explicitly: a plain numeric part starting at zero.
func DefaultPartConfig() *PartConfig {
	s, _ := NewNumericStrategy("", nil)
	return &PartConfig{Strategy: s}
}

// Part is a single named component of a version. Parts are immutable,
// every operation returns a fresh Part sharing the same configuration.
type Part struct {
	value  string
	config *PartConfig
}

// NewPart wraps a literal value. A nil config means the default numeric
// configuration.
func NewPart(value string, config *PartConfig) *Part {
	if config == nil {
		config = DefaultPartConfig()
	}
	return &Part{value: value, config: config}
}

// Value returns the literal value, falling back to the strategy's optional
// value when none was set.
func (p *Part) Value() string {
	if p.value != "" {
		return p.value
	}
	return p.config.Strategy.OptionalValue()
}

func (p *Part) Copy() *Part {
	return &Part{value: p.value, config: p.config}
}

// Bump advances the part, threading the in-progress version through to
// the strategy's hook.
func (p *Part) Bump(v *Version) (*Part, []string, error) {
	next, manual, err := p.config.Strategy.Bump(p.Value(), v)
	if err != nil {
		return nil, nil, err
	}
	return &Part{value: next, config: p.config}, manual, nil
}

// Null returns the part reset to its first value.
func (p *Part) Null() *Part {
	return &Part{value: p.config.Strategy.FirstValue(), config: p.config}
}

func (p *Part) IsOptional() bool {
	return p.Value() == p.config.Strategy.OptionalValue()
}

func (p *Part) IsIndependent() bool {
	return p.config.Independent
}

// Equal compares effective values only; the configurations behind the two
// parts may differ.
func (p *Part) Equal(other *Part) bool {
	return other != nil && p.Value() == other.Value()
}

// Compare orders two parts. Numeric parts compare by the integer value of
// their digit run, enumerated parts by position in the values list. Parts
// whose strategies are of different kinds cannot be ordered.
func (p *Part) Compare(other *Part) (int, error) {
	switch s := p.config.Strategy.(type) {
	case *NumericStrategy:
		if _, ok := other.config.Strategy.(*NumericStrategy); !ok {
			return 0, ErrMismatchedStrategies
		}
		return compareNumeric(p.Value(), other.Value())
	case *ValuesStrategy:
		o, ok := other.config.Strategy.(*ValuesStrategy)
		if !ok {
			return 0, ErrMismatchedStrategies
		}
		i := s.index(p.Value())
		if i < 0 {
			return 0, &UnknownValueError{Value: p.Value(), Values: s.values}
		}
		j := o.index(other.Value())
		if j < 0 {
			return 0, &UnknownValueError{Value: other.Value(), Values: o.values}
		}
		return compareInts(i, j), nil
	default:
		return 0, ErrMismatchedStrategies
	}
}

func compareNumeric(a, b string) (int, error) {
	ga := firstNumeric.FindStringSubmatch(a)
	if ga == nil {
		return 0, &NoDigitError{Value: a}
	}
	gb := firstNumeric.FindStringSubmatch(b)
	if gb == nil {
		return 0, &NoDigitError{Value: b}
	}
	na, _ := new(big.Int).SetString(ga[2], 10)
	nb, _ := new(big.Int).SetString(gb[2], 10)
	return na.Cmp(nb), nil
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
