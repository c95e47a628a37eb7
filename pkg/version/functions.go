package version

import (
	"math/big"
	"regexp"
)

// Hook is a caller-supplied callback run while a part is being bumped,
// before that part's own value is finalized. It receives the in-progress
// version, may redirect sibling parts through Version.Set, and returns the
// names of every part it set; those values win over the regular bump and
// reset results. Hooks run synchronously and must not bump the version
// they are handed.
type Hook func(v *Version) []string

// Strategy decides how a single version part advances and what its first
// and optional values are.
type Strategy interface {
	// Bump computes the next value for a part currently holding value. The
	// in-progress version is threaded through to the configured hook; the
	// returned names list the parts the hook set manually.
	Bump(value string, v *Version) (next string, manual []string, err error)
	FirstValue() string
	OptionalValue() string
}

var firstNumeric = regexp.MustCompile(`^([^\d]*)(\d+)(.*)$`)

// NumericStrategy starts at its first value and follows the sequence of
// integers. Only the first digit run of the value is advanced, any prefix
// or suffix is carried over, so "r3-001" becomes "r4-001". The optional
// value equals the first value.
type NumericStrategy struct {
	first string
	hook  Hook
}

// NewNumericStrategy validates that an explicitly given first value
// contains a digit run. An empty firstValue means "0".
func NewNumericStrategy(firstValue string, hook Hook) (*NumericStrategy, error) {
	if firstValue == "" {
		firstValue = "0"
	} else if !firstNumeric.MatchString(firstValue) {
		return nil, &NoDigitError{Value: firstValue}
	}
	return &NumericStrategy{first: firstValue, hook: hook}, nil
}

func (s *NumericStrategy) FirstValue() string    { return s.first }
func (s *NumericStrategy) OptionalValue() string { return s.first }

func (s *NumericStrategy) Bump(value string, v *Version) (string, []string, error) {
	manual := runHook(s.hook, v)
	groups := firstNumeric.FindStringSubmatch(value)
	if groups == nil {
		return "", nil, &NoDigitError{Value: value}
	}
	// The digit run is unbounded; leading zeros do not survive the
	// round-trip through the integer ("007" bumps to "8").
	n, _ := new(big.Int).SetString(groups[2], 10)
	n.Add(n, big.NewInt(1))
	return groups[1] + n.String() + groups[3], manual, nil
}

// ValuesStrategy iterates through a fixed list of values and fails once
// the last one is reached. The optional and first values default to the
// head of the list and must both be members of it.
type ValuesStrategy struct {
	values   []string
	optional string
	first    string
	hook     Hook
}

func NewValuesStrategy(values []string, optionalValue, firstValue string, hook Hook) (*ValuesStrategy, error) {
	if len(values) == 0 {
		return nil, ErrEmptyValues
	}
	if optionalValue == "" {
		optionalValue = values[0]
	}
	if !containsValue(values, optionalValue) {
		return nil, &MembershipError{Field: "optional value", Value: optionalValue, Values: values}
	}
	if firstValue == "" {
		firstValue = values[0]
	}
	if !containsValue(values, firstValue) {
		return nil, &MembershipError{Field: "first value", Value: firstValue, Values: values}
	}
	vals := make([]string, len(values))
	copy(vals, values)
	return &ValuesStrategy{
		values:   vals,
		optional: optionalValue,
		first:    firstValue,
		hook:     hook,
	}, nil
}

func (s *ValuesStrategy) FirstValue() string    { return s.first }
func (s *ValuesStrategy) OptionalValue() string { return s.optional }

// Values returns a copy of the allowed value list.
func (s *ValuesStrategy) Values() []string {
	vals := make([]string, len(s.values))
	copy(vals, s.values)
	return vals
}

func (s *ValuesStrategy) index(value string) int {
	for i, v := range s.values {
		if v == value {
			return i
		}
	}
	return -1
}

func (s *ValuesStrategy) Bump(value string, v *Version) (string, []string, error) {
	manual := runHook(s.hook, v)
	idx := s.index(value)
	if idx < 0 {
		return "", nil, &UnknownValueError{Value: value, Values: s.values}
	}
	if idx == len(s.values)-1 {
		return "", nil, &ExhaustedValuesError{Value: value, Values: s.values}
	}
	return s.values[idx+1], manual, nil
}

func runHook(h Hook, v *Version) []string {
	if h == nil || v == nil {
		return nil
	}
	return h(v)
}

func containsValue(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
