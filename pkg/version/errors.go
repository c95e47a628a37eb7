package version

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration problems surface at construction time and are fatal. Bump
// and serialize failures abort the single operation in progress; existing
// Version values are never left half modified.

var (
	// ErrEmptyValues reports an enumerated part configured with no values.
	ErrEmptyValues = errors.New("version part values cannot be empty")

	// ErrNoSuitableFormat reports that no serialization template could be
	// chosen at all.
	ErrNoSuitableFormat = errors.New("did not find a suitable serialization format")

	// ErrMismatchedStrategies reports a comparison between parts whose
	// strategies are of different kinds.
	ErrMismatchedStrategies = errors.New("parts use different bump strategies and cannot be compared")
)

// NoDigitError reports a numeric part value without any digit run.
type NoDigitError struct {
	Value string
}

func (e *NoDigitError) Error() string {
	return fmt.Sprintf("value %q does not contain any digit", e.Value)
}

// MembershipError reports a first or optional value that is not a member
// of the configured values list.
type MembershipError struct {
	Field  string
	Value  string
	Values []string
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("%s %q must be one of [%s]", e.Field, e.Value, strings.Join(e.Values, ", "))
}

// UnknownValueError reports a bump of an enumerated part whose current
// value is not a legal member of the values list.
type UnknownValueError struct {
	Value  string
	Values []string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("value %q is not one of [%s]", e.Value, strings.Join(e.Values, ", "))
}

// ExhaustedValuesError reports a bump of an enumerated part that already
// holds the last value of its list.
type ExhaustedValuesError struct {
	Value  string
	Values []string
}

func (e *ExhaustedValuesError) Error() string {
	return fmt.Sprintf("value %q is already the maximum among [%s] and cannot be bumped", e.Value, strings.Join(e.Values, ", "))
}

// UnknownPartError reports a bump target that is not present among the
// version's parts.
type UnknownPartError struct {
	Part string
}

func (e *UnknownPartError) Error() string {
	return fmt.Sprintf("no part named %q in version", e.Part)
}

// MissingValueError reports a template field that is absent from both the
// version parts and the serialization context.
type MissingValueError struct {
	Field  string
	Format string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value for %q when serializing with format %q", e.Field, e.Format)
}

// IncompleteRepresentationError reports a template that drops parts still
// carrying significant values.
type IncompleteRepresentationError struct {
	Format  string
	Missing []string
}

func (e *IncompleteRepresentationError) Error() string {
	return fmt.Sprintf("format %q does not represent required parts [%s]", e.Format, strings.Join(e.Missing, ", "))
}
