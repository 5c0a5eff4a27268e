// Package naming encodes an (activity, raw workspace) pair into the single
// workspace name the compositor sees, and decodes it back.
//
// The format is:
//
//	hact-[<raw>]-[<activity>]
//
// Raw and activity names that themselves contain "-[" or "]-" are outside the
// contract: they encode fine but structural parsing may split them in the
// wrong place. The state store's mapping table is authoritative for those.
package naming

import (
	"fmt"
	"strings"
)

const (
	// Prefix is the fixed token every convention-following workspace name starts with.
	Prefix = "hact-["

	rawClose      = "]-["
	activityClose = "]"
)

// DecodeError reports a workspace name that is neither in the mapping table
// nor structurally parseable.
type DecodeError struct {
	Name string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode workspace name %q: not in mapping and not in hact-[raw]-[activity] form", e.Name)
}

// Encode returns the composite workspace name for raw under activity.
func Encode(activity, raw string) string {
	return Prefix + raw + rawClose + activity + activityClose
}

// IsComposite reports whether name follows the naming convention's prefix.
func IsComposite(name string) bool {
	return strings.HasPrefix(name, Prefix)
}

// Parse extracts the raw and activity segments from a composite name.
// The raw segment is the text between the first "-[" and the next "]-".
func Parse(composite string) (raw, activity string, ok bool) {
	_, rest, found := strings.Cut(composite, "-[")
	if !found {
		return "", "", false
	}
	raw, rest, found = strings.Cut(rest, "]-")
	if !found || raw == "" {
		return "", "", false
	}
	if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, activityClose) && len(rest) >= 2 {
		activity = rest[1 : len(rest)-1]
	}
	return raw, activity, true
}

// Decode resolves composite to its raw name, consulting table first and
// falling back to structural parsing.
func Decode(table map[string]string, composite string) (string, error) {
	if raw, ok := table[composite]; ok && raw != "" {
		return raw, nil
	}
	if raw, _, ok := Parse(composite); ok {
		return raw, nil
	}
	return "", &DecodeError{Name: composite}
}

// ActivityOf returns the activity segment of composite, or "" when the name
// is not in the convention.
func ActivityOf(composite string) string {
	if !IsComposite(composite) {
		return ""
	}
	_, activity, _ := Parse(composite)
	return activity
}
