// Package foundation holds small generic helpers shared by configuration and
// command parsing. Classified errors live in the errors subpackage.
package foundation

import (
	"slices"
	"strings"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
)

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer maps loosely written strings ("Algolia ", "BLEVE") onto a closed
// set of enum values.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
}

// NewNormalizer creates a normalizer for the enum called name. Blank input
// normalizes to defaultValue.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[normalizeKey(k)] = v
	}
	return &Normalizer[T]{name: name, validValues: normalized, defaultValue: defaultValue}
}

// Normalize returns the value for raw, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[normalizeKey(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// Parse returns the value for raw. Unknown input is a validation error that
// lists the accepted spellings.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := normalizeKey(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.validValues[key]; ok {
		return value, nil
	}
	var zero T
	return zero, errors.ValidationError("invalid "+n.name).
		WithContext("value", raw).
		WithContext("valid", strings.Join(n.ValidKeys(), ", ")).
		Build()
}

// ValidKeys returns the accepted spellings, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	keys := make([]string, 0, len(n.validValues))
	for k := range n.validValues {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
