package validator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"svw.info/any4/internal/domain"
)

// IsInteger accepts whole-number targets.
func IsInteger(v float64) bool {
	return math.Floor(v) == v
}

// IsPositiveInteger accepts whole-number targets that are not negative.
// Zero is accepted, matching pools generated by earlier releases.
func IsPositiveInteger(v float64) bool {
	return IsInteger(v) && v >= 0
}

var registry = map[string]domain.TargetValidator{
	"integer":          IsInteger,
	"positive-integer": IsPositiveInteger,
}

// Lookup resolves a validator by name. "" and "any" return nil, which
// accepts every target.
func Lookup(name string) (domain.TargetValidator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "any" {
		return nil, nil
	}
	v, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown target validator %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// Names lists the registered validator names.
func Names() []string {
	out := make([]string, 0, len(registry)+1)
	out = append(out, "any")
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
