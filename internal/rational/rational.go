// Package rational provides the exact fraction type every computed puzzle value
// is expressed in. Values are immutable and always held in reduced form, so the
// canonical string of a value is unique and can serve as a map or JSON key.
package rational

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// floatPrecision is the number of decimal places kept when converting to float64.
const floatPrecision = 16

// Value is an exact rational number. The zero value is 0.
type Value struct {
	r *big.Rat
}

// FromInt returns the integer n as a Value.
func FromInt(n int64) Value {
	return Value{r: new(big.Rat).SetInt64(n)}
}

// New returns num/den in reduced form. den must not be zero.
func New(num, den int64) (Value, error) {
	if den == 0 {
		return Value{}, fmt.Errorf("rational: zero denominator in %d/%d", num, den)
	}
	return Value{r: big.NewRat(num, den)}, nil
}

// Ints converts a slice of integers to Values.
func Ints(in []int) []Value {
	out := make([]Value, len(in))
	for i, n := range in {
		out[i] = FromInt(int64(n))
	}
	return out
}

// Parse reads the canonical form ("3", "-1/2") as well as decimal forms ("0.5").
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("rational: empty input")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Value{}, fmt.Errorf("rational: cannot parse %q", s)
	}
	return Value{r: r}, nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) rat() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

func (v Value) Add(w Value) Value { return Value{r: new(big.Rat).Add(v.rat(), w.rat())} }
func (v Value) Sub(w Value) Value { return Value{r: new(big.Rat).Sub(v.rat(), w.rat())} }
func (v Value) Mul(w Value) Value { return Value{r: new(big.Rat).Mul(v.rat(), w.rat())} }

// Quo returns v/w. ok is false when w is zero.
func (v Value) Quo(w Value) (Value, bool) {
	if w.Sign() == 0 {
		return Value{}, false
	}
	return Value{r: new(big.Rat).Quo(v.rat(), w.rat())}, true
}

func (v Value) Sign() int   { return v.rat().Sign() }
func (v Value) IsInt() bool { return v.rat().IsInt() }

// Int returns the value as an int when it is integral and fits.
func (v Value) Int() (int, bool) {
	r := v.rat()
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	n := r.Num().Int64()
	if n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}

// Float64 approximates the value; used for validator predicates and display only.
func (v Value) Float64() float64 {
	f, _ := decimal.NewFromBigRat(v.rat(), floatPrecision).Float64()
	return f
}

// Decimal renders the value rounded to the given number of places, trailing
// zeros trimmed ("0.5", "0.3333", "12").
func (v Value) Decimal(places int32) string {
	return decimal.NewFromBigRat(v.rat(), places).String()
}

func (v Value) Cmp(w Value) int    { return v.rat().Cmp(w.rat()) }
func (v Value) Equal(w Value) bool { return v.Cmp(w) == 0 }
func (v Value) String() string     { return v.rat().RatString() }
func (v Value) Key() string        { return v.String() }

func (v Value) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Value) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// Canonical normalises any accepted spelling of a rational to its key form.
func Canonical(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
