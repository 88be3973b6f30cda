package domain

import (
	"fmt"
	"strings"

	"svw.info/any4/internal/rational"
)

// Difficulty labels how many distinct operation paths reach a target.
type Difficulty int

const (
	Easy Difficulty = iota
	Moderate
	Hard
)

// Difficulties lists every tier in severity order.
var Difficulties = []Difficulty{Easy, Moderate, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Moderate:
		return "moderate"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty accepts the lower-case names plus "medium" for Moderate.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "moderate", "medium":
		return Moderate, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// ParseDifficulties splits a comma separated list; an empty string means all tiers.
func ParseDifficulties(s string) ([]Difficulty, error) {
	if strings.TrimSpace(s) == "" {
		return append([]Difficulty(nil), Difficulties...), nil
	}
	var out []Difficulty
	for _, part := range strings.Split(s, ",") {
		d, err := ParseDifficulty(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// FallbackOrder is the order pools are tried when d itself is empty:
// the requested tier first, then its nearest neighbour in severity.
func (d Difficulty) FallbackOrder() []Difficulty {
	switch d {
	case Easy:
		return []Difficulty{Easy, Moderate, Hard}
	case Hard:
		return []Difficulty{Hard, Moderate, Easy}
	default:
		return []Difficulty{Moderate, Easy, Hard}
	}
}

// Op is an arithmetic operator applied to an ordered pair of values.
type Op int

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// Ops lists the operators in the order children are generated.
var Ops = []Op{OpAdd, OpSub, OpMul, OpDiv}

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "x"
	case OpDiv:
		return "/"
	default:
		return ""
	}
}

func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Op) UnmarshalText(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "+":
		*o = OpAdd
	case "-":
		*o = OpSub
	case "x", "*":
		*o = OpMul
	case "/":
		*o = OpDiv
	case "":
		*o = OpNone
	default:
		return fmt.Errorf("unknown operator %q", string(b))
	}
	return nil
}

// Apply computes a op b. ok is false for OpNone and for division by zero.
func (o Op) Apply(a, b rational.Value) (rational.Value, bool) {
	switch o {
	case OpAdd:
		return a.Add(b), true
	case OpSub:
		return a.Sub(b), true
	case OpMul:
		return a.Mul(b), true
	case OpDiv:
		return a.Quo(b)
	default:
		return rational.Value{}, false
	}
}
