package rational

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticIsExact(t *testing.T) {
	one, two, three := FromInt(1), FromInt(2), FromInt(3)

	half, ok := one.Quo(two)
	require.True(t, ok)
	assert.Equal(t, "1/2", half.String())

	third, ok := one.Quo(three)
	require.True(t, ok)
	sum := third.Add(third).Add(third)
	assert.True(t, sum.Equal(one), "1/3+1/3+1/3 = %s", sum)

	assert.Equal(t, "-1", one.Sub(two).String())
	assert.Equal(t, "6", two.Mul(three).String())
}

func TestQuoByZero(t *testing.T) {
	_, ok := FromInt(4).Quo(Value{})
	assert.False(t, ok)
	_, ok = FromInt(4).Quo(FromInt(0))
	assert.False(t, ok)
}

func TestCanonicalString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3", "3"},
		{"2/4", "1/2"},
		{"-6/4", "-3/2"},
		{"0.5", "1/2"},
		{" 10/5 ", "2"},
		{"0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Canonical(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			v := MustParse(got)
			assert.Equal(t, got, v.String(), "canonical form must round-trip")
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1/0", "1//2"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
	_, err := New(1, 0)
	assert.Error(t, err)
}

func TestIntAndFloat(t *testing.T) {
	n, ok := FromInt(-7).Int()
	require.True(t, ok)
	assert.Equal(t, -7, n)

	_, ok = MustParse("7/2").Int()
	assert.False(t, ok)

	assert.InDelta(t, 3.5, MustParse("7/2").Float64(), 1e-12)
	assert.InDelta(t, 1.0/3.0, MustParse("1/3").Float64(), 1e-12)
	assert.Equal(t, "0.5", MustParse("1/2").Decimal(4))
	assert.Equal(t, "0.3333", MustParse("1/3").Decimal(4))
	assert.Equal(t, "12", FromInt(12).Decimal(2))
}

func TestZeroValueIsZero(t *testing.T) {
	var v Value
	assert.Equal(t, "0", v.String())
	assert.Equal(t, 0, v.Sign())
	assert.True(t, v.Add(FromInt(2)).Equal(FromInt(2)))
}

func TestTextMarshalling(t *testing.T) {
	in := map[string]Value{"target": MustParse("-5/3")}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"-5/3"}`, string(b))

	var out map[string]Value
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, out["target"].Equal(in["target"]))
}
