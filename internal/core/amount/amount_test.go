package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeFromDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string // base units as decimal string
		wantErr bool
	}{
		{name: "whole unit", in: "1", want: "1000000000000000000"},
		{name: "tenth", in: "0.1", want: "100000000000000000"},
		{name: "thousandth", in: "0.001", want: "1000000000000000"},
		{name: "no leading zero", in: ".5", want: "500000000000000000"},
		{name: "negative", in: "-2.5", want: "-2500000000000000000"},
		{name: "full precision", in: "0.000000000000000001", want: "1"},
		{name: "trailing zeros", in: "3.1400", want: "3140000000000000000"},
		{name: "too many fractional digits", in: "0.0000000000000000001", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
		{name: "lone dot", in: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NativeFromDecimal(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want, ok := new(big.Int).SetString(tt.want, 10)
			require.True(t, ok)
			assert.Zero(t, got.Base().Cmp(want))
		})
	}
}

func TestNativeArithmetic(t *testing.T) {
	a := NativeFromInt64(300)
	b := NativeFromInt64(200)

	assert.Equal(t, int64(500), a.Add(b).Base().Int64())
	assert.Equal(t, int64(100), a.Sub(b).Base().Int64())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(NativeFromInt64(300)))
}

func TestZeroValueBehavesAsZero(t *testing.T) {
	var n Native
	assert.True(t, n.IsZero())
	assert.Equal(t, 0, n.Sign())
	assert.Equal(t, "0", n.String())

	var r Reference
	assert.Equal(t, 0, r.Sign())
	assert.Equal(t, 0, r.Cmp(ReferenceFromInt64(0)))
}

func TestReferenceFromUnits(t *testing.T) {
	r := ReferenceFromUnits(5)
	want, _ := new(big.Int).SetString("5000000000000000000", 10)
	assert.Zero(t, r.Base().Cmp(want))
}

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"0.1", "0.1"},
		{"1.050", "1.05"},
		{"-0.25", "-0.25"},
		{"0", "0"},
	}
	for _, tt := range tests {
		n, err := NativeFromDecimal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n.String())
	}
}

func TestBaseReturnsCopy(t *testing.T) {
	n := NativeFromInt64(42)
	n.Base().SetInt64(99)
	assert.Equal(t, int64(42), n.Base().Int64())
}
