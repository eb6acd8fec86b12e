package amount

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the fixed-point scale shared by the native unit and the
// reference currency: both carry 18 fractional digits.
const Decimals = 18

// UnitScale is 10^18, the number of base units in one whole unit.
var UnitScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Native is a native-unit amount in base units (18 fractional digits).
type Native struct {
	v *big.Int
}

// Reference is a reference-currency amount in base units (18 fractional digits).
type Reference struct {
	v *big.Int
}

// NewNative creates a Native amount from base units.
func NewNative(base *big.Int) Native {
	return Native{v: clone(base)}
}

// NativeFromInt64 creates a Native amount from base units given as int64.
func NativeFromInt64(base int64) Native {
	return Native{v: big.NewInt(base)}
}

// NativeFromDecimal parses a decimal string like "0.1" into a Native amount.
func NativeFromDecimal(s string) (Native, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Native{}, err
	}
	return Native{v: v}, nil
}

// NewReference creates a Reference amount from base units.
func NewReference(base *big.Int) Reference {
	return Reference{v: clone(base)}
}

// ReferenceFromInt64 creates a Reference amount from base units given as int64.
func ReferenceFromInt64(base int64) Reference {
	return Reference{v: big.NewInt(base)}
}

// ReferenceFromUnits creates a Reference amount from a whole number of
// reference units (units * 10^18 base units).
func ReferenceFromUnits(units int64) Reference {
	return Reference{v: new(big.Int).Mul(big.NewInt(units), UnitScale)}
}

// Base returns a copy of the amount in base units.
func (n Native) Base() *big.Int { return clone(n.v) }

// Add returns n + other.
func (n Native) Add(other Native) Native {
	return Native{v: new(big.Int).Add(norm(n.v), norm(other.v))}
}

// Sub returns n - other.
func (n Native) Sub(other Native) Native {
	return Native{v: new(big.Int).Sub(norm(n.v), norm(other.v))}
}

// Cmp compares two native amounts: -1 if n < other, 0 if equal, 1 if greater.
func (n Native) Cmp(other Native) int { return norm(n.v).Cmp(norm(other.v)) }

// Sign returns -1, 0 or 1 depending on the sign of the amount.
func (n Native) Sign() int { return norm(n.v).Sign() }

// IsZero reports whether the amount is exactly zero.
func (n Native) IsZero() bool { return norm(n.v).Sign() == 0 }

func (n Native) String() string { return formatDecimal(norm(n.v)) }

// Base returns a copy of the amount in base units.
func (r Reference) Base() *big.Int { return clone(r.v) }

// Cmp compares two reference amounts.
func (r Reference) Cmp(other Reference) int { return norm(r.v).Cmp(norm(other.v)) }

// Sign returns -1, 0 or 1 depending on the sign of the amount.
func (r Reference) Sign() int { return norm(r.v).Sign() }

func (r Reference) String() string { return formatDecimal(norm(r.v)) }

func clone(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// norm lets the zero value of Native/Reference behave as zero.
func norm(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// parseDecimal converts a decimal string to base units at 18 digits.
// Fractional parts longer than 18 digits are rejected rather than rounded.
func parseDecimal(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("amount %q exceeds %d fractional digits", s, Decimals)
	}
	if whole == "" {
		whole = "0"
	}

	// Pad the fraction out to the full scale and parse as one integer.
	padded := whole + frac + strings.Repeat("0", Decimals-len(frac))
	v, ok := new(big.Int).SetString(padded, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// formatDecimal renders base units as a decimal string, trimming trailing
// zeros from the fractional part.
func formatDecimal(v *big.Int) string {
	sign := ""
	abs := new(big.Int).Abs(v)
	if v.Sign() < 0 {
		sign = "-"
	}

	whole, frac := new(big.Int).QuoRem(abs, UnitScale, new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	digits := fmt.Sprintf("%018s", frac.String())
	digits = strings.TrimRight(digits, "0")
	return sign + whole.String() + "." + digits
}
