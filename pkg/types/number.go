package types

import (
	"math"

	"github.com/fpgaminer/gcad/pkg/units"
)

// Number is a unit-aware numeric value. Integer literals stay integral
// under addition, subtraction and multiplication; division always
// produces a float, as does any unit conversion with a non-trivial
// factor.
type Number struct {
	i     int64
	f     float64
	isInt bool
	unit  units.Unit
}

// Int creates a unitless integer Number.
func Int(i int64) Number {
	return Number{i: i, isInt: true}
}

// Float creates a unitless float Number.
func Float(f float64) Number {
	return Number{f: f}
}

// IntUnit creates an integer Number with a length unit.
func IntUnit(i int64, u units.Unit) Number {
	return Number{i: i, isInt: true, unit: u}
}

// FloatUnit creates a float Number with a length unit.
func FloatUnit(f float64, u units.Unit) Number {
	return Number{f: f, unit: u}
}

// Unit returns the number's unit tag (units.None for unitless values).
func (n Number) Unit() units.Unit { return n.unit }

// Float returns the magnitude, whatever the representation.
func (n Number) Float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// IsUnitless reports whether the number carries no length unit.
func (n Number) IsUnitless() bool { return n.unit == units.None }

// Int returns the value as an integer. The second return value is
// false for fractional floats; integral floats convert cleanly.
func (n Number) Int() (int64, bool) {
	if n.isInt {
		return n.i, true
	}
	if n.f == math.Trunc(n.f) && !math.IsInf(n.f, 0) {
		return int64(n.f), true
	}
	return 0, false
}

// Scalar returns the magnitude of a unitless number, or a TypeError if
// the number carries a unit.
func (n Number) Scalar() (float64, error) {
	if n.unit != units.None {
		return 0, NewError(TypeError, "expected a unitless number, got %s", n.String())
	}
	return n.Float(), nil
}

// Canonical returns the magnitude converted to the canonical unit
// (millimeters), or a TypeError if the number is unitless.
func (n Number) Canonical() (float64, error) {
	if n.unit == units.None {
		return 0, NewError(TypeError, "expected a length with a unit, got %s", n.String())
	}
	return units.ToCanonical(n.Float(), n.unit), nil
}

// ConvertUnit re-expresses the number in another unit. Conversion to or
// from a unitless number passes the magnitude through untouched.
func (n Number) ConvertUnit(u units.Unit) Number {
	if n.unit == u || n.unit == units.None || u == units.None {
		n.unit = u
		return n
	}
	return Number{f: units.Convert(n.Float(), n.unit, u), unit: u}
}

// toCanonicalRepr converts to millimeters preserving the integer
// representation when the value is already canonical.
func (n Number) toCanonicalRepr() Number {
	if n.unit == units.MM {
		return n
	}
	return Number{f: units.ToCanonical(n.Float(), n.unit), unit: units.MM}
}

// Add returns n + m under the unit rules: both operands unitless, or
// both lengths (normalized to millimeters). Mixing is a TypeError.
func (n Number) Add(m Number) (Number, error) {
	return n.additive(m, "+", func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

// Sub returns n - m under the same unit rules as Add.
func (n Number) Sub(m Number) (Number, error) {
	return n.additive(m, "-", func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

func (n Number) additive(m Number, op string, iop func(a, b int64) int64, fop func(a, b float64) float64) (Number, error) {
	switch {
	case n.unit == units.None && m.unit == units.None:
		if n.isInt && m.isInt {
			return Int(iop(n.i, m.i)), nil
		}
		return Float(fop(n.Float(), m.Float())), nil
	case n.unit != units.None && m.unit != units.None:
		a, b := n.toCanonicalRepr(), m.toCanonicalRepr()
		if a.isInt && b.isInt {
			return IntUnit(iop(a.i, b.i), units.MM), nil
		}
		return FloatUnit(fop(a.Float(), b.Float()), units.MM), nil
	default:
		return Number{}, NewError(TypeError, "operator %q requires both operands to be unitless or both to carry a unit (got %s and %s)", op, n, m)
	}
}

// Mul returns n * m. One operand may carry a unit; the result keeps it.
// Multiplying two lengths would produce an area, which the language
// rejects.
func (n Number) Mul(m Number) (Number, error) {
	if n.unit != units.None && m.unit != units.None {
		return Number{}, NewError(TypeError, "operator \"*\" cannot combine two unit quantities (%s and %s)", n, m)
	}
	u := n.unit
	if u == units.None {
		u = m.unit
	}
	if n.isInt && m.isInt {
		return Number{i: n.i * m.i, isInt: true, unit: u}, nil
	}
	return Number{f: n.Float() * m.Float(), unit: u}, nil
}

// Div returns n / m as a float. At most one operand may carry a unit,
// and the result keeps that unit.
func (n Number) Div(m Number) (Number, error) {
	if n.unit != units.None && m.unit != units.None {
		return Number{}, NewError(TypeError, "operator \"/\" cannot combine two unit quantities (%s and %s)", n, m)
	}
	u := n.unit
	if u == units.None {
		u = m.unit
	}
	if m.Float() == 0 {
		return Number{}, NewError(RuntimeError, "division by zero")
	}
	return Number{f: n.Float() / m.Float(), unit: u}, nil
}

// Neg returns -n.
func (n Number) Neg() Number {
	if n.isInt {
		return Number{i: -n.i, isInt: true, unit: n.unit}
	}
	return Number{f: -n.f, unit: n.unit}
}

// Pow returns n ^ m. Both operands must be unitless; an integer base
// with a non-negative integer exponent stays integral.
func (n Number) Pow(m Number) (Number, error) {
	if n.unit != units.None || m.unit != units.None {
		return Number{}, NewError(TypeError, "operator \"^\" requires unitless operands (got %s and %s)", n, m)
	}
	if n.isInt && m.isInt && m.i >= 0 {
		r := int64(1)
		for k := int64(0); k < m.i; k++ {
			r *= n.i
		}
		return Int(r), nil
	}
	return Float(math.Pow(n.Float(), m.Float())), nil
}

// Factorial returns n!. The operand must be a unitless, non-negative
// integral number.
func (n Number) Factorial() (Number, error) {
	if n.unit != units.None {
		return Number{}, NewError(RuntimeError, "factorial requires a unitless number, got %s", n)
	}
	i, ok := n.Int()
	if !ok || i < 0 {
		return Number{}, NewError(RuntimeError, "factorial requires a non-negative integer, got %s", n)
	}
	r := int64(1)
	for k := int64(2); k <= i; k++ {
		r *= k
	}
	return Int(r), nil
}
