// Package units implements the physical-length unit system of the gcad
// language.
//
// All lengths are normalized to a single canonical unit (millimeters)
// before arithmetic or emission. The package defines the unit tags the
// lexer recognizes as literal suffixes and the exact decimal conversion
// factors between them:
//
//	mm=1, cm=10, m=1000, in=25.4, ft=304.8, yd=914.4
package units

// Unit identifies a length unit, or None for a dimensionless number.
type Unit uint8

const (
	None Unit = iota
	MM
	CM
	M
	IN
	FT
	YD
)

// factors holds the exact millimeter multiplier for each unit.
// Indexed by Unit; None has no factor.
var factors = [...]float64{
	MM: 1,
	CM: 10,
	M:  1000,
	IN: 25.4,
	FT: 304.8,
	YD: 914.4,
}

// Parse returns the unit named by a literal suffix.
// The second return value is false if the suffix is not a known unit.
func Parse(s string) (Unit, bool) {
	switch s {
	case "mm":
		return MM, true
	case "cm":
		return CM, true
	case "m":
		return M, true
	case "in":
		return IN, true
	case "ft":
		return FT, true
	case "yd":
		return YD, true
	default:
		return None, false
	}
}

// String returns the literal suffix for the unit, or "" for None.
func (u Unit) String() string {
	switch u {
	case MM:
		return "mm"
	case CM:
		return "cm"
	case M:
		return "m"
	case IN:
		return "in"
	case FT:
		return "ft"
	case YD:
		return "yd"
	default:
		return ""
	}
}

// ToCanonical converts a value expressed in u to millimeters.
// Values with Unit None are returned unchanged.
func ToCanonical(v float64, u Unit) float64 {
	if u == None {
		return v
	}
	return v * factors[u]
}

// FromCanonical converts a millimeter value to u.
// Values targeting Unit None are returned unchanged.
func FromCanonical(v float64, u Unit) float64 {
	if u == None {
		return v
	}
	return v / factors[u]
}

// Convert re-expresses a value from one unit in another.
// If either side is None the magnitude is passed through untouched.
func Convert(v float64, from, to Unit) float64 {
	if from == None || to == None {
		return v
	}
	return v * factors[from] / factors[to]
}
