package units_test

import (
	"math"
	"testing"

	"github.com/fpgaminer/gcad/pkg/units"
)

func TestParse(t *testing.T) {
	tests := []struct {
		suffix string
		want   units.Unit
		ok     bool
	}{
		{"mm", units.MM, true},
		{"cm", units.CM, true},
		{"m", units.M, true},
		{"in", units.IN, true},
		{"ft", units.FT, true},
		{"yd", units.YD, true},
		{"", units.None, false},
		{"km", units.None, false},
		{"MM", units.None, false},
		{"inch", units.None, false},
	}

	for _, test := range tests {
		got, ok := units.Parse(test.suffix)
		if got != test.want || ok != test.ok {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", test.suffix, got, ok, test.want, test.ok)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, u := range []units.Unit{units.MM, units.CM, units.M, units.IN, units.FT, units.YD} {
		got, ok := units.Parse(u.String())
		if !ok || got != u {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, true)", u.String(), got, ok, u)
		}
	}
	if units.None.String() != "" {
		t.Errorf("None.String() = %q, want empty", units.None.String())
	}
}

func TestToCanonical(t *testing.T) {
	tests := []struct {
		v    float64
		u    units.Unit
		want float64
	}{
		{1, units.MM, 1},
		{1, units.CM, 10},
		{1, units.M, 1000},
		{1, units.IN, 25.4},
		{1, units.FT, 304.8},
		{1, units.YD, 914.4},
		{2.5, units.CM, 25},
		{42, units.None, 42},
	}

	for _, test := range tests {
		if got := units.ToCanonical(test.v, test.u); got != test.want {
			t.Errorf("ToCanonical(%v, %v) = %v, want %v", test.v, test.u, got, test.want)
		}
	}
}

func TestFromCanonicalRoundTrip(t *testing.T) {
	values := []float64{0, 1, 3.175, 25.4, 1000, 0.001}
	unitsList := []units.Unit{units.MM, units.CM, units.M, units.IN, units.FT, units.YD}

	for _, v := range values {
		for _, u1 := range unitsList {
			for _, u2 := range unitsList {
				canonical := units.ToCanonical(v, u1)
				converted := units.FromCanonical(canonical, u2)
				back := units.ToCanonical(converted, u2)
				if math.Abs(back-canonical) > 1e-9*math.Max(1, math.Abs(canonical)) {
					t.Errorf("round trip %v %v -> %v: got %v, want %v", v, u1, u2, back, canonical)
				}
			}
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		v        float64
		from, to units.Unit
		want     float64
	}{
		{1, units.IN, units.MM, 25.4},
		{10, units.MM, units.CM, 1},
		{3, units.FT, units.YD, 1},
		{5, units.None, units.MM, 5},
		{5, units.MM, units.None, 5},
	}

	for _, test := range tests {
		got := units.Convert(test.v, test.from, test.to)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("Convert(%v, %v, %v) = %v, want %v", test.v, test.from, test.to, got, test.want)
		}
	}
}
