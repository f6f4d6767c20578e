package types_test

import (
	"errors"
	"math"
	"testing"

	"github.com/fpgaminer/gcad/pkg/types"
	"github.com/fpgaminer/gcad/pkg/units"
)

func expectKind(t *testing.T, err error, kind types.ErrorKind) {
	t.Helper()
	var e *types.Error
	if !errors.As(err, &e) {
		t.Fatalf("got error %v, want *types.Error", err)
	}
	if e.Kind != kind {
		t.Errorf("error kind = %v, want %v", e.Kind, kind)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Number
		want types.Number
	}{
		{"int plus int", types.Int(2), types.Int(3), types.Int(5)},
		{"int plus float", types.Int(2), types.Float(0.5), types.Float(2.5)},
		{"mm plus mm", types.IntUnit(10, units.MM), types.IntUnit(5, units.MM), types.IntUnit(15, units.MM)},
		{"mm plus cm", types.FloatUnit(5, units.MM), types.IntUnit(1, units.CM), types.FloatUnit(15, units.MM)},
		{"in plus mm", types.IntUnit(1, units.IN), types.FloatUnit(0.6, units.MM), types.FloatUnit(26, units.MM)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.a.Add(test.b)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if got.Unit() != test.want.Unit() || math.Abs(got.Float()-test.want.Float()) > 1e-9 {
				t.Errorf("got %s, want %s", got, test.want)
			}
		})
	}
}

func TestAddMixedUnitsRejected(t *testing.T) {
	_, err := types.Int(5).Add(types.IntUnit(5, units.MM))
	expectKind(t, err, types.TypeError)

	_, err = types.IntUnit(5, units.MM).Sub(types.Int(5))
	expectKind(t, err, types.TypeError)
}

func TestSub(t *testing.T) {
	got, err := types.IntUnit(1, units.CM).Sub(types.IntUnit(2, units.MM))
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if got.Unit() != units.MM || got.Float() != 8 {
		t.Errorf("1cm - 2mm = %s, want 8mm", got)
	}
}

func TestMul(t *testing.T) {
	got, err := types.Int(3).Mul(types.IntUnit(4, units.MM))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if got.Unit() != units.MM || got.Float() != 12 {
		t.Errorf("3 * 4mm = %s, want 12mm", got)
	}

	got, err = types.Int(6).Mul(types.Int(7))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if i, ok := got.Int(); !ok || i != 42 {
		t.Errorf("6 * 7 = %s, want 42", got)
	}
}

func TestMulTwoUnitsRejected(t *testing.T) {
	_, err := types.IntUnit(2, units.MM).Mul(types.IntUnit(3, units.MM))
	expectKind(t, err, types.TypeError)
}

func TestDiv(t *testing.T) {
	got, err := types.IntUnit(10, units.MM).Div(types.Int(4))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got.Unit() != units.MM || got.Float() != 2.5 {
		t.Errorf("10mm / 4 = %s, want 2.5mm", got)
	}
}

func TestDivUnitDivisor(t *testing.T) {
	got, err := types.Int(10).Div(types.IntUnit(2, units.MM))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got.Unit() != units.MM || got.Float() != 5 {
		t.Errorf("10 / 2mm = %s, want 5mm", got)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := types.Int(1).Div(types.Int(0))
	expectKind(t, err, types.RuntimeError)
}

func TestDivTwoUnitsRejected(t *testing.T) {
	_, err := types.IntUnit(10, units.MM).Div(types.IntUnit(2, units.MM))
	expectKind(t, err, types.TypeError)
}

func TestPow(t *testing.T) {
	got, err := types.Int(2).Pow(types.Int(10))
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	if i, ok := got.Int(); !ok || i != 1024 {
		t.Errorf("2^10 = %s, want 1024", got)
	}

	got, err = types.Int(2).Pow(types.Float(0.5))
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	if math.Abs(got.Float()-math.Sqrt2) > 1e-12 {
		t.Errorf("2^0.5 = %s, want sqrt(2)", got)
	}
}

func TestPowUnitRejected(t *testing.T) {
	_, err := types.IntUnit(2, units.MM).Pow(types.Int(2))
	expectKind(t, err, types.TypeError)

	_, err = types.Int(2).Pow(types.IntUnit(2, units.MM))
	expectKind(t, err, types.TypeError)
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    types.Number
		want int64
	}{
		{types.Int(0), 1},
		{types.Int(1), 1},
		{types.Int(5), 120},
		{types.Float(4), 24}, // integral float converts
	}

	for _, test := range tests {
		got, err := test.n.Factorial()
		if err != nil {
			t.Fatalf("%s!: %v", test.n, err)
		}
		if i, ok := got.Int(); !ok || i != test.want {
			t.Errorf("%s! = %s, want %d", test.n, got, test.want)
		}
	}
}

func TestFactorialRejected(t *testing.T) {
	for _, n := range []types.Number{
		types.Int(-1),
		types.Float(2.5),
		types.IntUnit(3, units.MM),
	} {
		_, err := n.Factorial()
		expectKind(t, err, types.RuntimeError)
	}
}

func TestNeg(t *testing.T) {
	got := types.IntUnit(5, units.MM).Neg()
	if got.Unit() != units.MM || got.Float() != -5 {
		t.Errorf("-(5mm) = %s, want -5mm", got)
	}
}

func TestCanonical(t *testing.T) {
	mm, err := types.IntUnit(2, units.IN).Canonical()
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if mm != 50.8 {
		t.Errorf("2in = %vmm, want 50.8", mm)
	}

	_, err = types.Int(2).Canonical()
	expectKind(t, err, types.TypeError)
}

func TestScalar(t *testing.T) {
	v, err := types.Float(1.5).Scalar()
	if err != nil || v != 1.5 {
		t.Fatalf("Scalar() = (%v, %v), want (1.5, nil)", v, err)
	}

	_, err = types.IntUnit(1, units.MM).Scalar()
	expectKind(t, err, types.TypeError)
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		n    types.Number
		want string
	}{
		{types.Int(42), "42"},
		{types.Float(2.5), "2.5"},
		{types.IntUnit(10, units.MM), "10mm"},
		{types.FloatUnit(1.5, units.IN), "1.5in"},
	}

	for _, test := range tests {
		if got := test.n.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
