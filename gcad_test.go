package gcad_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/fpgaminer/gcad"
	"github.com/fpgaminer/gcad/pkg/types"
)

func generate(t *testing.T, source string) string {
	t.Helper()
	var b strings.Builder
	if err := gcad.Generate(source, &b); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return b.String()
}

func generateExpectError(t *testing.T, source string, kind types.ErrorKind) {
	t.Helper()
	var b strings.Builder
	err := gcad.Generate(source, &b)
	if err == nil {
		t.Fatalf("Generate(%q): expected %v", source, kind)
	}
	if got := types.AsError(err).Kind; got != kind {
		t.Fatalf("Generate(%q): kind = %v, want %v", source, got, kind)
	}
	if b.Len() != 0 {
		t.Errorf("no partial output should be written on error, got %d bytes", b.Len())
	}
}

func TestGenerateCirclePocket(t *testing.T) {
	out := generate(t, "circle_pocket(10mm, 10mm, radius=5mm, depth=3mm);")
	lines := strings.Split(strings.TrimSpace(out), "\n")

	// Preamble: absolute mode, metric units, machine-coordinate safe Z.
	if lines[0] != "G90" || lines[1] != "G21" {
		t.Errorf("preamble = %v, want G90 then G21", lines[:2])
	}
	if !strings.Contains(out, "G53 G0 Z-5") {
		t.Error("missing machine-coordinate safe Z move")
	}

	// The default material turns the spindle on before any cutting.
	m3 := strings.Index(out, "M03")
	g1 := strings.Index(out, "G1")
	if m3 < 0 || g1 < 0 || m3 > g1 {
		t.Error("spindle must start before the first cutting move")
	}

	// First motion after the header is a rapid at safe height above the
	// pocket center.
	if !strings.Contains(out, "G0 X10 Y10 Z5") {
		t.Error("missing positioning rapid above the pocket center")
	}

	// Cutting reaches a cumulative depth of exactly 3mm.
	if !strings.Contains(out, "Z-3") {
		t.Error("cut never reaches the full 3mm depth")
	}

	// Arcs do the clearing, and the program terminates.
	if !strings.Contains(out, "G3 ") {
		t.Error("no clearing arcs emitted")
	}
	if lines[len(lines)-1] != "M02" {
		t.Errorf("last line = %q, want M02", lines[len(lines)-1])
	}
}

func TestGenerateDrillPattern(t *testing.T) {
	out := generate(t, "for y in linspace(0mm, 10mm, 3) { drill(0mm, y, 5mm); }")

	for _, want := range []string{"Y0 ", "Y5 ", "Y10 "} {
		if !strings.Contains(out+" ", want) && !strings.Contains(out, strings.TrimSpace(want)+"\n") {
			t.Errorf("output missing drill position %q", strings.TrimSpace(want))
		}
	}

	// Peck targets bottom out at exactly -5.
	deepest := 0.0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "G53") {
			// Machine-coordinate moves are not cutting depths.
			continue
		}
		for _, word := range strings.Fields(line) {
			if !strings.HasPrefix(word, "Z") {
				continue
			}
			if z, err := strconv.ParseFloat(word[1:], 64); err == nil && z < deepest {
				deepest = z
			}
		}
	}
	if math.Abs(deepest-(-5)) > 1e-9 {
		t.Errorf("deepest peck = %v, want -5", deepest)
	}
}

func TestGenerateSyntaxErrorNoOutput(t *testing.T) {
	generateExpectError(t, "circle_pocket(10mm, 10mm;", types.SyntaxError)
}

func TestGenerateUnknownMaterial(t *testing.T) {
	generateExpectError(t, "material('UNOBTAINIUM'); drill(0mm, 0mm, 5mm);", types.ConfigError)
}

func TestBuiltinMaterialsAvailable(t *testing.T) {
	// Every profile in the embedded library is selectable, and the
	// default profile lets scripts cut without any setup.
	for _, name := range []string{"mdf", "hardwood", "softwood", "acrylic", "aluminum"} {
		src := "material('" + name + "'); drill(0mm, 0mm, 1mm);"
		out := generate(t, src)
		if !strings.Contains(out, "M03") {
			t.Errorf("material %q: spindle never started", name)
		}
	}
}

func TestCompileDoesNotExecute(t *testing.T) {
	prog, err := gcad.Compile("drill(0mm, 0mm, 5mm);")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.AST() == nil || len(prog.AST().Statements) != 1 {
		t.Error("Compile should return the parsed program")
	}
}

func TestVersion(t *testing.T) {
	if gcad.Version() == "" {
		t.Error("Version() should not be empty")
	}
}
