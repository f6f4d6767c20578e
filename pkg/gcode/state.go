package gcode

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/fpgaminer/gcad/pkg/types"
)

// Heights in canonical millimeters above the stock surface.
const (
	// safeHeight is the retract height for rapids between operations.
	safeHeight = 5.0
	// retractHeight is the clearance used to approach the stock and to
	// break chips between drilling pecks.
	retractHeight = 0.25
	// machineSafeZ is the machine-coordinate Z for the header safe move.
	machineSafeZ = -5.0
)

// State is the machining-state context: the mutable record of current
// feed/speed parameters, cutter diameter and tool position consulted by
// every machining operation. It owns the ordered instruction buffer
// that the emitter later serializes.
//
// All lengths are canonical millimeters. The state is mutated strictly
// sequentially in program order; it is not safe for concurrent use and
// does not need to be.
type State struct {
	// Cutting parameters, loaded from the active material profile.
	StepoverFrac float64 // max radial step as a fraction of cutter diameter
	DepthPerPass float64 // max stepdown (and peck depth) per pass, mm
	FeedRate     float64 // cutting feed, mm/min
	PlungeRate   float64 // plunge feed, mm/min

	// CutterDiameter is the diameter of the installed cutter, mm.
	CutterDiameter float64

	// Current tool position, updated by every emitted move.
	X, Y, Z float64

	transform *mat.Dense // 3x3 affine applied to XY coordinates
	program   []Segment
}

// NewState creates a machining state with an identity XY transform and
// no material loaded. Feed parameters stay zero until a material
// profile is selected.
func NewState() *State {
	return &State{
		transform: mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		}),
		Z: safeHeight,
	}
}

// Program returns the ordered instruction buffer.
func (s *State) Program() []Segment {
	return s.program
}

// Stepover returns the effective radial step in millimeters.
func (s *State) Stepover() float64 {
	return s.StepoverFrac * s.CutterDiameter
}

// SetScale replaces the XY transform with a non-uniform scaling.
func (s *State) SetScale(x, y float64) {
	s.transform = mat.NewDense(3, 3, []float64{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	})
}

// apply maps an XY point through the current transform.
func (s *State) apply(x, y float64) (float64, float64) {
	var out mat.VecDense
	out.MulVec(s.transform, mat.NewVecDense(3, []float64{x, y, 1}))
	return out.AtVec(0), out.AtVec(1)
}

// WriteHeader emits the program preamble: absolute distance mode,
// metric units, a machine-coordinate move to safe Z, spindle stopped.
func (s *State) WriteHeader() {
	s.program = append(s.program, AbsoluteMode{})
	s.program = append(s.program, MetricUnits{})
	s.program = append(s.program, Comment{Text: "Move to safe Z"})
	s.program = append(s.program, MachineCoords{Move: RapidMove{Z: At(machineSafeZ)}})
	s.program = append(s.program, SpindleOff{})
}

// EndProgram emits the program end word.
func (s *State) EndProgram() {
	s.program = append(s.program, ProgramEnd{})
}

// SetRPM turns the spindle on clockwise at the given speed.
func (s *State) SetRPM(rpm float64) {
	s.program = append(s.program, SpindleOn{RPM: rpm})
}

// WriteComment appends a comment-only segment.
func (s *State) WriteComment(text string) {
	s.program = append(s.program, Comment{Text: text})
}

// CuttingMove emits a G1 move to (x, y) at the cutting feed.
func (s *State) CuttingMove(x, y float64) {
	tx, ty := s.apply(x, y)
	s.program = append(s.program, LinearMove{X: At(tx), Y: At(ty), Feed: s.FeedRate})
	s.X, s.Y = tx, ty
}

// Plunge emits a G1 move straight down (or up) to z at the plunge feed.
func (s *State) Plunge(z float64) {
	s.program = append(s.program, LinearMove{Z: At(z), Feed: s.PlungeRate})
	s.Z = z
}

// RapidMove emits a G0 move to (x, y) and optionally z.
func (s *State) RapidMove(x, y float64, z Coord) {
	tx, ty := s.apply(x, y)
	s.program = append(s.program, RapidMove{X: At(tx), Y: At(ty), Z: z})
	s.X, s.Y = tx, ty
	if z.Valid {
		s.Z = z.Value
	}
}

// RapidZ emits a G0 move on the Z axis only.
func (s *State) RapidZ(z float64) {
	s.program = append(s.program, RapidMove{Z: At(z)})
	s.Z = z
}

// ArcCut emits a G3 counter-clockwise arc to (x, y) around (cx, cy) at
// the cutting feed.
func (s *State) ArcCut(x, y, cx, cy float64) {
	tx, ty := s.apply(x, y)
	tcx, tcy := s.apply(cx, cy)
	s.program = append(s.program, ArcCCW{X: tx, Y: ty, CX: tcx, CY: tcy, Feed: s.FeedRate})
	s.X, s.Y = tx, ty
}

// checkProfile guards operations that need an active material profile.
func (s *State) checkProfile() error {
	if s.DepthPerPass <= 0 || s.FeedRate <= 0 || s.PlungeRate <= 0 {
		return types.NewError(types.ConfigError, "no material selected; call material(...) before cutting")
	}
	return nil
}

// depthPasses splits a total depth into the number of uniform passes
// needed so that no single pass exceeds the material's max stepdown.
func (s *State) depthPasses(depth float64) int {
	n := int(math.Ceil(depth / s.DepthPerPass))
	if n < 1 {
		n = 1
	}
	return n
}

// Drill generates a peck-drilling cycle at (x, y) down to depth.
// Each peck is bounded by the material's max stepdown; target depths
// increase monotonically, with a partial retract between pecks to break
// chips and a full retract to safe height at the end.
func (s *State) Drill(x, y, depth float64) error {
	if err := s.checkProfile(); err != nil {
		return err
	}

	nPecks := s.depthPasses(depth)

	s.RapidMove(x, y, At(safeHeight))
	s.RapidZ(retractHeight)

	for i := 1; i <= nPecks; i++ {
		s.Plunge(-depth * float64(i) / float64(nPecks))
		if i < nPecks {
			s.RapidZ(retractHeight)
		}
	}

	s.RapidZ(safeHeight)
	return nil
}

// ContourLine cuts a straight line from (x1, y1) to (x2, y2) down to
// depth, staged over as many passes as the material's max stepdown
// requires.
func (s *State) ContourLine(x1, y1, x2, y2, depth float64) error {
	if err := s.checkProfile(); err != nil {
		return err
	}

	nPasses := s.depthPasses(depth)

	for layer := 1; layer <= nPasses; layer++ {
		z := -depth * float64(layer) / float64(nPasses)
		s.RapidMove(x1, y1, At(safeHeight))
		s.RapidZ(retractHeight)
		s.Plunge(z)
		s.CuttingMove(x2, y2)
		s.RapidZ(safeHeight)
	}

	return nil
}

// CirclePocket clears a circular pocket centered at (cx, cy) with the
// given diameter, down to depth. Each depth pass clears the pocket with
// concentric counter-clockwise rings whose radial spacing never exceeds
// the material step-over; each pass deepens by at most the material's
// max stepdown. The cycle starts with a rapid at safe height above the
// center and ends retracted to safe height.
func (s *State) CirclePocket(cx, cy, diameter, depth float64) error {
	if err := s.checkProfile(); err != nil {
		return err
	}
	if s.CutterDiameter <= 0 {
		return types.NewError(types.ConfigError, "no cutter diameter set; call cutter_diameter(...) before pocketing")
	}
	if diameter <= s.CutterDiameter {
		return types.NewError(types.RuntimeError, "pocket diameter %.3fmm must be greater than the cutter diameter %.3fmm", diameter, s.CutterDiameter)
	}

	// Tool-center radius of the finished wall, and ring spacing bounded
	// by the material step-over.
	rMax := (diameter - s.CutterDiameter) / 2
	nRings := int(math.Ceil(rMax / s.Stepover()))
	if nRings < 1 {
		nRings = 1
	}
	nPasses := s.depthPasses(depth)

	s.RapidMove(cx, cy, At(safeHeight))
	s.RapidZ(retractHeight)

	for i := 1; i <= nPasses; i++ {
		s.Plunge(-depth * float64(i) / float64(nPasses))

		for j := 1; j <= nRings; j++ {
			r := rMax * float64(j) / float64(nRings)
			s.CuttingMove(cx+r, cy)
			s.ArcCut(cx-r, cy, cx, cy)
			s.ArcCut(cx+r, cy, cx, cy)
		}

		if i < nPasses {
			s.CuttingMove(cx, cy)
		}
	}

	s.RapidZ(safeHeight)
	return nil
}

// GroovePocket clears a rectangular pocket with (x, y) as the lower
// left corner. The pocket is cleared inside-out with rectangular loops
// offset by the material step-over, one set per depth pass. Narrow
// rectangles are the intended use, hence the name.
func (s *State) GroovePocket(x, y, width, height, depth float64) error {
	if err := s.checkProfile(); err != nil {
		return err
	}
	if s.CutterDiameter <= 0 {
		return types.NewError(types.ConfigError, "no cutter diameter set; call cutter_diameter(...) before pocketing")
	}
	if width <= s.CutterDiameter || height <= s.CutterDiameter {
		return types.NewError(types.RuntimeError, "pocket %.3fmm x %.3fmm must be larger than the cutter diameter %.3fmm", width, height, s.CutterDiameter)
	}

	// Build the clearing pattern outside-in, then reverse it so cutting
	// proceeds from the center outward to the finished wall.
	stepover := s.Stepover()
	var pattern [][2]float64

	cx := x + s.CutterDiameter/2
	cy := y + s.CutterDiameter/2
	cWidth := width - s.CutterDiameter
	cHeight := height - s.CutterDiameter
	nPasses := s.depthPasses(depth)
	nLoops := 1 + int(math.Ceil((math.Min(width, height)/2-s.CutterDiameter)/stepover))
	if nLoops < 1 {
		nLoops = 1
	}

	for l := 0; l < nLoops; l++ {
		pattern = append(pattern, [2]float64{cx, cy})
		cx += cWidth
		pattern = append(pattern, [2]float64{cx, cy})
		cy += cHeight
		pattern = append(pattern, [2]float64{cx, cy})
		cx -= cWidth
		pattern = append(pattern, [2]float64{cx, cy})
		cy -= cHeight
		pattern = append(pattern, [2]float64{cx, cy})
		cx += stepover
		cy += stepover
		cWidth -= 2 * stepover
		cHeight -= 2 * stepover
	}

	for i, j := 0, len(pattern)-1; i < j; i, j = i+1, j-1 {
		pattern[i], pattern[j] = pattern[j], pattern[i]
	}

	for layer := 1; layer <= nPasses; layer++ {
		z := -depth * float64(layer) / float64(nPasses)
		start := pattern[0]

		s.RapidMove(start[0], start[1], Coord{})
		if layer == 1 {
			s.RapidZ(retractHeight)
		}
		s.Plunge(z)

		for _, p := range pattern[1:] {
			s.CuttingMove(p[0], p[1])
		}

		if layer == nPasses {
			s.RapidZ(safeHeight)
		} else {
			s.RapidZ(z + retractHeight)
		}
	}

	return nil
}
