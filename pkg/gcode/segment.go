// Package gcode implements the machining-state context, the toolpath
// generators for the built-in machining operations, and the emitter
// that serializes the ordered toolpath buffer into a G-code program.
//
// The canonical output dialect is plain RS-274: G0/G1/G3 motion, G21
// metric units, G90 absolute distance, G53 machine-coordinate moves,
// M3/M5 spindle control and M2 program end. Coordinates are emitted in
// millimeters at three decimal places with trailing zeros trimmed.
package gcode

// Coord is an optional axis coordinate in a motion segment.
type Coord struct {
	Value float64
	Valid bool
}

// At returns a set Coord.
func At(v float64) Coord {
	return Coord{Value: v, Valid: true}
}

// Segment is one atomic motion or state directive in the ordered
// instruction buffer. Segments are appended in program-execution order
// and never reordered or deduplicated; redundancy is only trimmed
// word-by-word at emission time.
type Segment interface {
	segment()
}

// Comment is a comment-only segment; it does not move the tool.
type Comment struct {
	Text string
}

// RapidMove is a G0 positioning move. Unset axes are left untouched.
type RapidMove struct {
	X, Y, Z Coord
}

// LinearMove is a G1 cutting move at the given feed rate (mm/min).
type LinearMove struct {
	X, Y, Z Coord
	Feed    float64
}

// ArcCCW is a G3 counter-clockwise arc to (X, Y) around center (CX, CY).
type ArcCCW struct {
	X, Y   float64
	CX, CY float64
	Feed   float64
}

// MetricUnits selects millimeter units (G21).
type MetricUnits struct{}

// AbsoluteMode selects absolute distance mode (G90).
type AbsoluteMode struct{}

// MachineCoords wraps a single move to run in machine coordinates (G53).
type MachineCoords struct {
	Move Segment
}

// SpindleOn starts the spindle clockwise at the given speed (M3 S...).
type SpindleOn struct {
	RPM float64
}

// SpindleOff stops the spindle (M5).
type SpindleOff struct{}

// ProgramEnd terminates the program (M2).
type ProgramEnd struct{}

func (Comment) segment()       {}
func (RapidMove) segment()     {}
func (LinearMove) segment()    {}
func (ArcCCW) segment()        {}
func (MetricUnits) segment()   {}
func (AbsoluteMode) segment()  {}
func (MachineCoords) segment() {}
func (SpindleOn) segment()     {}
func (SpindleOff) segment()    {}
func (ProgramEnd) segment()    {}
