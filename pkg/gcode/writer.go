package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fpgaminer/gcad/pkg/types"
)

// Word is a single G-code word: an address letter and its value.
// G and M words carry integer codes; the rest carry coordinates,
// feeds or spindle speeds.
type Word struct {
	Letter byte
	Value  float64
}

// String formats the word for output. Coordinates and rates use the
// canonical 3-decimal formatting; G uses a bare integer and M a
// zero-padded two-digit code.
func (w Word) String() string {
	switch w.Letter {
	case 'G':
		return fmt.Sprintf("G%d", int(w.Value))
	case 'M':
		return fmt.Sprintf("M%02d", int(w.Value))
	default:
		return fmt.Sprintf("%c%s", w.Letter, formatNumber(w.Value))
	}
}

// formatNumber renders a coordinate at fixed 3-decimal precision with
// trailing zeros (and a trailing point) trimmed.
func formatNumber(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}

// Emit walks the ordered instruction buffer exactly once and writes the
// textual G-code program. Emission preserves program order and performs
// no reordering; it only drops words that repeat the current modal
// state (the active G/M command and the last value written per axis,
// feed and spindle address). A G53 machine-coordinate line always
// emits its coordinates and invalidates the tracked positions, since
// the work-coordinate values are unknown afterwards.
func Emit(w io.Writer, program []Segment) error {
	bw := bufio.NewWriter(w)

	var lastCommand *Word
	state := map[byte]float64{}

	for _, seg := range program {
		if c, ok := seg.(Comment); ok {
			if _, err := fmt.Fprintf(bw, "(%s)\n", c.Text); err != nil {
				return err
			}
			continue
		}

		words, err := segmentWords(seg, state)
		if err != nil {
			return err
		}

		var pieces []Word
		g53 := false

		for _, word := range words {
			switch word.Letter {
			case 'G':
				if int(word.Value) == 53 {
					g53 = true
					lastCommand = nil
				}
				if lastCommand == nil || *lastCommand != word {
					pieces = append(pieces, word)
				}
			case 'M':
				if lastCommand == nil || *lastCommand != word {
					pieces = append(pieces, word)
				}
			case 'I', 'J':
				// Arc center offsets are not modal; always emit them.
				pieces = append(pieces, word)
			default:
				if g53 {
					pieces = append(pieces, word)
				} else if v, ok := state[word.Letter]; !ok || v != word.Value {
					pieces = append(pieces, word)
				}
			}
		}

		// Skip lines that do nothing once redundant words are dropped.
		if len(pieces) == 0 || lineIsEmpty(seg, pieces) {
			continue
		}

		parts := make([]string, len(pieces))
		for i, word := range pieces {
			parts[i] = word.String()
		}
		if _, err := fmt.Fprintln(bw, strings.Join(parts, " ")); err != nil {
			return err
		}

		// Update the modal state from the words as written.
		for _, word := range pieces {
			word := word
			switch word.Letter {
			case 'G', 'M':
				if !g53 {
					lastCommand = &word
				}
			default:
				if !g53 {
					state[word.Letter] = word.Value
				} else {
					// The machine coordinate system is unknown, so any
					// axis touched under G53 loses its tracked value.
					delete(state, word.Letter)
				}
			}
		}
	}

	return bw.Flush()
}

// segmentWords converts a segment to its G-code words. The modal state
// supplies the current XY position needed to compute arc center offsets.
func segmentWords(seg Segment, state map[byte]float64) ([]Word, error) {
	switch s := seg.(type) {
	case RapidMove:
		words := []Word{{'G', 0}}
		words = appendCoord(words, 'X', s.X)
		words = appendCoord(words, 'Y', s.Y)
		words = appendCoord(words, 'Z', s.Z)
		return words, nil
	case LinearMove:
		words := []Word{{'G', 1}}
		words = appendCoord(words, 'X', s.X)
		words = appendCoord(words, 'Y', s.Y)
		words = appendCoord(words, 'Z', s.Z)
		words = append(words, Word{'F', s.Feed})
		return words, nil
	case ArcCCW:
		curX, okX := state['X']
		curY, okY := state['Y']
		if !okX || !okY {
			return nil, types.NewError(types.RuntimeError, "cannot generate a G3 arc without a known current position")
		}
		return []Word{
			{'G', 3},
			{'X', s.X},
			{'Y', s.Y},
			{'I', s.CX - curX},
			{'J', s.CY - curY},
			{'F', s.Feed},
		}, nil
	case MetricUnits:
		return []Word{{'G', 21}}, nil
	case AbsoluteMode:
		return []Word{{'G', 90}}, nil
	case MachineCoords:
		inner, err := segmentWords(s.Move, state)
		if err != nil {
			return nil, err
		}
		return append([]Word{{'G', 53}}, inner...), nil
	case SpindleOn:
		return []Word{{'M', 3}, {'S', s.RPM}}, nil
	case SpindleOff:
		return []Word{{'M', 5}}, nil
	case ProgramEnd:
		return []Word{{'M', 2}}, nil
	default:
		return nil, types.NewError(types.RuntimeError, "unknown toolpath segment %T", seg)
	}
}

func appendCoord(words []Word, letter byte, c Coord) []Word {
	if c.Valid {
		words = append(words, Word{letter, c.Value})
	}
	return words
}

// lineIsEmpty reports whether the de-duplicated words amount to a
// motion or spindle command with nothing left to do.
func lineIsEmpty(seg Segment, pieces []Word) bool {
	hasAxis := false
	hasSpeed := false
	for _, w := range pieces {
		switch w.Letter {
		case 'X', 'Y', 'Z':
			hasAxis = true
		case 'S':
			hasSpeed = true
		}
	}

	switch seg.(type) {
	case RapidMove, LinearMove, ArcCCW:
		return !hasAxis
	case SpindleOn:
		return !hasSpeed
	default:
		return false
	}
}
