// Package gcad compiles CAD scripts into G-code for CNC machining.
//
// A gcad script describes parts procedurally: it selects a material
// and cutter, then calls machining operations such as circle_pocket,
// drill and groove with unit-aware coordinates. The compiler turns the
// script into a metric, absolute-coordinate G-code program with
// material-appropriate feeds, speeds and depth staging.
//
// # Quick Start
//
//	// Compile a script to G-code in one call
//	var out bytes.Buffer
//	err := gcad.Generate(script, &out)
//
//	// Or compile once and inspect the parse tree first
//	prog, err := gcad.Compile(script)
//
// Every script runs on top of the built-in material library (see
// materials.gcad), so `material('hardwood');` works out of the box and
// define_material() can extend or override the profiles.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/fpgaminer/gcad/pkg/parser
//   - Evaluator: github.com/fpgaminer/gcad/pkg/evaluator
//   - G-code emission: github.com/fpgaminer/gcad/pkg/gcode
//   - Values and units: github.com/fpgaminer/gcad/pkg/types
package gcad

import (
	_ "embed"
	"io"

	"github.com/fpgaminer/gcad/pkg/cache"
	"github.com/fpgaminer/gcad/pkg/evaluator"
	"github.com/fpgaminer/gcad/pkg/parser"
	"github.com/fpgaminer/gcad/pkg/types"
)

// BuiltinMaterials is the material library prelude executed before
// every user script.
//
//go:embed materials.gcad
var BuiltinMaterials string

// Version returns the current gcad version.
func Version() string {
	return "v0.1.0-dev"
}

// programCache keeps recently compiled scripts so repeated Generate
// calls, including the prelude run before every script, skip parsing.
var programCache = cache.New(64)

// Compile parses a gcad script into a program without executing it.
func Compile(source string) (*types.Program, error) {
	return parser.Compile(source)
}

// Generate compiles and executes a gcad script, writing the resulting
// G-code program to w. Nothing is written unless the whole script
// succeeds.
func Generate(source string, w io.Writer, opts ...evaluator.Option) error {
	prelude, err := programCache.GetOrCompile(BuiltinMaterials, func() (*types.Program, error) {
		return parser.Compile(BuiltinMaterials)
	})
	if err != nil {
		return err
	}
	prog, err := programCache.GetOrCompile(source, func() (*types.Program, error) {
		return parser.Compile(source)
	})
	if err != nil {
		return err
	}

	ev := evaluator.New(opts...)
	ev.State().WriteHeader()
	if err := ev.Run(prelude); err != nil {
		return err
	}
	if err := ev.Run(prog); err != nil {
		return err
	}
	return ev.Finish(w)
}
