package evaluator

import (
	"sort"
	"sync"

	"github.com/fpgaminer/gcad/pkg/types"
)

// FunctionDef defines a built-in function and its parameter schema.
type FunctionDef struct {
	Name   string
	Params []Param
	Impl   FunctionImpl
}

// Param describes a single declared parameter. Positional arguments
// fill parameters in declaration order; named arguments address them
// by name.
type Param struct {
	Name     string
	Optional bool
}

// FunctionImpl is the implementation of a built-in function. The args
// map holds exactly the parameters that were bound; optional
// parameters with no argument are absent from the map.
type FunctionImpl func(e *Evaluator, args map[string]types.Value) (types.Value, error)

// evaluatedArg is a call argument after evaluation, still carrying the
// name it was written with (empty for positional).
type evaluatedArg struct {
	name  string
	value types.Value
}

var (
	builtinFunctions     map[string]*FunctionDef
	builtinFunctionsOnce sync.Once
)

// grooveParams is shared by groove and its contour_line alias. The end
// point is given either as x2,y2 or as up, a vertical offset from y1.
var grooveParams = []Param{
	{Name: "x1"}, {Name: "y1"},
	{Name: "x2", Optional: true}, {Name: "y2", Optional: true},
	{Name: "depth"},
	{Name: "up", Optional: true},
}

// initBuiltinFunctions initializes the built-in function registry.
func initBuiltinFunctions() {
	builtinFunctionsOnce.Do(func() {
		builtinFunctions = map[string]*FunctionDef{
			// Machine setup
			"material":        {Name: "material", Params: []Param{{Name: "name"}}, Impl: fnMaterial},
			"define_material": {Name: "define_material", Params: []Param{{Name: "name"}, {Name: "stepover"}, {Name: "depth_per_pass"}, {Name: "feed_rate"}, {Name: "plunge_rate"}, {Name: "rpm"}}, Impl: fnDefineMaterial},
			"cutter_diameter": {Name: "cutter_diameter", Params: []Param{{Name: "diameter"}}, Impl: fnCutterDiameter},
			"rpm":             {Name: "rpm", Params: []Param{{Name: "rpm"}}, Impl: fnRPM},
			"scale":           {Name: "scale", Params: []Param{{Name: "x"}, {Name: "y", Optional: true}}, Impl: fnScale},

			// Machining operations
			"drill":         {Name: "drill", Params: []Param{{Name: "x"}, {Name: "y"}, {Name: "depth"}}, Impl: fnDrill},
			"circle_pocket": {Name: "circle_pocket", Params: []Param{{Name: "x"}, {Name: "y"}, {Name: "radius", Optional: true}, {Name: "depth"}, {Name: "diameter", Optional: true}}, Impl: fnCirclePocket},
			"groove":        {Name: "groove", Params: grooveParams, Impl: fnGroove},
			"contour_line":  {Name: "contour_line", Params: grooveParams, Impl: fnGroove},
			"groove_pocket": {Name: "groove_pocket", Params: []Param{{Name: "x"}, {Name: "y"}, {Name: "width"}, {Name: "height"}, {Name: "depth"}}, Impl: fnGroovePocket},

			// Miscellaneous
			"comment":  {Name: "comment", Params: []Param{{Name: "text"}}, Impl: fnComment},
			"linspace": {Name: "linspace", Params: []Param{{Name: "start"}, {Name: "stop"}, {Name: "count"}}, Impl: fnLinspace},
		}
	})
}

// lookupBuiltin resolves a function name in the registry.
func lookupBuiltin(name string) (*FunctionDef, bool) {
	initBuiltinFunctions()
	def, ok := builtinFunctions[name]
	return def, ok
}

// builtinNames returns all registry names sorted, for suggestions.
func builtinNames() []string {
	initBuiltinFunctions()
	names := make([]string, 0, len(builtinFunctions))
	for name := range builtinFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bindParams matches evaluated call arguments against a function's
// parameter schema. Positional arguments fill parameters left to right
// in declaration order; named arguments then address parameters by
// name. A parameter bound twice, a name not in the schema, more
// positional arguments than parameters, or a missing required
// parameter are all binding errors.
func bindParams(def *FunctionDef, args []evaluatedArg) (map[string]types.Value, error) {
	bound := make(map[string]types.Value, len(def.Params))

	pos := 0
	for _, arg := range args {
		if arg.name == "" {
			if pos >= len(def.Params) {
				return nil, types.NewError(types.BindingError, "%s() takes at most %d parameters, got extra positional argument", def.Name, len(def.Params))
			}
			param := def.Params[pos]
			if _, dup := bound[param.Name]; dup {
				return nil, types.NewError(types.BindingError, "%s(): parameter %q bound more than once", def.Name, param.Name)
			}
			bound[param.Name] = arg.value
			pos++
			continue
		}

		if !hasParam(def, arg.name) {
			return nil, types.NewError(types.BindingError, "%s() has no parameter %q", def.Name, arg.name)
		}
		if _, dup := bound[arg.name]; dup {
			return nil, types.NewError(types.BindingError, "%s(): parameter %q bound more than once", def.Name, arg.name)
		}
		bound[arg.name] = arg.value
	}

	for _, param := range def.Params {
		if param.Optional {
			continue
		}
		if _, ok := bound[param.Name]; !ok {
			return nil, types.NewError(types.BindingError, "%s(): missing required parameter %q", def.Name, param.Name)
		}
	}

	return bound, nil
}

func hasParam(def *FunctionDef, name string) bool {
	for _, p := range def.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}
