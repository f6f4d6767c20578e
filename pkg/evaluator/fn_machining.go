package evaluator

import (
	"github.com/fpgaminer/gcad/pkg/types"
)

// fnMaterial selects a feed/speed profile by name, applying its cut
// parameters to the machining state and switching the spindle to its
// speed.
func fnMaterial(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}

	profile, ok := e.materials[name]
	if !ok {
		if hint := closestMatch(name, e.materialNames()); hint != "" {
			return nil, types.NewError(types.ConfigError, "unknown material %q (did you mean %q?)", name, hint)
		}
		return nil, types.NewError(types.ConfigError, "unknown material %q", name)
	}

	e.state.StepoverFrac = profile.StepoverFrac
	e.state.DepthPerPass = profile.DepthPerPass
	e.state.FeedRate = profile.FeedRate
	e.state.PlungeRate = profile.PlungeRate
	e.state.SetRPM(profile.RPM)

	e.logger.Debug("material selected", "name", name, "feed", profile.FeedRate, "rpm", profile.RPM)
	return types.NullValue, nil
}

// fnDefineMaterial registers a feed/speed profile in the material
// library. Redefining a name replaces the previous profile.
func fnDefineMaterial(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	stepover, err := scalarArg(args, "stepover")
	if err != nil {
		return nil, err
	}
	depthPerPass, err := lengthArg(args, "depth_per_pass")
	if err != nil {
		return nil, err
	}
	feedRate, err := rateArg(args, "feed_rate")
	if err != nil {
		return nil, err
	}
	plungeRate, err := rateArg(args, "plunge_rate")
	if err != nil {
		return nil, err
	}
	rpm, err := scalarArg(args, "rpm")
	if err != nil {
		return nil, err
	}

	if stepover <= 0 || stepover > 1 {
		return nil, types.NewError(types.ConfigError, "material %q: stepover must be in (0, 1], got %v", name, stepover)
	}
	if depthPerPass <= 0 || feedRate <= 0 || plungeRate <= 0 || rpm <= 0 {
		return nil, types.NewError(types.ConfigError, "material %q: depth_per_pass, feed_rate, plunge_rate and rpm must be positive", name)
	}

	e.materials[name] = Material{
		StepoverFrac: stepover,
		DepthPerPass: depthPerPass,
		FeedRate:     feedRate,
		PlungeRate:   plungeRate,
		RPM:          rpm,
	}
	return types.NullValue, nil
}

// fnCutterDiameter sets the active cutter diameter.
func fnCutterDiameter(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	d, err := lengthArg(args, "diameter")
	if err != nil {
		return nil, err
	}
	if d <= 0 {
		return nil, types.NewError(types.ConfigError, "cutter diameter must be positive, got %vmm", d)
	}
	e.state.CutterDiameter = d
	return types.NullValue, nil
}

// fnRPM overrides the spindle speed without changing cut parameters.
func fnRPM(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	rpm, err := scalarArg(args, "rpm")
	if err != nil {
		return nil, err
	}
	if rpm <= 0 {
		return nil, types.NewError(types.ConfigError, "spindle speed must be positive, got %v", rpm)
	}
	e.state.SetRPM(rpm)
	return types.NullValue, nil
}

// fnScale sets the XY scale factors applied to all subsequent
// operations. A single argument scales both axes uniformly.
func fnScale(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	sx, err := scalarArg(args, "x")
	if err != nil {
		return nil, err
	}
	sy := sx
	if _, ok := args["y"]; ok {
		sy, err = scalarArg(args, "y")
		if err != nil {
			return nil, err
		}
	}
	if sx == 0 || sy == 0 {
		return nil, types.NewError(types.ConfigError, "scale factors must be nonzero")
	}
	e.state.SetScale(sx, sy)
	return types.NullValue, nil
}

// fnDrill peck-drills a hole at (x, y) to the given depth below the
// stock surface.
func fnDrill(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	x, err := lengthArg(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := lengthArg(args, "y")
	if err != nil {
		return nil, err
	}
	depth, err := lengthArg(args, "depth")
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		return nil, types.NewError(types.RuntimeError, "drill depth must be positive, got %vmm", depth)
	}
	return types.NullValue, e.state.Drill(x, y, depth)
}

// fnCirclePocket mills a circular pocket centered at (x, y). The size
// is given as either diameter or radius, exactly one of the two.
func fnCirclePocket(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	x, err := lengthArg(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := lengthArg(args, "y")
	if err != nil {
		return nil, err
	}
	depth, err := lengthArg(args, "depth")
	if err != nil {
		return nil, err
	}

	_, hasDiameter := args["diameter"]
	_, hasRadius := args["radius"]
	if hasDiameter == hasRadius {
		return nil, types.NewError(types.BindingError, "circle_pocket() requires exactly one of diameter or radius")
	}

	var diameter float64
	if hasDiameter {
		diameter, err = lengthArg(args, "diameter")
	} else {
		diameter, err = lengthArg(args, "radius")
		diameter *= 2
	}
	if err != nil {
		return nil, err
	}

	if depth <= 0 {
		return nil, types.NewError(types.RuntimeError, "pocket depth must be positive, got %vmm", depth)
	}
	return types.NullValue, e.state.CirclePocket(x, y, diameter, depth)
}

// fnGroove mills a straight slot one cutter wide from (x1, y1) to
// (x2, y2), or to (x1, y1+up) when the up shorthand is used.
// Registered as both groove and contour_line.
func fnGroove(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	x1, err := lengthArg(args, "x1")
	if err != nil {
		return nil, err
	}
	y1, err := lengthArg(args, "y1")
	if err != nil {
		return nil, err
	}
	_, hasX2 := args["x2"]
	_, hasY2 := args["y2"]
	_, hasUp := args["up"]
	if (hasX2 || hasY2) == hasUp {
		return nil, types.NewError(types.BindingError, "groove() requires either x2 and y2 or up")
	}
	var x2, y2 float64
	if hasUp {
		up, err := lengthArg(args, "up")
		if err != nil {
			return nil, err
		}
		x2, y2 = x1, y1+up
	} else {
		if !hasX2 || !hasY2 {
			return nil, types.NewError(types.BindingError, "groove() requires both x2 and y2")
		}
		if x2, err = lengthArg(args, "x2"); err != nil {
			return nil, err
		}
		if y2, err = lengthArg(args, "y2"); err != nil {
			return nil, err
		}
	}
	depth, err := lengthArg(args, "depth")
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		return nil, types.NewError(types.RuntimeError, "groove depth must be positive, got %vmm", depth)
	}
	return types.NullValue, e.state.ContourLine(x1, y1, x2, y2, depth)
}

// fnGroovePocket mills a rectangular pocket with corner (x, y) and the
// given width and height.
func fnGroovePocket(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	x, err := lengthArg(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := lengthArg(args, "y")
	if err != nil {
		return nil, err
	}
	width, err := lengthArg(args, "width")
	if err != nil {
		return nil, err
	}
	height, err := lengthArg(args, "height")
	if err != nil {
		return nil, err
	}
	depth, err := lengthArg(args, "depth")
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		return nil, types.NewError(types.RuntimeError, "pocket depth must be positive, got %vmm", depth)
	}
	return types.NullValue, e.state.GroovePocket(x, y, width, height, depth)
}

// materialNames lists the registered material names, for suggestions.
func (e *Evaluator) materialNames() []string {
	names := make([]string, 0, len(e.materials))
	for name := range e.materials {
		names = append(names, name)
	}
	return names
}
