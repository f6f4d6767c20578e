package evaluator

import (
	"github.com/fpgaminer/gcad/pkg/types"
)

// numberArg fetches a bound Number parameter.
func numberArg(args map[string]types.Value, name string) (types.Number, error) {
	n, err := types.AsNumber(args[name])
	if err != nil {
		return types.Number{}, types.NewError(types.TypeError, "parameter %q: %s", name, types.AsError(err).Message)
	}
	return n, nil
}

// lengthArg fetches a Number parameter that must carry a length unit
// and returns it in millimeters.
func lengthArg(args map[string]types.Value, name string) (float64, error) {
	n, err := numberArg(args, name)
	if err != nil {
		return 0, err
	}
	mm, err := n.Canonical()
	if err != nil {
		return 0, types.NewError(types.TypeError, "parameter %q must carry a length unit, got %s", name, n)
	}
	return mm, nil
}

// rateArg fetches a feed-rate parameter in mm/min. A bare number is
// taken as mm/min; a length unit converts the magnitude to mm.
func rateArg(args map[string]types.Value, name string) (float64, error) {
	n, err := numberArg(args, name)
	if err != nil {
		return 0, err
	}
	if n.IsUnitless() {
		return n.Float(), nil
	}
	return n.Canonical()
}

// scalarArg fetches a Number parameter that must be unitless.
func scalarArg(args map[string]types.Value, name string) (float64, error) {
	n, err := numberArg(args, name)
	if err != nil {
		return 0, err
	}
	v, err := n.Scalar()
	if err != nil {
		return 0, types.NewError(types.TypeError, "parameter %q must be unitless, got %s", name, n)
	}
	return v, nil
}

// stringArg fetches a bound string parameter.
func stringArg(args map[string]types.Value, name string) (string, error) {
	s, err := types.AsString(args[name])
	if err != nil {
		return "", types.NewError(types.TypeError, "parameter %q: %s", name, types.AsError(err).Message)
	}
	return s, nil
}
