package evaluator

import (
	"github.com/fpgaminer/gcad/pkg/types"
	"github.com/fpgaminer/gcad/pkg/units"
)

// fnComment appends a free-text comment to the instruction buffer.
func fnComment(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	text, err := stringArg(args, "text")
	if err != nil {
		return nil, err
	}
	e.state.WriteComment(text)
	return types.NullValue, nil
}

// fnLinspace builds a sequence of count evenly spaced numbers from
// start to stop inclusive. Both endpoints must be unitless or both
// must carry length units; a unit-bearing range yields millimeter
// values. Endpoints are reproduced exactly.
func fnLinspace(e *Evaluator, args map[string]types.Value) (types.Value, error) {
	start, err := numberArg(args, "start")
	if err != nil {
		return nil, err
	}
	stop, err := numberArg(args, "stop")
	if err != nil {
		return nil, err
	}
	countNum, err := numberArg(args, "count")
	if err != nil {
		return nil, err
	}

	count, ok := countNum.Int()
	if !ok || !countNum.IsUnitless() {
		return nil, types.NewError(types.TypeError, "linspace count must be a unitless integer, got %s", countNum)
	}
	if count < 1 {
		return nil, types.NewError(types.RuntimeError, "linspace count must be at least 1, got %d", count)
	}
	if count > int64(e.opts.MaxSequenceLen) {
		return nil, types.NewError(types.RuntimeError, "linspace count %d exceeds the sequence limit of %d", count, e.opts.MaxSequenceLen)
	}

	if start.IsUnitless() != stop.IsUnitless() {
		return nil, types.NewError(types.TypeError, "linspace endpoints must both be unitless or both carry units, got %s and %s", start, stop)
	}

	unit := units.None
	a := start.Float()
	b := stop.Float()
	if !start.IsUnitless() {
		unit = units.MM
		if a, err = start.Canonical(); err != nil {
			return nil, err
		}
		if b, err = stop.Canonical(); err != nil {
			return nil, err
		}
	}

	seq := make(types.Sequence, count)
	if count == 1 {
		seq[0] = types.FloatUnit(a, unit)
		return seq, nil
	}
	for i := int64(0); i < count-1; i++ {
		v := a + (b-a)*float64(i)/float64(count-1)
		seq[i] = types.FloatUnit(v, unit)
	}
	seq[count-1] = types.FloatUnit(b, unit)
	return seq, nil
}
