package evaluator

import "github.com/fpgaminer/gcad/pkg/types"

// Scope is one frame of the lexical scope stack. Frames are created on
// block and loop-body entry and discarded on exit; identifier lookup
// walks from the innermost frame outward to the global frame.
type Scope struct {
	parent *Scope
	vars   map[string]types.Value
}

// NewScope creates a scope frame. A nil parent makes the global frame.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		vars:   make(map[string]types.Value),
	}
}

// Lookup resolves an identifier, walking innermost to global.
func (s *Scope) Lookup(name string) (types.Value, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind binds or overwrites an identifier in this frame. A binding in an
// inner frame shadows an outer one without altering it.
func (s *Scope) Bind(name string, value types.Value) {
	s.vars[name] = value
}

// Names returns every identifier visible from this scope, used for
// "did you mean" suggestions in name errors.
func (s *Scope) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for frame := s; frame != nil; frame = frame.parent {
		for name := range frame.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
