package gcs

import "fmt"

// IntegerVariableID is implemented by the three disjoint kinds of variable
// the solver understands: SimpleVariableID (an index into the state store),
// ConstantVariableID (a fixed Integer with no state), and ViewVariableID (a
// zero-cost structural alias of another variable). All three are usable
// wherever "a variable" is expected; hot paths unwrap views via Resolve
// rather than paying for dynamic dispatch on every bounds query.
type IntegerVariableID interface {
	fmt.Stringer
	isIntegerVariableID()
}

// SimpleVariableID names a variable whose domain lives in the state store.
type SimpleVariableID struct {
	Index int
}

func (SimpleVariableID) isIntegerVariableID() {}
func (v SimpleVariableID) String() string     { return fmt.Sprintf("v%d", v.Index) }

// ConstantVariableID is a fixed Integer masquerading as a variable.
type ConstantVariableID struct {
	Value Integer
}

func (ConstantVariableID) isIntegerVariableID() {}
func (v ConstantVariableID) String() string     { return fmt.Sprintf("%d", v.Value) }

// ViewVariableID logically equals ThenAdd ± Actual. Views are structural
// wrappers, not pointers: composing views just nests the struct, and Resolve
// walks the chain down to a single Simple or Constant base plus one
// accumulated (negate, offset) pair.
type ViewVariableID struct {
	Actual      IntegerVariableID
	NegateFirst bool
	ThenAdd     Integer
}

func (ViewVariableID) isIntegerVariableID() {}

func (v ViewVariableID) String() string {
	if v.NegateFirst {
		return fmt.Sprintf("(%d - %s)", v.ThenAdd, v.Actual)
	}
	if v.ThenAdd == 0 {
		return v.Actual.String()
	}
	return fmt.Sprintf("(%s + %d)", v.Actual, v.ThenAdd)
}

// Negate returns a view equal to -v.
func Negate(v IntegerVariableID) IntegerVariableID {
	return ViewVariableID{Actual: v, NegateFirst: true, ThenAdd: 0}
}

// Plus returns a view equal to v + k.
func Plus(v IntegerVariableID, k Integer) IntegerVariableID {
	if k == 0 {
		return v
	}
	return ViewVariableID{Actual: v, NegateFirst: false, ThenAdd: k}
}

// Minus returns a view equal to v - k.
func Minus(v IntegerVariableID, k Integer) IntegerVariableID { return Plus(v, -k) }

// Resolve walks a (possibly nested) view chain down to its base variable
// (always a SimpleVariableID or a ConstantVariableID) together with the
// accumulated negate/offset transform such that:
//
//	viewValue = offset + (negate ? -baseValue : baseValue)
func Resolve(v IntegerVariableID) (base IntegerVariableID, negate bool, offset Integer) {
	negate, offset = false, 0
	for {
		view, ok := v.(ViewVariableID)
		if !ok {
			return v, negate, offset
		}
		// value(top) = offset + sign*value(view), sign = -1 if negate else +1,
		// and value(view) = view.ThenAdd + s*value(view.Actual), s = -1 if
		// view.NegateFirst else +1. Substituting gives the new offset below
		// regardless of view.NegateFirst (only the sign of ThenAdd depends on
		// the *already accumulated* negate, not on this view's own flag), and
		// the new sign = sign*s, i.e. negate flips exactly when this view
		// negates.
		if negate {
			offset -= view.ThenAdd
		} else {
			offset += view.ThenAdd
		}
		if view.NegateFirst {
			negate = !negate
		}
		v = view.Actual
	}
}

// ToBaseValue converts a target value for v into the corresponding target
// value for its resolved base variable, given the transform Resolve(v)
// reported. It is the inverse of the view arithmetic: v == offset +
// (negate ? -base : base), so base == negate ? (offset - v) : (v - offset).
func ToBaseValue(negate bool, offset, viewTarget Integer) Integer {
	if negate {
		return offset - viewTarget
	}
	return viewTarget - offset
}

// FromBaseValue converts a base-variable value into the value its view
// represents.
func FromBaseValue(negate bool, offset, baseValue Integer) Integer {
	if negate {
		return offset - baseValue
	}
	return offset + baseValue
}
