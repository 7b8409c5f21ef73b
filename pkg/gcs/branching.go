package gcs

// InputOrderBranching returns a BranchingStrategy that tries vars in the
// order given, branching on "var == min(domain)" for the first one that is
// not yet a singleton.
func InputOrderBranching(vars []IntegerVariableID) BranchingStrategy {
	return BranchingFunc(func(state *State) (Literal, bool) {
		for _, v := range vars {
			if _, ok := state.OptionalSingleValue(v); ok {
				continue
			}
			lo, _ := state.Bounds(v)
			return EqualTo(v, lo), true
		}
		return Literal{}, false
	})
}

// SmallestDomainBranching returns a BranchingStrategy implementing the
// classic first-fail heuristic: of every variable in vars that is not yet a
// singleton, pick the one with the fewest remaining values (ties broken by
// position in vars) and branch on "var == min(domain)".
func SmallestDomainBranching(vars []IntegerVariableID) BranchingStrategy {
	return BranchingFunc(func(state *State) (Literal, bool) {
		best := -1
		var bestSize Integer
		for i, v := range vars {
			if _, ok := state.OptionalSingleValue(v); ok {
				continue
			}
			size := state.DomainSize(v)
			if best == -1 || size < bestSize {
				best, bestSize = i, size
			}
		}
		if best == -1 {
			return Literal{}, false
		}
		lo, _ := state.Bounds(vars[best])
		return EqualTo(vars[best], lo), true
	})
}
