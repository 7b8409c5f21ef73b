package gcs

import "strconv"

// Régin's generalised arc consistency algorithm for all-different: build a
// bipartite graph of variables against the values any of them could take,
// find a maximum matching (via Kuhn's augmenting-path search with a
// token-visited array), then find the strongly connected components of the
// matching's residual graph (Tarjan). A value can be pruned from a
// variable's domain exactly when that (variable, value) arc is not in the
// matching and the variable and value nodes fall in different components.

// AllDifferent returns a propagator enforcing that every variable in vars
// takes a distinct value. modelLine, if non-zero, is cited in every pruning
// step's proof (a simplification of full Hall-set resolution: the
// derivation combines the all-different model constraint with the current
// bounds of every variable in vars, rather than reconstructing the minimal
// Hall set by name).
func AllDifferent(vars []IntegerVariableID, modelLine ProofLine) PropagatorFunc {
	return func(t *InferenceTracker) Outcome {
		return allDifferentPropagate(t, vars, modelLine)
	}
}

func allDifferentPropagate(t *InferenceTracker, vars []IntegerVariableID, modelLine ProofLine) Outcome {
	n := len(vars)
	valueIndex := make(map[Integer]int)
	var values []Integer
	domains := make([][]int, n)
	for i, v := range vars {
		t.State().IterateValues(v, func(val Integer) bool {
			idx, ok := valueIndex[val]
			if !ok {
				idx = len(values)
				values = append(values, val)
				valueIndex[val] = idx
			}
			domains[i] = append(domains[i], idx)
			return true
		})
	}
	m := len(values)

	matchVarToValue := make([]int, n)
	matchValueToVar := make([]int, m)
	for i := range matchVarToValue {
		matchVarToValue[i] = -1
	}
	for i := range matchValueToVar {
		matchValueToVar[i] = -1
	}

	var tryAugment func(v int, visited []bool) bool
	tryAugment = func(v int, visited []bool) bool {
		for _, vi := range domains[v] {
			if visited[vi] {
				continue
			}
			visited[vi] = true
			if matchValueToVar[vi] == -1 || tryAugment(matchValueToVar[vi], visited) {
				matchValueToVar[vi] = v
				matchVarToValue[v] = vi
				return true
			}
		}
		return false
	}

	for v := 0; v < n; v++ {
		if matchVarToValue[v] != -1 {
			continue
		}
		visited := make([]bool, m)
		if !tryAugment(v, visited) {
			return t.Contradiction(ExplicitJustification(func(logger *ProofLogger, level ProofLevel) Reason {
				return allDifferentPolReason(t, vars, modelLine, logger, level)
			}))
		}
	}

	// Residual graph: node v in [0,n) is variable i; node n+j is value j;
	// node n+m is a sink with an edge in from every free (unmatched) value
	// and an edge out to every matched value, so an arc that starts an
	// alternating path ending at a free value lies on a cycle.
	sink := n + m
	adj := make([][]int, n+m+1)
	addEdge := func(a, b int) { adj[a] = append(adj[a], b) }
	for i := 0; i < n; i++ {
		for _, vi := range domains[i] {
			if matchVarToValue[i] == vi {
				addEdge(n+vi, i)
			} else {
				addEdge(i, n+vi)
			}
		}
	}
	for j := 0; j < m; j++ {
		if matchValueToVar[j] == -1 {
			addEdge(n+j, sink)
		} else {
			addEdge(sink, n+j)
		}
	}

	comp := tarjanSCC(adj)

	worst := NoChange
	for i := 0; i < n; i++ {
		for _, vi := range domains[i] {
			if matchVarToValue[i] == vi {
				continue
			}
			if comp[i] == comp[n+vi] {
				continue
			}
			just := ExplicitJustification(func(logger *ProofLogger, level ProofLevel) Reason {
				return allDifferentPolReason(t, vars, modelLine, logger, level)
			})
			if o := t.InferNotEqual(vars[i], values[vi], just); o == Contradiction {
				return Contradiction
			} else if o != NoChange {
				worst = o
			}
		}
	}
	return worst
}

func allDifferentPolReason(t *InferenceTracker, vars []IntegerVariableID, modelLine ProofLine, logger *ProofLogger, level ProofLevel) Reason {
	lits := make([]Literal, 0, len(vars)*2)
	for _, v := range vars {
		lo, hi := t.State().Bounds(v)
		lits = append(lits, GreaterThanOrEqual(v, lo), LessThanOrEqual(v, hi))
	}
	if logger != nil && modelLine != 0 {
		logger.EmitPol(strconv.Itoa(int(modelLine)), level)
	}
	return reasonOf(lits...)
}

// tarjanSCC returns, for each node, the index of its strongly connected
// component in adj (an adjacency list over len(adj) nodes).
func tarjanSCC(adj [][]int) []int {
	n := len(adj)
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	comp := make([]int, n)
	for i := range index {
		index[i] = -1
	}
	var stack []int
	nextIndex := 0
	nextComp := 0

	var strongConnect func(v int)
	strongConnect = func(v int) {
		index[v] = nextIndex
		low[v] = nextIndex
		nextIndex++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if index[w] == -1 {
				strongConnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if index[w] < low[v] {
					low[v] = index[w]
				}
			}
		}

		if low[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp[w] = nextComp
				if w == v {
					break
				}
			}
			nextComp++
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongConnect(v)
		}
	}
	return comp
}
