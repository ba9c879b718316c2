// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// Transition is one entry of a composite's state machine table: when the
// current state is Current and a data value identified by Input arrives, the
// composite moves to Next.
type Transition struct {
	Current Element
	Input   Input
	Next    Element
}

// transitionKey is the lookup key of a compiled table. Current states are
// identified by ID only.
type transitionKey struct {
	current int
	input   Input
}

// transitionTable is a compiled, deterministic transition table.
type transitionTable map[transitionKey]Element

// compileTransitions builds the lookup table for ts. Determinism is a
// structural requirement: two transitions from the same state on the same
// input indicate a malformed schema type, so compileTransitions panics.
func compileTransitions(ts []Transition) transitionTable {
	table := make(transitionTable, len(ts))
	for _, t := range ts {
		k := transitionKey{t.Current.ID, t.Input}
		if _, ok := table[k]; ok {
			panic("schema: ambiguous transition from " + t.Current.String() + " on " + t.Input.String())
		}
		table[k] = t.Next
	}
	return table
}

// next returns the state reached from current on in.
func (t transitionTable) next(current Element, in Input) (Element, bool) {
	next, ok := t[transitionKey{current.ID, in}]
	return next, ok
}

// requiredCount returns the number of distinct mandatory elements in the
// table.
func (t transitionTable) requiredCount() int {
	seen := make(map[int]struct{})
	for _, next := range t {
		if next.Presence == Present {
			seen[next.ID] = struct{}{}
		}
	}
	return len(seen)
}
