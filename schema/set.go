// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// Set is the composite base for SET types: fields may appear in any order,
// each at most once. A duplicate field is a structure error. As with
// [Sequence], fields are identified by their 1-based declaration position.
type Set struct {
	Constructed
}

// Init compiles the SET field policy into the transition table.
func (s *Set) Init(parent Acceptor, src Composite, name string, fields []Field) {
	s.Constructed.init(parent, src, "SET "+name, anyElement, setTransitions(fields), false)
}

// setTransitions builds the table for an unordered field list: every field is
// reachable from the initial state and from every other field, and every
// state is final. Mandatory fields are accounted for by the acceptance check,
// not by the table shape.
func setTransitions(fields []Field) []Transition {
	type entry struct {
		el Element
		in Input
	}
	entries := make([]entry, 0, len(fields))
	for i, f := range fields {
		if f.Presence == Absent {
			continue
		}
		entries = append(entries, entry{Element{ID: i + 1, Presence: f.Presence, Final: true}, f.Input})
	}

	var ts []Transition
	for _, e := range entries {
		ts = append(ts, Transition{source(idAny), e.in, e.el})
		for _, from := range entries {
			if from.el.ID == e.el.ID {
				continue
			}
			ts = append(ts, Transition{source(from.el.ID), e.in, e.el})
		}
	}
	return ts
}
