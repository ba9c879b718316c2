// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// Field describes one element of a composite schema type in declaration
// order. Input identifies the leading tag of the field's type: a field whose
// type is a CHOICE uses [InputChoice] and an ANY field uses [InputRaw].
type Field struct {
	Input    Input
	Presence Presence
}

// Sequence is the composite base for SEQUENCE types: fields appear in
// declaration order, optional fields may be skipped. Concrete types embed
// Sequence, call [Sequence.Init] and implement [Composite] for their fields.
// Fields are identified by their 1-based declaration position, which is the
// [Element.ID] passed to CreateChild.
type Sequence struct {
	Constructed
}

// Init compiles the SEQUENCE field policy into the transition table.
func (s *Sequence) Init(parent Acceptor, src Composite, name string, fields []Field) {
	s.Constructed.init(parent, src, "SEQUENCE "+name, anyElement, sequenceTransitions(fields), false)
}

// sequenceTransitions builds the table for an ordered field list. Every field
// is reachable from the preceding field and from any earlier run of optional
// fields; a mandatory field cuts off all earlier sources. A field's state is
// final iff no mandatory field follows it.
func sequenceTransitions(fields []Field) []Transition {
	fin := make([]bool, len(fields))
	final := true
	for i := len(fields) - 1; i >= 0; i-- {
		fin[i] = final
		if fields[i].Presence == Present {
			final = false
		}
	}

	var ts []Transition
	sources := []int{idAny}
	for i, f := range fields {
		if f.Presence == Absent {
			continue
		}
		el := Element{ID: i + 1, Presence: f.Presence, Final: fin[i]}
		for _, from := range sources {
			ts = append(ts, Transition{source(from), f.Input, el})
		}
		if f.Presence == Present {
			sources = []int{el.ID}
		} else {
			sources = append(sources, el.ID)
		}
	}
	return ts
}
