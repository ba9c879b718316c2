// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

// Choice is the composite base for CHOICE types. A CHOICE owns no envelope of
// its own: it is entered when the enclosing composite resolves a field via
// [InputChoice], consumes exactly one alternative and completes as soon as
// that alternative's value is accepted.
type Choice struct {
	Constructed
	constraint Constraint[int]
	chosen     int
}

// Init compiles the CHOICE alternatives. Alternatives are identified by their
// 1-based declaration position; only the Input of each [Field] is consulted.
// The constraint, judged against the chosen alternative's position, may be
// nil.
func (c *Choice) Init(parent Acceptor, src Composite, name string, alts []Field, constraint Constraint[int]) {
	var ts []Transition
	for i, a := range alts {
		if a.Presence == Absent {
			continue
		}
		el := Element{ID: i + 1, Presence: Optional, Final: true}
		ts = append(ts, Transition{source(idChoice), a.Input, el})
	}
	c.constraint = constraint
	c.Constructed.init(parent, src, "CHOICE "+name, choiceElement, ts, false)
}

// Accept implements [Acceptor]. Accepting the single alternative completes
// the CHOICE immediately; there is no envelope left to close.
func (c *Choice) Accept() error {
	c.active = nil
	c.chosen = c.current.ID
	if pa, ok := c.src.(preAcceptor); ok {
		if err := pa.PreAccept(); err != nil {
			return err
		}
	}
	if c.constraint != nil && !c.constraint.IsAccepted(c.chosen) {
		return errConstraint(c.kind)
	}
	return c.complete()
}

// Chosen returns the 1-based position of the consumed alternative, or 0 if no
// alternative has been consumed yet.
func (c *Choice) Chosen() int {
	return c.chosen
}

// Reset returns the CHOICE to its initial state. Concrete types extend Reset
// to also reset their alternative builders.
func (c *Choice) Reset() {
	c.Constructed.Reset()
	c.chosen = 0
}
