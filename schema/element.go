// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema implements a builder-based decoding engine for ASN.1
// structures. A schema is expressed as a tree of builders: leaf builders
// accumulate primitive values while constructed builders run a small state
// machine that routes decoding events to the builder responsible for the
// current field. The [Decode] function walks a DER encoding and feeds the
// resulting events into a root builder; builders can also be driven directly.
//
// Constructed builders do not switch on concrete child types. They operate on
// [Element] states and a per-type table of [Transition] values describing
// which input tags are acceptable in which state. The SEQUENCE, SET, CHOICE
// and SEQUENCE OF composites differ only in the tables they compile.
package schema

import (
	"strconv"

	"github.com/AnkiHonnaiah/asn1"
)

// Presence describes whether an element must appear in its enclosing
// composite.
//
//go:generate go tool stringer -type=Presence
type Presence uint8

const (
	// Present marks a mandatory element.
	Present Presence = iota
	// Optional marks an element that may be omitted.
	Optional
	// Absent marks an element that must not appear. Absent elements are
	// filtered out when a transition table is compiled.
	Absent
)

// Sentinel element identifiers. Regular elements use identifiers >= 1;
// identity of an element within a composite is its ID alone.
const (
	idAny       = -1 // state before any field has been consumed
	idCompleted = -2 // state after the composite's envelope has closed
	idChoice    = -3 // initial state of a CHOICE, which owns no envelope
)

// Element is one state of a constructed builder's state machine. Two Element
// values denote the same state iff their IDs are equal; Presence and Final are
// per-state annotations.
type Element struct {
	// ID identifies the element within its composite.
	ID int
	// Presence indicates whether the element is mandatory.
	Presence Presence
	// Final reports whether the composite may end while this element is the
	// current state.
	Final bool
}

var (
	anyElement       = Element{ID: idAny, Presence: Optional}
	anyFinalElement  = Element{ID: idAny, Presence: Optional, Final: true}
	completedElement = Element{ID: idCompleted, Presence: Optional, Final: true}
	choiceElement    = Element{ID: idChoice, Presence: Optional}
)

// source returns an Element suitable as the Current state of a [Transition].
// Only the ID participates in table lookups.
func source(id int) Element {
	return Element{ID: id}
}

// String returns a short description of e.
func (e Element) String() string {
	var s string
	switch e.ID {
	case idAny:
		s = "<any>"
	case idCompleted:
		s = "<completed>"
	case idChoice:
		s = "<choice>"
	default:
		s = "element " + strconv.Itoa(e.ID)
	}
	if e.Final {
		s += " (final)"
	}
	return s
}

// Synthetic input tag numbers. These lie outside the range of encodable tag
// numbers and never collide with wire tags.
const (
	// NumberChoice matches a field whose type is a CHOICE. The concrete tag
	// of the chosen alternative is resolved by the nested CHOICE builder.
	NumberChoice uint = ^uint(0)
	// NumberRaw matches any input as an undecoded [asn1.RawValue]. It is
	// consulted only after regular and choice lookups have failed.
	NumberRaw uint = ^uint(0) - 1
)

// Input identifies a decoding event for transition lookups: the tag of the
// data value that produced the event, or one of the synthetic numbers.
type Input struct {
	Class  asn1.Class
	Number uint
}

// Predefined synthetic inputs.
var (
	InputChoice = Input{Number: NumberChoice}
	InputRaw    = Input{Number: NumberRaw}
)

// Universal returns the Input for a universal class tag number.
func Universal(number uint) Input {
	return Input{Class: asn1.ClassUniversal, Number: number}
}

// Application returns the Input for an application class tag number.
func Application(number uint) Input {
	return Input{Class: asn1.ClassApplication, Number: number}
}

// Context returns the Input for a context-specific tag number.
func Context(number uint) Input {
	return Input{Class: asn1.ClassContextSpecific, Number: number}
}

// Private returns the Input for a private class tag number.
func Private(number uint) Input {
	return Input{Class: asn1.ClassPrivate, Number: number}
}

// String returns a short description of in.
func (in Input) String() string {
	switch in {
	case InputChoice:
		return "<choice>"
	case InputRaw:
		return "<raw>"
	}
	return asn1.Tag{Class: in.Class, Number: in.Number}.String()
}
