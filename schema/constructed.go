// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/AnkiHonnaiah/asn1"
)

// Composite is implemented by concrete composite types to supply the parts of
// a constructed builder that depend on the type: the builders for its
// elements. It is consulted by [Constructed] whenever a transition is taken.
type Composite interface {
	// CreateChild returns the builder that consumes the events of element e,
	// or nil if the element consumes no events beyond the transition itself.
	CreateChild(e Element) (Builder, error)
}

// preAcceptor is an optional hook of a [Composite], invoked when a child
// builder reports a complete value and before routing returns to the
// composite.
type preAcceptor interface {
	PreAccept() error
}

// constraintChecker is an optional hook of a [Composite], invoked when the
// composite's envelope closes. This is the only point at which collection
// constraints such as a SIZE bound can be judged.
type constraintChecker interface {
	CheckConstraints() error
}

// Constructed is the state machine shared by all composite builders. It is
// not used on its own: SEQUENCE, SET, CHOICE and SEQUENCE OF embed it and
// compile their structure into its transition table.
//
// Events arriving while a child is active are forwarded verbatim. Otherwise
// the event's input tag is resolved through the transition table: first
// directly, then as [InputChoice]. A miss fails with [ErrUnexpectedInput].
type Constructed struct {
	parent  Acceptor
	src     Composite
	kind    string
	initial Element
	table   transitionTable
	// revisit permits re-entering an element state, used for the repetition
	// of a SEQUENCE OF. Without it a duplicate element is a structure error.
	revisit bool

	current  Element
	required int
	seen     int
	visited  map[int]struct{}
	active   Builder
}

// init compiles ts and puts the state machine into its initial state.
func (c *Constructed) init(parent Acceptor, src Composite, kind string, initial Element, ts []Transition, revisit bool) {
	c.parent = parent
	c.src = src
	c.kind = kind
	c.initial = initial
	c.current = initial
	c.table = compileTransitions(ts)
	c.required = c.table.requiredCount()
	c.revisit = revisit
	c.visited = make(map[int]struct{}, len(ts))
}

// advance resolves in through the transition table and makes the target
// element current. It returns the builder for the new element, which may be
// nil for elements that consume no events of their own.
func (c *Constructed) advance(in Input) (Builder, error) {
	next, ok := c.table.next(c.current, in)
	if !ok {
		next, ok = c.table.next(c.current, InputChoice)
	}
	if !ok {
		return nil, &StructureError{Kind: c.kind, Event: in.String(), Err: ErrUnexpectedInput}
	}
	if _, dup := c.visited[next.ID]; dup && !c.revisit {
		return nil, &StructureError{Kind: c.kind, Event: in.String(), Err: errors.New("duplicate element")}
	}
	c.visited[next.ID] = struct{}{}
	if next.Presence == Present {
		c.seen++
	}
	c.current = next
	var child Builder
	if c.src != nil {
		var err error
		if child, err = c.src.CreateChild(next); err != nil {
			return nil, c.childError(next, err)
		}
	}
	c.active = child
	return child, nil
}

// onPrimitive routes a primitive event identified by in. deliver invokes the
// event on the builder that is to consume it.
func (c *Constructed) onPrimitive(in Input, deliver func(Builder) error) error {
	if c.active != nil {
		return deliver(c.active)
	}
	child, err := c.advance(in)
	if err != nil {
		return err
	}
	if child == nil {
		return nil
	}
	return deliver(child)
}

// onStart routes the start event of a constructed value identified by in. The
// first start event a composite sees is its own envelope: it carries no
// information beyond what the parent already matched and is consumed without
// a table lookup.
func (c *Constructed) onStart(in Input, deliver func(Builder) error) error {
	if c.active != nil {
		return deliver(c.active)
	}
	if c.current == c.initial && c.initial.ID == idAny {
		c.current = anyFinalElement
		return nil
	}
	child, err := c.advance(in)
	if err != nil {
		return err
	}
	if child == nil {
		return nil
	}
	return deliver(child)
}

// onEnd routes the end event of a constructed value. With no active child the
// end event closes the composite's own envelope.
func (c *Constructed) onEnd(deliver func(Builder) error) error {
	if c.active != nil {
		return deliver(c.active)
	}
	return c.finish()
}

// finish validates that the composite is in an accepting configuration and
// locks it into the completed state.
func (c *Constructed) finish() error {
	if c.current.ID == idCompleted {
		return &StructureError{Kind: c.kind, Err: errors.New("input after completion")}
	}
	if !c.current.Final || c.seen < c.required {
		return &StructureError{Kind: c.kind, Err: ErrIncomplete}
	}
	return c.complete()
}

// complete locks the composite, checks collection constraints and notifies
// the parent.
func (c *Constructed) complete() error {
	c.current = completedElement
	if cc, ok := c.src.(constraintChecker); ok {
		if err := cc.CheckConstraints(); err != nil {
			return err
		}
	}
	if c.parent != nil {
		return c.parent.Accept()
	}
	return nil
}

// Accept implements [Acceptor]. It is called by the active child once the
// child's value is complete; routing returns to the composite afterwards.
func (c *Constructed) Accept() error {
	c.active = nil
	if pa, ok := c.src.(preAcceptor); ok {
		return pa.PreAccept()
	}
	return nil
}

// IsCompleted reports whether the composite is in an accepting configuration:
// either its envelope has closed, or every remaining element is optional and
// no child is mid-value.
func (c *Constructed) IsCompleted() bool {
	if c.current.ID == idCompleted {
		return true
	}
	return c.active == nil && c.current.Final && c.seen >= c.required
}

// Reset returns the state machine to its initial state. Concrete composite
// types extend Reset to also reset their element builders.
func (c *Constructed) Reset() {
	c.active = nil
	c.current = c.initial
	c.seen = 0
	clear(c.visited)
}

// completed reports whether the envelope has closed and the value is locked.
func (c *Constructed) completed() bool {
	return c.current.ID == idCompleted
}

// yieldable returns an error unless the composite is in an accepting
// configuration. It is the common guard of composite Yield implementations.
func (c *Constructed) yieldable() error {
	if !c.IsCompleted() {
		return &StructureError{Kind: c.kind, Err: ErrIncomplete}
	}
	return nil
}

// childError wraps an error from [Composite.CreateChild].
func (c *Constructed) childError(e Element, err error) error {
	return fmt.Errorf("%s: creating builder for %s: %w", c.kind, e.String(), err)
}

//region Event routing

func (c *Constructed) Bool(v bool) error {
	return c.onPrimitive(Universal(asn1.TagBoolean), func(b Builder) error { return b.Bool(v) })
}

func (c *Constructed) Integer(v *big.Int) error {
	return c.onPrimitive(Universal(asn1.TagInteger), func(b Builder) error { return b.Integer(v) })
}

func (c *Constructed) Enumerated(v int64) error {
	return c.onPrimitive(Universal(asn1.TagEnumerated), func(b Builder) error { return b.Enumerated(v) })
}

func (c *Constructed) BitString(v asn1.BitString) error {
	return c.onPrimitive(Universal(asn1.TagBitString), func(b Builder) error { return b.BitString(v) })
}

func (c *Constructed) OctetString(v []byte) error {
	return c.onPrimitive(Universal(asn1.TagOctetString), func(b Builder) error { return b.OctetString(v) })
}

func (c *Constructed) Null() error {
	return c.onPrimitive(Universal(asn1.TagNull), func(b Builder) error { return b.Null() })
}

func (c *Constructed) OID(v asn1.ObjectIdentifier) error {
	return c.onPrimitive(Universal(asn1.TagOID), func(b Builder) error { return b.OID(v) })
}

func (c *Constructed) UTF8String(v asn1.UTF8String) error {
	return c.onPrimitive(Universal(asn1.TagUTF8String), func(b Builder) error { return b.UTF8String(v) })
}

func (c *Constructed) NumericString(v asn1.NumericString) error {
	return c.onPrimitive(Universal(asn1.TagNumericString), func(b Builder) error { return b.NumericString(v) })
}

func (c *Constructed) PrintableString(v asn1.PrintableString) error {
	return c.onPrimitive(Universal(asn1.TagPrintableString), func(b Builder) error { return b.PrintableString(v) })
}

func (c *Constructed) IA5String(v asn1.IA5String) error {
	return c.onPrimitive(Universal(asn1.TagIA5String), func(b Builder) error { return b.IA5String(v) })
}

func (c *Constructed) VisibleString(v asn1.VisibleString) error {
	return c.onPrimitive(Universal(asn1.TagVisibleString), func(b Builder) error { return b.VisibleString(v) })
}

func (c *Constructed) UTCTime(v time.Time) error {
	return c.onPrimitive(Universal(asn1.TagUTCTime), func(b Builder) error { return b.UTCTime(v) })
}

func (c *Constructed) GeneralizedTime(v time.Time) error {
	return c.onPrimitive(Universal(asn1.TagGeneralizedTime), func(b Builder) error { return b.GeneralizedTime(v) })
}

func (c *Constructed) SequenceStart() error {
	return c.onStart(Universal(asn1.TagSequence), func(b Builder) error { return b.SequenceStart() })
}

func (c *Constructed) SequenceEnd() error {
	return c.onEnd(func(b Builder) error { return b.SequenceEnd() })
}

func (c *Constructed) SetStart() error {
	return c.onStart(Universal(asn1.TagSet), func(b Builder) error { return b.SetStart() })
}

func (c *Constructed) SetEnd() error {
	return c.onEnd(func(b Builder) error { return b.SetEnd() })
}

func (c *Constructed) TaggedStart(in Input) error {
	return c.onStart(in, func(b Builder) error { return b.TaggedStart(in) })
}

func (c *Constructed) TaggedEnd(in Input) error {
	return c.onEnd(func(b Builder) error { return b.TaggedEnd(in) })
}

func (c *Constructed) TaggedPrimitive(in Input, raw []byte) error {
	return c.onPrimitive(in, func(b Builder) error { return b.TaggedPrimitive(in, raw) })
}

func (c *Constructed) Raw(v asn1.RawValue) error {
	return c.onPrimitive(InputRaw, func(b Builder) error { return b.Raw(v) })
}

//endregion
