// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"math/big"
	"time"

	"github.com/AnkiHonnaiah/asn1"
)

// Builder is the event interface of the decoding engine. A driver (usually
// [Decode]) translates a DER byte stream into calls on a root Builder; a
// constructed builder forwards each event to the builder responsible for the
// current field.
//
// Primitive events carry an already decoded value. Structured events come in
// start/end pairs bracketing the fields of a constructed value. Tagged events
// cover non-universal tags: TaggedStart/TaggedEnd bracket a constructed
// value, TaggedPrimitive delivers the raw content octets of an implicitly
// tagged primitive whose universal type is not recoverable from the wire.
//
// Every event may fail. A builder that does not support an event returns a
// [StructureError]; once a builder has recorded a failure it keeps returning
// the first error.
type Builder interface {
	Bool(v bool) error
	Integer(v *big.Int) error
	Enumerated(v int64) error
	BitString(v asn1.BitString) error
	OctetString(v []byte) error
	Null() error
	OID(v asn1.ObjectIdentifier) error
	UTF8String(v asn1.UTF8String) error
	NumericString(v asn1.NumericString) error
	PrintableString(v asn1.PrintableString) error
	IA5String(v asn1.IA5String) error
	VisibleString(v asn1.VisibleString) error
	UTCTime(v time.Time) error
	GeneralizedTime(v time.Time) error

	SequenceStart() error
	SequenceEnd() error
	SetStart() error
	SetEnd() error
	TaggedStart(in Input) error
	TaggedEnd(in Input) error
	TaggedPrimitive(in Input, raw []byte) error

	// Raw delivers a data value that no typed transition claimed. The driver
	// issues it as a second attempt after [ErrUnexpectedInput].
	Raw(v asn1.RawValue) error

	// Reset returns the builder and all its descendants to their initial
	// state, discarding any accumulated value or error.
	Reset()

	// IsCompleted reports whether the builder is in an accepting state, that
	// is whether the value consumed so far forms a complete instance of the
	// builder's type.
	IsCompleted() bool
}

// ValueBuilder is a Builder that yields a typed value once complete.
type ValueBuilder[T any] interface {
	Builder

	// Yield returns the accumulated value. It fails with [ErrIncomplete] if
	// the builder is not in an accepting state and with the recorded error if
	// any event failed.
	Yield() (T, error)
}

// Acceptor is the upward edge of the builder tree. When a child builder has
// consumed a complete value it calls Accept on its parent; the parent then
// reclaims event routing. The root builder has no parent.
type Acceptor interface {
	Accept() error
}

// base provides default implementations for all Builder events, each failing
// with a [StructureError]. Leaf builders embed base and override exactly the
// events their type consumes.
type base struct {
	kind string
}

// reject returns the StructureError produced for an unsupported event.
func (b *base) reject(event string) error {
	return &StructureError{Kind: b.kind, Event: event, Err: errors.New("event not supported")}
}

func (b *base) Bool(bool) error                        { return b.reject("BOOLEAN") }
func (b *base) Integer(*big.Int) error                 { return b.reject("INTEGER") }
func (b *base) Enumerated(int64) error                 { return b.reject("ENUMERATED") }
func (b *base) BitString(asn1.BitString) error         { return b.reject("BIT STRING") }
func (b *base) OctetString([]byte) error               { return b.reject("OCTET STRING") }
func (b *base) Null() error                            { return b.reject("NULL") }
func (b *base) OID(asn1.ObjectIdentifier) error        { return b.reject("OBJECT IDENTIFIER") }
func (b *base) UTF8String(asn1.UTF8String) error       { return b.reject("UTF8String") }
func (b *base) NumericString(asn1.NumericString) error { return b.reject("NumericString") }
func (b *base) PrintableString(asn1.PrintableString) error {
	return b.reject("PrintableString")
}
func (b *base) IA5String(asn1.IA5String) error         { return b.reject("IA5String") }
func (b *base) VisibleString(asn1.VisibleString) error { return b.reject("VisibleString") }
func (b *base) UTCTime(time.Time) error                { return b.reject("UTCTime") }
func (b *base) GeneralizedTime(time.Time) error        { return b.reject("GeneralizedTime") }
func (b *base) SequenceStart() error                   { return b.reject("SEQUENCE start") }
func (b *base) SequenceEnd() error                     { return b.reject("SEQUENCE end") }
func (b *base) SetStart() error                        { return b.reject("SET start") }
func (b *base) SetEnd() error                          { return b.reject("SET end") }
func (b *base) TaggedStart(in Input) error             { return b.reject(in.String() + " start") }
func (b *base) TaggedEnd(in Input) error               { return b.reject(in.String() + " end") }
func (b *base) TaggedPrimitive(in Input, _ []byte) error {
	return b.reject(in.String())
}
func (b *base) Raw(v asn1.RawValue) error { return b.reject(v.String()) }
