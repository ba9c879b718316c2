// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"math/big"
	"time"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/der"
)

// status is the tri-state lifecycle of a leaf builder.
type status uint8

const (
	statusEmpty   status = iota // no value consumed yet
	statusValid                 // a value passed its constraint and is stored
	statusInvalid               // an event failed; the first error is retained
)

// primitive is the shared core of all leaf builders. It stores at most one
// value of type T, checks the value against an optional [Constraint] before
// it becomes observable and notifies the parent once a value is stored.
// After a failure the first error is retained and returned by all subsequent
// events and yields.
type primitive[T any] struct {
	base
	parent     Acceptor
	constraint Constraint[T]
	value      T
	status     status
	err        error
}

func (p *primitive[T]) init(kind string, parent Acceptor, c Constraint[T]) {
	p.kind = kind
	p.parent = parent
	p.constraint = c
}

// set stores v if it satisfies the constraint and notifies the parent. A
// rejected value is never stored, not even transiently.
func (p *primitive[T]) set(v T) error {
	switch p.status {
	case statusInvalid:
		return p.err
	case statusValid:
		return p.fail(&StructureError{Kind: p.kind, Err: errors.New("value already consumed")})
	}
	if p.constraint != nil && !p.constraint.IsAccepted(v) {
		p.status = statusInvalid
		p.err = errConstraint(p.kind)
		return p.err
	}
	p.value = v
	p.status = statusValid
	if p.parent != nil {
		return p.parent.Accept()
	}
	return nil
}

// fail records err as the builder's terminal error unless an earlier error is
// already recorded.
func (p *primitive[T]) fail(err error) error {
	if p.status != statusInvalid {
		p.status = statusInvalid
		p.err = err
	}
	return p.err
}

// content records a malformed-content failure.
func (p *primitive[T]) content(err error) error {
	return p.fail(&ContentError{Kind: p.kind, Err: err})
}

// Yield returns the stored value.
func (p *primitive[T]) Yield() (T, error) {
	if p.status != statusValid {
		var zero T
		if p.err != nil {
			return zero, p.err
		}
		return zero, &StructureError{Kind: p.kind, Err: ErrIncomplete}
	}
	return p.value, nil
}

// Reset discards the stored value and any recorded error.
func (p *primitive[T]) Reset() {
	var zero T
	p.value = zero
	p.status = statusEmpty
	p.err = nil
}

// IsCompleted reports whether a value has been stored.
func (p *primitive[T]) IsCompleted() bool {
	return p.status == statusValid
}

//region BOOLEAN

// BoolBuilder builds an ASN.1 BOOLEAN value.
type BoolBuilder struct {
	primitive[bool]
}

// NewBool returns a builder for a BOOLEAN value. The constraint may be nil.
func NewBool(parent Acceptor, c Constraint[bool]) *BoolBuilder {
	b := &BoolBuilder{}
	b.init("BOOLEAN", parent, c)
	return b
}

func (b *BoolBuilder) Bool(v bool) error { return b.set(v) }

func (b *BoolBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	v, err := der.ParseBool(raw)
	if err != nil {
		return b.content(err)
	}
	return b.set(v)
}

//endregion

//region INTEGER

// IntegerBuilder builds an ASN.1 INTEGER value of arbitrary size.
type IntegerBuilder struct {
	primitive[*big.Int]
}

// NewInteger returns a builder for an INTEGER value. The constraint may be
// nil.
func NewInteger(parent Acceptor, c Constraint[*big.Int]) *IntegerBuilder {
	b := &IntegerBuilder{}
	b.init("INTEGER", parent, c)
	return b
}

func (b *IntegerBuilder) Integer(v *big.Int) error { return b.set(v) }

func (b *IntegerBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	v, err := der.ParseInteger(raw)
	if err != nil {
		return b.content(err)
	}
	return b.set(v)
}

//endregion

//region ENUMERATED

// EnumeratedBuilder builds an ASN.1 ENUMERATED value. A [ValueConstraint]
// restricting the value to the declared enumerators is the typical
// constraint.
type EnumeratedBuilder struct {
	primitive[int64]
}

// NewEnumerated returns a builder for an ENUMERATED value. The constraint may
// be nil.
func NewEnumerated(parent Acceptor, c Constraint[int64]) *EnumeratedBuilder {
	b := &EnumeratedBuilder{}
	b.init("ENUMERATED", parent, c)
	return b
}

func (b *EnumeratedBuilder) Enumerated(v int64) error { return b.set(v) }

func (b *EnumeratedBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	v, err := der.ParseInt64(raw)
	if err != nil {
		return b.content(err)
	}
	return b.set(v)
}

//endregion

//region BIT STRING

// BitStringBuilder builds an ASN.1 BIT STRING value.
type BitStringBuilder struct {
	primitive[asn1.BitString]
}

// NewBitString returns a builder for a BIT STRING value. The constraint may
// be nil.
func NewBitString(parent Acceptor, c Constraint[asn1.BitString]) *BitStringBuilder {
	b := &BitStringBuilder{}
	b.init("BIT STRING", parent, c)
	return b
}

func (b *BitStringBuilder) BitString(v asn1.BitString) error { return b.set(v) }

func (b *BitStringBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	v, err := der.ParseBitString(raw)
	if err != nil {
		return b.content(err)
	}
	return b.set(v)
}

//endregion

//region OCTET STRING

// OctetStringBuilder builds an ASN.1 OCTET STRING value.
type OctetStringBuilder struct {
	primitive[[]byte]
}

// NewOctetString returns a builder for an OCTET STRING value. The constraint
// may be nil.
func NewOctetString(parent Acceptor, c Constraint[[]byte]) *OctetStringBuilder {
	b := &OctetStringBuilder{}
	b.init("OCTET STRING", parent, c)
	return b
}

func (b *OctetStringBuilder) OctetString(v []byte) error { return b.set(v) }

func (b *OctetStringBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	// every byte string is a valid OCTET STRING
	return b.set(raw)
}

//endregion

//region NULL

// NullBuilder builds an ASN.1 NULL value.
type NullBuilder struct {
	primitive[asn1.Null]
}

// NewNull returns a builder for a NULL value.
func NewNull(parent Acceptor) *NullBuilder {
	b := &NullBuilder{}
	b.init("NULL", parent, nil)
	return b
}

func (b *NullBuilder) Null() error { return b.set(asn1.Null{}) }

func (b *NullBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	if err := der.ParseNull(raw); err != nil {
		return b.content(err)
	}
	return b.set(asn1.Null{})
}

//endregion

//region OBJECT IDENTIFIER

// OIDBuilder builds an ASN.1 OBJECT IDENTIFIER value.
type OIDBuilder struct {
	primitive[asn1.ObjectIdentifier]
}

// NewOID returns a builder for an OBJECT IDENTIFIER value. The constraint may
// be nil.
func NewOID(parent Acceptor, c Constraint[asn1.ObjectIdentifier]) *OIDBuilder {
	b := &OIDBuilder{}
	b.init("OBJECT IDENTIFIER", parent, c)
	return b
}

func (b *OIDBuilder) OID(v asn1.ObjectIdentifier) error { return b.set(v) }

func (b *OIDBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	v, err := der.ParseOID(raw)
	if err != nil {
		return b.content(err)
	}
	return b.set(v)
}

//endregion

//region Character string types

var errInvalidChars = errors.New("string contains invalid characters")

// StringBuilder builds an ASN.1 character string value of a single flavor,
// identified by its universal tag number. Alphabet membership is validated on
// receipt; an event of a different string flavor is a structure error.
type StringBuilder struct {
	primitive[string]
	flavor uint
}

// NewString returns a builder for the character string type identified by the
// universal tag number flavor, one of [asn1.TagUTF8String],
// [asn1.TagNumericString], [asn1.TagPrintableString], [asn1.TagIA5String] or
// [asn1.TagVisibleString]. The constraint may be nil.
func NewString(flavor uint, parent Acceptor, c Constraint[string]) *StringBuilder {
	b := &StringBuilder{flavor: flavor}
	b.init(stringKind(flavor), parent, c)
	return b
}

// stringKind returns the ASN.1 name of a universal string tag number.
func stringKind(flavor uint) string {
	switch flavor {
	case asn1.TagUTF8String:
		return "UTF8String"
	case asn1.TagNumericString:
		return "NumericString"
	case asn1.TagPrintableString:
		return "PrintableString"
	case asn1.TagIA5String:
		return "IA5String"
	case asn1.TagVisibleString:
		return "VisibleString"
	default:
		return "character string"
	}
}

// str handles a string event of the given flavor.
func (b *StringBuilder) str(flavor uint, valid bool, v string) error {
	if flavor != b.flavor {
		return b.reject(stringKind(flavor))
	}
	if !valid {
		return b.content(errInvalidChars)
	}
	return b.set(v)
}

func (b *StringBuilder) UTF8String(v asn1.UTF8String) error {
	return b.str(asn1.TagUTF8String, v.IsValid(), string(v))
}

func (b *StringBuilder) NumericString(v asn1.NumericString) error {
	return b.str(asn1.TagNumericString, v.IsValid(), string(v))
}

func (b *StringBuilder) PrintableString(v asn1.PrintableString) error {
	return b.str(asn1.TagPrintableString, v.IsValid(), string(v))
}

func (b *StringBuilder) IA5String(v asn1.IA5String) error {
	return b.str(asn1.TagIA5String, v.IsValid(), string(v))
}

func (b *StringBuilder) VisibleString(v asn1.VisibleString) error {
	return b.str(asn1.TagVisibleString, v.IsValid(), string(v))
}

func (b *StringBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	v := string(raw)
	var valid bool
	switch b.flavor {
	case asn1.TagUTF8String:
		valid = asn1.UTF8String(v).IsValid()
	case asn1.TagNumericString:
		valid = asn1.NumericString(v).IsValid()
	case asn1.TagPrintableString:
		valid = asn1.PrintableString(v).IsValid()
	case asn1.TagIA5String:
		valid = asn1.IA5String(v).IsValid()
	case asn1.TagVisibleString:
		valid = asn1.VisibleString(v).IsValid()
	}
	if !valid {
		return b.content(errInvalidChars)
	}
	return b.set(v)
}

//endregion

//region Time types

// TimeBuilder builds an ASN.1 UTCTime or GeneralizedTime value, identified by
// its universal tag number.
type TimeBuilder struct {
	primitive[time.Time]
	flavor uint
}

// NewTime returns a builder for the time type identified by the universal tag
// number flavor, one of [asn1.TagUTCTime] or [asn1.TagGeneralizedTime]. The
// constraint may be nil.
func NewTime(flavor uint, parent Acceptor, c Constraint[time.Time]) *TimeBuilder {
	b := &TimeBuilder{flavor: flavor}
	kind := "UTCTime"
	if flavor == asn1.TagGeneralizedTime {
		kind = "GeneralizedTime"
	}
	b.init(kind, parent, c)
	return b
}

func (b *TimeBuilder) UTCTime(v time.Time) error {
	if b.flavor != asn1.TagUTCTime {
		return b.reject("UTCTime")
	}
	return b.set(v)
}

func (b *TimeBuilder) GeneralizedTime(v time.Time) error {
	if b.flavor != asn1.TagGeneralizedTime {
		return b.reject("GeneralizedTime")
	}
	return b.set(v)
}

func (b *TimeBuilder) TaggedPrimitive(_ Input, raw []byte) error {
	var v time.Time
	var err error
	if b.flavor == asn1.TagUTCTime {
		v, err = der.ParseUTCTime(raw)
	} else {
		v, err = der.ParseGeneralizedTime(raw)
	}
	if err != nil {
		return b.content(err)
	}
	return b.set(v)
}

//endregion

//region Raw values

// RawBuilder accepts any single data value verbatim. It implements ANY fields
// and extension points: a composite routes unmatched inputs here via a
// transition on [InputRaw].
type RawBuilder struct {
	primitive[asn1.RawValue]
}

// NewRaw returns a builder capturing one undecoded data value. The constraint
// may be nil.
func NewRaw(parent Acceptor, c Constraint[asn1.RawValue]) *RawBuilder {
	b := &RawBuilder{}
	b.init("ANY", parent, c)
	return b
}

func (b *RawBuilder) Raw(v asn1.RawValue) error { return b.set(v) }

//endregion
