// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkix

import (
	"fmt"
	"math"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/schema"
)

// AttributeTypeAndValueBuilder builds a single name attribute.
type AttributeTypeAndValueBuilder struct {
	schema.Sequence
	typ   *schema.OIDBuilder
	value *attributeValueBuilder
}

// NewAttributeTypeAndValue returns a builder for an AttributeTypeAndValue
// value.
func NewAttributeTypeAndValue(parent schema.Acceptor) *AttributeTypeAndValueBuilder {
	b := &AttributeTypeAndValueBuilder{}
	b.typ = schema.NewOID(b, nil)
	b.value = newAttributeValue(b)
	b.Sequence.Init(parent, b, "AttributeTypeAndValue", []schema.Field{
		{Input: schema.Universal(asn1.TagOID), Presence: schema.Present},
		{Input: schema.InputChoice, Presence: schema.Present},
	})
	return b
}

// CreateChild implements [schema.Composite].
func (b *AttributeTypeAndValueBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.typ, nil
	case 2:
		return b.value, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

// Yield returns the accumulated AttributeTypeAndValue.
func (b *AttributeTypeAndValueBuilder) Yield() (AttributeTypeAndValue, error) {
	var v AttributeTypeAndValue
	var err error
	if v.Type, err = b.typ.Yield(); err != nil {
		return AttributeTypeAndValue{}, err
	}
	if v.Value, err = b.value.Yield(); err != nil {
		return AttributeTypeAndValue{}, err
	}
	return v, nil
}

// Reset implements [schema.Builder].
func (b *AttributeTypeAndValueBuilder) Reset() {
	b.Sequence.Reset()
	b.typ.Reset()
	b.value.Reset()
}

// attributeValueBuilder builds the value CHOICE of an attribute. The
// alternatives cover the DirectoryString flavors that occur in names; anything
// else falls through to the raw alternative.
type attributeValueBuilder struct {
	schema.Choice
	printable *schema.StringBuilder
	utf8      *schema.StringBuilder
	ia5       *schema.StringBuilder
	raw       *schema.RawBuilder
}

func newAttributeValue(parent schema.Acceptor) *attributeValueBuilder {
	b := &attributeValueBuilder{}
	b.printable = schema.NewString(asn1.TagPrintableString, b, nil)
	b.utf8 = schema.NewString(asn1.TagUTF8String, b, nil)
	b.ia5 = schema.NewString(asn1.TagIA5String, b, nil)
	b.raw = schema.NewRaw(b, nil)
	b.Choice.Init(parent, b, "AttributeValue", []schema.Field{
		{Input: schema.Universal(asn1.TagPrintableString)},
		{Input: schema.Universal(asn1.TagUTF8String)},
		{Input: schema.Universal(asn1.TagIA5String)},
		{Input: schema.InputRaw},
	}, nil)
	return b
}

func (b *attributeValueBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.printable, nil
	case 2:
		return b.utf8, nil
	case 3:
		return b.ia5, nil
	case 4:
		return b.raw, nil
	}
	return nil, fmt.Errorf("no alternative %d", e.ID)
}

func (b *attributeValueBuilder) Yield() (AttributeValue, error) {
	str := func(flavor uint, sb *schema.StringBuilder) (AttributeValue, error) {
		v, err := sb.Yield()
		if err != nil {
			return AttributeValue{}, err
		}
		return AttributeValue{Flavor: flavor, String: v}, nil
	}
	switch b.Chosen() {
	case 1:
		return str(asn1.TagPrintableString, b.printable)
	case 2:
		return str(asn1.TagUTF8String, b.utf8)
	case 3:
		return str(asn1.TagIA5String, b.ia5)
	case 4:
		v, err := b.raw.Yield()
		if err != nil {
			return AttributeValue{}, err
		}
		return AttributeValue{Raw: &v}, nil
	}
	return AttributeValue{}, schema.ErrIncomplete
}

func (b *attributeValueBuilder) Reset() {
	b.Choice.Reset()
	b.printable.Reset()
	b.utf8.Reset()
	b.ia5.Reset()
	b.raw.Reset()
}

// RelativeDistinguishedNameBuilder builds one RDN: a SET OF at least one
// attribute.
type RelativeDistinguishedNameBuilder struct {
	schema.SetOf[AttributeTypeAndValue]
}

// NewRelativeDistinguishedName returns a builder for a
// RelativeDistinguishedName value.
func NewRelativeDistinguishedName(parent schema.Acceptor) *RelativeDistinguishedNameBuilder {
	b := &RelativeDistinguishedNameBuilder{}
	elem := NewAttributeTypeAndValue(b)
	b.SetOf.Init(parent, "AttributeTypeAndValue", elem,
		[]schema.Input{schema.Universal(asn1.TagSequence)},
		schema.SizeConstraint{Min: 1, Max: math.MaxInt})
	return b
}

// Yield returns the accumulated RelativeDistinguishedName.
func (b *RelativeDistinguishedNameBuilder) Yield() (RelativeDistinguishedName, error) {
	vs, err := b.SetOf.Yield()
	if err != nil {
		return nil, err
	}
	return RelativeDistinguishedName(vs), nil
}

// RDNSequenceBuilder builds an X.501 name.
type RDNSequenceBuilder struct {
	schema.SequenceOf[RelativeDistinguishedName]
}

// NewRDNSequence returns a builder for an RDNSequence value. An empty name is
// a valid RDNSequence.
func NewRDNSequence(parent schema.Acceptor) *RDNSequenceBuilder {
	b := &RDNSequenceBuilder{}
	elem := NewRelativeDistinguishedName(b)
	b.SequenceOf.Init(parent, "RelativeDistinguishedName", elem,
		[]schema.Input{schema.Universal(asn1.TagSet)}, nil)
	return b
}

// Yield returns the accumulated RDNSequence.
func (b *RDNSequenceBuilder) Yield() (RDNSequence, error) {
	vs, err := b.SequenceOf.Yield()
	if err != nil {
		return nil, err
	}
	return RDNSequence(vs), nil
}
