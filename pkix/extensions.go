// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkix

import (
	"fmt"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/schema"
)

// ExtensionBuilder builds a single certificate [Extension].
//
//	Extension ::= SEQUENCE {
//		extnID    OBJECT IDENTIFIER,
//		critical  BOOLEAN DEFAULT FALSE,
//		extnValue OCTET STRING }
type ExtensionBuilder struct {
	schema.Sequence
	id       *schema.OIDBuilder
	critical *schema.BoolBuilder
	value    *schema.OctetStringBuilder
}

// NewExtension returns a builder for an Extension value.
func NewExtension(parent schema.Acceptor) *ExtensionBuilder {
	b := &ExtensionBuilder{}
	b.id = schema.NewOID(b, nil)
	b.critical = schema.NewBool(b, nil)
	b.value = schema.NewOctetString(b, nil)
	b.Sequence.Init(parent, b, "Extension", []schema.Field{
		{Input: schema.Universal(asn1.TagOID), Presence: schema.Present},
		{Input: schema.Universal(asn1.TagBoolean), Presence: schema.Optional},
		{Input: schema.Universal(asn1.TagOctetString), Presence: schema.Present},
	})
	return b
}

// CreateChild implements [schema.Composite].
func (b *ExtensionBuilder) CreateChild(e schema.Element) (schema.Builder, error) {
	switch e.ID {
	case 1:
		return b.id, nil
	case 2:
		return b.critical, nil
	case 3:
		return b.value, nil
	}
	return nil, fmt.Errorf("no field %d", e.ID)
}

// Yield returns the accumulated Extension. An omitted critical field yields
// its DEFAULT FALSE.
func (b *ExtensionBuilder) Yield() (Extension, error) {
	var v Extension
	var err error
	if v.ID, err = b.id.Yield(); err != nil {
		return Extension{}, err
	}
	if b.critical.IsCompleted() {
		if v.Critical, err = b.critical.Yield(); err != nil {
			return Extension{}, err
		}
	}
	if v.Value, err = b.value.Yield(); err != nil {
		return Extension{}, err
	}
	return v, nil
}

// Reset implements [schema.Builder].
func (b *ExtensionBuilder) Reset() {
	b.Sequence.Reset()
	b.id.Reset()
	b.critical.Reset()
	b.value.Reset()
}

// ExtensionsBuilder builds the extensions list of a certificate. On the wire
// the list carries an EXPLICIT [3] tag around a SEQUENCE OF Extension.
type ExtensionsBuilder struct {
	schema.Explicit[[]Extension]
}

// NewExtensions returns a builder for an extensions list.
func NewExtensions(parent schema.Acceptor) *ExtensionsBuilder {
	b := &ExtensionsBuilder{}
	list := &schema.SequenceOf[Extension]{}
	elem := NewExtension(list)
	list.Init(b, "Extension", elem, []schema.Input{schema.Universal(asn1.TagSequence)}, nil)
	b.Explicit.Init(parent, "Extensions", list, []schema.Input{schema.Universal(asn1.TagSequence)})
	return b
}

var _ schema.ValueBuilder[[]Extension] = (*ExtensionsBuilder)(nil)
