// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkix implements schema builders for structures shared by PKIX
// certificate profiles, as specified in [RFC 5280]. The builders are concrete
// applications of the schema package: each wires the fields of one ASN.1 type
// into a composite builder and yields a plain Go value.
//
// [RFC 5280]: https://www.rfc-editor.org/rfc/rfc5280
package pkix

import (
	"math/big"
	"time"

	"github.com/AnkiHonnaiah/asn1"
)

// AlgorithmIdentifier identifies a cryptographic algorithm together with its
// optional parameters.
//
//	AlgorithmIdentifier ::= SEQUENCE {
//		algorithm  OBJECT IDENTIFIER,
//		parameters ANY DEFINED BY algorithm OPTIONAL }
type AlgorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters AlgorithmParameters
}

// AlgorithmParameters holds the parameters of an [AlgorithmIdentifier]. At
// most one field is set; parameter structures known to this package decode
// into their typed field while anything else is captured in Raw.
type AlgorithmParameters struct {
	Null bool
	DSS  *DSSParameters
	Raw  *asn1.RawValue
}

// Absent reports whether the parameters were omitted entirely.
func (p AlgorithmParameters) Absent() bool {
	return !p.Null && p.DSS == nil && p.Raw == nil
}

// DSSParameters are the domain parameters of the DSA signature algorithm.
//
//	Dss-Parms ::= SEQUENCE { p INTEGER, q INTEGER, g INTEGER }
type DSSParameters struct {
	P, Q, G *big.Int
}

// AttributeTypeAndValue is a single attribute of a distinguished name.
type AttributeTypeAndValue struct {
	Type  asn1.ObjectIdentifier
	Value AttributeValue
}

// AttributeValue is the value CHOICE of an [AttributeTypeAndValue]. Known
// string flavors decode into String with Flavor holding the universal tag
// number of the flavor; any other value is captured in Raw.
type AttributeValue struct {
	Flavor uint
	String string
	Raw    *asn1.RawValue
}

// RelativeDistinguishedName is a non-empty set of attributes.
type RelativeDistinguishedName []AttributeTypeAndValue

// RDNSequence is an X.501 name: a sequence of relative distinguished names.
type RDNSequence []RelativeDistinguishedName

// Validity is the validity interval of a certificate. Each bound is encoded
// as UTCTime through 2049 and as GeneralizedTime afterwards.
type Validity struct {
	NotBefore, NotAfter time.Time
}

// Extension is a single certificate extension.
type Extension struct {
	ID       asn1.ObjectIdentifier
	Critical bool
	Value    []byte
}
