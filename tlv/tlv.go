// Package tlv implements decoding of the tag-length-value (TLV) format used by
// the Basic Encoding Rules (BER) and related encoding rules as specified in
// [Rec. ITU-T X.690]. See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// This package deals with the syntactic layer of TLV-encoding: it parses the
// identifier and length octets of a data value into a [Header]. The semantic
// layer, that is decoding content octets into Go values, is implemented by the
// der and schema packages.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"strconv"

	"github.com/AnkiHonnaiah/asn1"
)

// LengthIndefinite when used as a magic number for the length of a [Header]
// indicates that the data value is encoded using the constructed
// indefinite-length format. The indefinite-length format is valid BER but not
// DER; consumers working with DER reject such headers.
const LengthIndefinite = -1

// Header represents a TLV header. The [Header.Length] may be [LengthIndefinite]
// if an indefinite-length encoding is used. It is invalid to use the
// indefinite-length encoding when [Header.Constructed] = false.
type Header struct {
	Tag         asn1.Tag
	Constructed bool
	Length      int
}

// String returns a string representation of h.
func (h Header) String() string {
	s := h.Tag.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	s += ":" + strconv.Itoa(h.Length)
	return s
}
