// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"errors"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/der"
	"github.com/AnkiHonnaiah/asn1/tlv"
)

// DefaultMaxDepth is the nesting depth limit used when [DecodeOptions] does
// not specify one. The wire format imposes no bound of its own; the limit
// keeps recursion on hostile inputs in check.
const DefaultMaxDepth = 32

// DecodeOptions configures [DecodeWithOptions].
type DecodeOptions struct {
	// MaxDepth bounds the nesting depth of the encoding. Zero means
	// [DefaultMaxDepth].
	MaxDepth int
}

// Decode walks the DER encoding of a single data value in data and feeds the
// resulting events into root. After the walk root must be in an accepting
// state and data must contain no trailing bytes.
//
// A data value that no transition of the receiving composite claims is
// retried as an [asn1.RawValue] before the walk fails; this is how ANY fields
// and extension points capture verbatim bytes.
func Decode(data []byte, root Builder) error {
	return DecodeWithOptions(data, root, DecodeOptions{})
}

// DecodeWithOptions works like [Decode] using the given options.
func DecodeWithOptions(data []byte, root Builder, opts DecodeOptions) error {
	depth := opts.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	rest, err := decodeValue(data, root, depth)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return &StructureError{Kind: "DER value", Err: errors.New("trailing bytes after the value")}
	}
	if !root.IsCompleted() {
		return &StructureError{Kind: "DER value", Err: ErrIncomplete}
	}
	return nil
}

// decodeValue decodes one data value at the beginning of data and returns the
// remaining bytes.
func decodeValue(data []byte, b Builder, depth int) ([]byte, error) {
	if depth <= 0 {
		return nil, &StructureError{Kind: "DER value", Err: errors.New("maximum nesting depth exceeded")}
	}
	h, n, err := tlv.DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if h.Length == tlv.LengthIndefinite {
		return nil, &ContentError{Kind: "length", Err: errors.New("indefinite length is not valid DER")}
	}
	content := data[n : n+h.Length]
	rest := data[n+h.Length:]
	if h.Constructed {
		err = decodeConstructed(h, content, b, depth)
	} else {
		err = decodePrimitive(h, content, b)
	}
	return rest, err
}

// decodeConstructed delivers the start event for h, walks the nested data
// values and delivers the end event.
func decodeConstructed(h tlv.Header, content []byte, b Builder, depth int) error {
	in := Input{Class: h.Tag.Class, Number: h.Tag.Number}
	var start, end func() error
	switch {
	case h.Tag.Class == asn1.ClassUniversal && h.Tag.Number == asn1.TagSequence:
		start, end = b.SequenceStart, b.SequenceEnd
	case h.Tag.Class == asn1.ClassUniversal && h.Tag.Number == asn1.TagSet:
		start, end = b.SetStart, b.SetEnd
	case h.Tag.Class == asn1.ClassUniversal:
		// DER encodes strings and times in primitive form, so a constructed
		// universal value of any other type can only be captured raw.
		return fallbackRaw(b, h, content, nil)
	default:
		start = func() error { return b.TaggedStart(in) }
		end = func() error { return b.TaggedEnd(in) }
	}

	if err := start(); err != nil {
		if errors.Is(err, ErrUnexpectedInput) {
			// the subtree is skipped, not walked
			return fallbackRaw(b, h, content, err)
		}
		return err
	}
	for len(content) > 0 {
		var err error
		if content, err = decodeValue(content, b, depth-1); err != nil {
			return err
		}
	}
	return end()
}

// decodePrimitive parses the content octets of h according to its universal
// type and delivers the corresponding event.
func decodePrimitive(h tlv.Header, content []byte, b Builder) error {
	in := Input{Class: h.Tag.Class, Number: h.Tag.Number}
	if h.Tag.Class != asn1.ClassUniversal {
		err := b.TaggedPrimitive(in, bytes.Clone(content))
		if errors.Is(err, ErrUnexpectedInput) {
			return fallbackRaw(b, h, content, err)
		}
		return err
	}

	var err error
	switch h.Tag.Number {
	case asn1.TagBoolean:
		v, perr := der.ParseBool(content)
		if perr != nil {
			return parseFailure(b, h, content, "BOOLEAN", perr)
		}
		err = b.Bool(v)
	case asn1.TagInteger:
		v, perr := der.ParseInteger(content)
		if perr != nil {
			return parseFailure(b, h, content, "INTEGER", perr)
		}
		err = b.Integer(v)
	case asn1.TagEnumerated:
		v, perr := der.ParseInt64(content)
		if perr != nil {
			return parseFailure(b, h, content, "ENUMERATED", perr)
		}
		err = b.Enumerated(v)
	case asn1.TagBitString:
		v, perr := der.ParseBitString(content)
		if perr != nil {
			return parseFailure(b, h, content, "BIT STRING", perr)
		}
		err = b.BitString(v)
	case asn1.TagOctetString:
		err = b.OctetString(bytes.Clone(content))
	case asn1.TagNull:
		if perr := der.ParseNull(content); perr != nil {
			return parseFailure(b, h, content, "NULL", perr)
		}
		err = b.Null()
	case asn1.TagOID:
		v, perr := der.ParseOID(content)
		if perr != nil {
			return parseFailure(b, h, content, "OBJECT IDENTIFIER", perr)
		}
		err = b.OID(v)
	case asn1.TagUTF8String:
		err = b.UTF8String(asn1.UTF8String(content))
	case asn1.TagNumericString:
		err = b.NumericString(asn1.NumericString(content))
	case asn1.TagPrintableString:
		err = b.PrintableString(asn1.PrintableString(content))
	case asn1.TagIA5String:
		err = b.IA5String(asn1.IA5String(content))
	case asn1.TagVisibleString:
		err = b.VisibleString(asn1.VisibleString(content))
	case asn1.TagUTCTime:
		v, perr := der.ParseUTCTime(content)
		if perr != nil {
			return parseFailure(b, h, content, "UTCTime", perr)
		}
		err = b.UTCTime(v)
	case asn1.TagGeneralizedTime:
		v, perr := der.ParseGeneralizedTime(content)
		if perr != nil {
			return parseFailure(b, h, content, "GeneralizedTime", perr)
		}
		err = b.GeneralizedTime(v)
	default:
		// no typed event for this universal type
		return fallbackRaw(b, h, content, nil)
	}
	if errors.Is(err, ErrUnexpectedInput) {
		return fallbackRaw(b, h, content, err)
	}
	return err
}

// fallbackRaw retries the data value as an [asn1.RawValue]. If the raw event
// is not accepted either, orig (the error of the typed attempt) takes
// precedence.
func fallbackRaw(b Builder, h tlv.Header, content []byte, orig error) error {
	if err := b.Raw(rawValue(h, content)); err != nil {
		if orig != nil {
			return orig
		}
		return err
	}
	return nil
}

// parseFailure handles malformed content octets. The position may be an ANY
// field whose consumer wants the bytes regardless, so a raw capture is
// attempted; if the schema expected a typed value the parse error stands.
func parseFailure(b Builder, h tlv.Header, content []byte, kind string, perr error) error {
	if err := b.Raw(rawValue(h, content)); err != nil {
		return &ContentError{Kind: kind, Err: perr}
	}
	return nil
}

func rawValue(h tlv.Header, content []byte) asn1.RawValue {
	return asn1.RawValue{Tag: h.Tag, Constructed: h.Constructed, Bytes: bytes.Clone(content)}
}
