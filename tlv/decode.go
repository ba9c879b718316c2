package tlv

import (
	"errors"
	"io"

	"github.com/AnkiHonnaiah/asn1"
	"github.com/AnkiHonnaiah/asn1/internal/vlq"
)

var (
	// ErrTruncated indicates that the data ends before the end of the data
	// value announced by its header.
	ErrTruncated = errors.New("tlv: data value is truncated")
	// ErrEndOfContents indicates that a reserved end-of-contents marker was
	// found where a data value was expected.
	ErrEndOfContents = errors.New("tlv: unexpected end-of-contents marker")

	errTagTooLarge      = errors.New("tlv: tag number too large")
	errTagNotMinimal    = errors.New("tlv: long-form tag used for small tag number")
	errLengthTooLarge   = errors.New("tlv: length too large")
	errLengthNotMinimal = errors.New("tlv: length is not minimally encoded")
	errPrimitiveIndef   = errors.New("tlv: primitive value with indefinite length")
)

// cursor is an io.ByteReader over a byte slice keeping track of its offset.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) ReadByte() (byte, error) {
	if c.off >= len(c.data) {
		return 0, io.EOF
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

// DecodeHeader parses the identifier and length octets of a data value
// encoding at the beginning of data. It returns the parsed [Header] and the
// number of bytes it occupies. If the encoding is invalid an error is
// returned.
//
// If data is empty the returned error is io.EOF. DecodeHeader validates that a
// definite-length data value fits into data; if it does not, the error is
// [ErrTruncated]. An end-of-contents marker yields [ErrEndOfContents]: the
// definite-length encodings consumed by this module never contain one.
func DecodeHeader(data []byte) (h Header, n int, err error) {
	c := &cursor{data: data}
	b, err := c.ReadByte()
	if err != nil {
		// io.EOF stays io.EOF
		return Header{}, 0, err
	}
	h = Header{
		Tag:         asn1.Tag{Class: asn1.Class(b >> 6), Number: uint(b & 0x1f)},
		Constructed: b&0x20 == 0x20,
	}

	// If the bottom five bits are set, the tag number is base-128 encoded
	// afterwards.
	if b&0x1f == 0x1f {
		num, err := vlq.ReadMinimal[uint](c)
		if err != nil {
			return h, c.off, noEOF(err)
		}
		if num > asn1.MaxTagNumber {
			return h, c.off, errTagTooLarge
		}
		if num < 31 {
			return h, c.off, errTagNotMinimal
		}
		h.Tag.Number = num
	}

	if b, err = c.ReadByte(); err != nil {
		return h, c.off, noEOF(err)
	}
	switch {
	case b&0x80 == 0:
		// The length is encoded in the bottom 7 bits.
		h.Length = int(b & 0x7f)
	case b == 0x80:
		if !h.Constructed {
			return h, c.off, errPrimitiveIndef
		}
		h.Length = LengthIndefinite
	default:
		// Bottom 7 bits give the number of length bytes to follow.
		numBytes := int(b & 0x7f)
		for i := 0; i < numBytes; i++ {
			if b, err = c.ReadByte(); err != nil {
				return h, c.off, noEOF(err)
			}
			if i == 0 && b == 0 {
				return h, c.off, errLengthNotMinimal
			}
			if h.Length >= 1<<23 {
				// We can't shift h.Length up without overflowing.
				return h, c.off, errLengthTooLarge
			}
			h.Length <<= 8
			h.Length |= int(b)
		}
		if h.Length < 128 {
			return h, c.off, errLengthNotMinimal
		}
	}

	if h.Tag == (asn1.Tag{}) && !h.Constructed {
		return h, c.off, ErrEndOfContents
	}
	if h.Length > len(data)-c.off {
		return h, c.off, ErrTruncated
	}
	return h, c.off, nil
}

// noEOF converts io.EOF into io.ErrUnexpectedEOF. Any other error is returned
// unchanged.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
