// Copyright 2025 Anki Honnaiah. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"strings"
)

var (
	// ErrUnexpectedInput indicates that a constructed builder has no
	// transition accepting the input tag in its current state. The [Decode]
	// driver reacts to this error by retrying the input as an undecoded
	// [github.com/AnkiHonnaiah/asn1.RawValue].
	ErrUnexpectedInput = errors.New("no transition accepts the input")

	// ErrIncomplete indicates that a builder was asked to complete or yield
	// before all mandatory parts of its value were consumed.
	ErrIncomplete = errors.New("builder is not in an accepting state")
)

// StructureError reports that the stream of decoding events does not match
// the structure of the schema type: an unexpected tag, an event of the wrong
// kind, or a premature end. It corresponds to a misuse of the builder or a
// mismatch between schema and data, never to a malformed value.
type StructureError struct {
	Kind  string // the builder that received the event, e.g. "SEQUENCE AlgorithmIdentifier"
	Event string // the offending event or input, if known
	Err   error
}

// Error returns a description of the error.
func (e *StructureError) Error() string {
	var sb strings.Builder
	sb.WriteString("asn1: structure error")
	if e.Kind != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Kind)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Event != "" {
		sb.WriteString(" (input ")
		sb.WriteString(e.Event)
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *StructureError) Unwrap() error {
	return e.Err
}

// ConstraintError reports a well-formed value that violates a [Constraint] of
// its builder. The value is discarded; the builder retains the error and
// fails all subsequent yields.
type ConstraintError struct {
	Kind string // the builder whose constraint failed
	Err  error
}

// Error returns a description of the error.
func (e *ConstraintError) Error() string {
	s := "asn1: constraint violated"
	if e.Kind != "" {
		s += " in " + e.Kind
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error.
func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// ContentError reports content octets that are structurally placed correctly
// but malformed for the expected type, such as a BOOLEAN of two octets or an
// invalid calendar date.
type ContentError struct {
	Kind string // the value kind that failed to parse
	Err  error
}

// Error returns a description of the error.
func (e *ContentError) Error() string {
	s := "asn1: invalid content"
	if e.Kind != "" {
		s += " for " + e.Kind
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error.
func (e *ContentError) Unwrap() error {
	return e.Err
}

// errConstraint is a shorthand constructing a [ConstraintError].
func errConstraint(kind string) error {
	return &ConstraintError{Kind: kind, Err: errors.New("value rejected by constraint")}
}
