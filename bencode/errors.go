// Copyright 2020 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bencode

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Predefine some sentinel errors, which are matched by errors.Is.
var (
	ErrInvalidFormat   = errors.New("bencode: invalid format")
	ErrIntegerOverflow = errors.New("bencode: integer overflow")
	ErrInvalidText     = errors.New("bencode: invalid UTF-8 text")
	ErrNilValue        = errors.New("bencode: nil value")

	// ErrKeyNotFound is returned by RawField when the key does not exist.
	ErrKeyNotFound = errors.New("bencode: key not found")
)

// ErrorKind is the kind of a DecodeError.
type ErrorKind uint8

const (
	// InvalidFormat is any violation of the grammar, including an unexpected
	// end of the buffer.
	InvalidFormat ErrorKind = iota + 1

	// IntegerOverflow means that an integer or a string length does not fit
	// in a signed 64-bit integer.
	IntegerOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case IntegerOverflow:
		return "integer overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// DecodeError is returned when the input cannot be decoded.
//
// Offset is the absolute byte position in the input at which decoding
// failed, not the start of the enclosing token. For a truncated input,
// it is where more data was first required.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Kind, e.Offset)
}

// Unwrap returns ErrInvalidFormat or ErrIntegerOverflow.
func (e *DecodeError) Unwrap() error {
	switch e.Kind {
	case IntegerOverflow:
		return ErrIntegerOverflow
	default:
		return ErrInvalidFormat
	}
}

// TextError is returned when a byte string, such as a dictionary key,
// is required as text but is not valid UTF-8.
type TextError struct {
	Data []byte
}

func (e *TextError) Error() string {
	return fmt.Sprintf("bencode: %q is not valid UTF-8 text", e.Data)
}

// Unwrap returns ErrInvalidText.
func (e *TextError) Unwrap() error { return ErrInvalidText }

func invalidFormat(offset int) error {
	return &DecodeError{Kind: InvalidFormat, Offset: offset}
}

func integerOverflow(offset int) error {
	return &DecodeError{Kind: IntegerOverflow, Offset: offset}
}
