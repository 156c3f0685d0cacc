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
	"math"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// DefaultMaxDepth is the default maximum nesting depth of lists and
// dictionaries accepted by a Decoder.
const DefaultMaxDepth = 512

// DecodeOption is used to configure a Decoder.
type DecodeOption func(*Decoder)

// RequireUTF8 makes the decoder reject every byte string, including
// the dictionary keys, that is not valid UTF-8. The error is an
// InvalidFormat at the first byte of the string content.
func RequireUTF8() DecodeOption {
	return func(d *Decoder) { d.requireUTF8 = true }
}

// MaxDepth sets the maximum nesting depth of lists and dictionaries.
// A value that is nested deeper fails with an InvalidFormat at its lead
// byte. n <= 0 removes the limit.
func MaxDepth(n int) DecodeOption {
	return func(d *Decoder) { d.maxDepth = n }
}

// Decoder decodes the bencoded values from an in-memory buffer.
//
// The buffer must not be modified while the decoder is in use,
// but the decoded values never share memory with it.
type Decoder struct {
	buf []byte
	pos int

	depth       int
	maxDepth    int
	requireUTF8 bool
}

// NewDecoder returns a new Decoder reading from the start of buf.
func NewDecoder(buf []byte, opts ...DecodeOption) *Decoder {
	d := &Decoder{buf: buf, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Offset returns the current position of the decoder in the buffer,
// that's, the number of the bytes consumed.
func (d *Decoder) Offset() int { return d.pos }

// More reports whether there are unconsumed bytes in the buffer.
func (d *Decoder) More() bool { return d.pos < len(d.buf) }

// Decode decodes the next complete value and advances the decoder just
// past it. On failure, it returns a *DecodeError and the decoder stays
// where it was.
func (d *Decoder) Decode() (Value, error) {
	start := d.pos
	v, err := d.value()
	if err != nil {
		d.pos, d.depth = start, 0
		return nil, err
	}
	return v, nil
}

// Decode decodes one value from the start of buf.
//
// The bytes following the first complete value are not inspected.
// Use DecodeAll to reject them.
func Decode(buf []byte, opts ...DecodeOption) (Value, error) {
	return NewDecoder(buf, opts...).Decode()
}

// DecodeAll is the same as Decode, but requires that buf contains exactly
// one value. Trailing bytes are an InvalidFormat error at the first of them.
func DecodeAll(buf []byte, opts ...DecodeOption) (Value, error) {
	d := NewDecoder(buf, opts...)
	v, err := d.Decode()
	if err != nil {
		return nil, err
	} else if d.More() {
		return nil, invalidFormat(d.pos)
	}
	return v, nil
}

// RawField returns the exact bytes of the value stored under key in the
// dictionary at the start of buf, such as the "info" dictionary of
// a torrent. The whole top-level dictionary is validated. If the key
// occurs more than once, the last one wins, the same as Decode.
//
// The returned slice aliases buf.
func RawField(buf []byte, key string, opts ...DecodeOption) ([]byte, error) {
	d := NewDecoder(buf, opts...)
	if len(buf) == 0 || buf[0] != 'd' {
		return nil, invalidFormat(0)
	}

	var raw []byte
	var found bool
	d.pos, d.depth = 1, 1
	for {
		if d.pos >= len(d.buf) {
			return nil, invalidFormat(d.pos)
		} else if d.buf[d.pos] == 'e' {
			break
		} else if !isDigit(d.buf[d.pos]) {
			return nil, invalidFormat(d.pos)
		}

		k, err := d.byteString()
		if err != nil {
			return nil, err
		}

		start := d.pos
		if _, err = d.value(); err != nil {
			return nil, err
		}

		if string(k) == key {
			raw, found = buf[start:d.pos:d.pos], true
		}
	}

	if !found {
		return nil, errors.Wrapf(ErrKeyNotFound, "key %q", key)
	}
	return raw, nil
}

func (d *Decoder) value() (Value, error) {
	if d.pos >= len(d.buf) {
		return nil, invalidFormat(d.pos)
	}

	switch c := d.buf[d.pos]; {
	case c == 'i':
		return d.integer()
	case isDigit(c):
		return d.byteString()
	case c == 'l':
		return d.list()
	case c == 'd':
		return d.dictionary()
	default:
		return nil, invalidFormat(d.pos)
	}
}

func (d *Decoder) expect(c byte) error {
	if d.pos >= len(d.buf) || d.buf[d.pos] != c {
		return invalidFormat(d.pos)
	}
	d.pos++
	return nil
}

func (d *Decoder) enter() error {
	if d.maxDepth > 0 && d.depth >= d.maxDepth {
		return invalidFormat(d.pos)
	}
	d.depth++
	return nil
}

// integer decodes "i<digits>e".
func (d *Decoder) integer() (Value, error) {
	d.pos++ // 'i'

	if d.pos >= len(d.buf) {
		return nil, invalidFormat(d.pos)
	}

	var i int64
	switch c := d.buf[d.pos]; {
	case c == '0':
		// A zero is never followed by another digit, so "i0123e" and
		// "i00e" fail at the terminator check below.
		d.pos++

	case c == '-':
		d.pos++
		if d.pos >= len(d.buf) || !isNonZeroDigit(d.buf[d.pos]) {
			return nil, invalidFormat(d.pos)
		}

		n, err := d.digits(1 << 63)
		if err != nil {
			return nil, err
		}
		i = -int64(n-1) - 1

	case isNonZeroDigit(c):
		n, err := d.digits(math.MaxInt64)
		if err != nil {
			return nil, err
		}
		i = int64(n)

	default:
		return nil, invalidFormat(d.pos)
	}

	if err := d.expect('e'); err != nil {
		return nil, err
	}
	return Integer(i), nil
}

// byteString decodes "<length>:<bytes>".
//
// The length may have leading zeros, such as "05:hello".
func (d *Decoder) byteString() (ByteString, error) {
	n, err := d.digits(math.MaxInt64)
	if err != nil {
		return "", err
	} else if err = d.expect(':'); err != nil {
		return "", err
	}

	if n > uint64(len(d.buf)-d.pos) {
		return "", invalidFormat(d.pos)
	}

	end := d.pos + int(n)
	s := d.buf[d.pos:end]
	if d.requireUTF8 && !utf8.Valid(s) {
		return "", invalidFormat(d.pos)
	}

	d.pos = end
	return ByteString(s), nil
}

// list decodes "l<value>...e".
func (d *Decoder) list() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	d.pos++ // 'l'

	l := List{}
	for {
		if d.pos >= len(d.buf) {
			return nil, invalidFormat(d.pos)
		} else if d.buf[d.pos] == 'e' {
			d.pos++
			break
		}

		v, err := d.value()
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}

	d.depth--
	return l, nil
}

// dictionary decodes "d<key><value>...e". The keys may be in any order,
// and a repeated key overwrites the earlier one.
func (d *Decoder) dictionary() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	d.pos++ // 'd'

	dict := Dictionary{}
	for {
		if d.pos >= len(d.buf) {
			return nil, invalidFormat(d.pos)
		} else if d.buf[d.pos] == 'e' {
			d.pos++
			break
		} else if !isDigit(d.buf[d.pos]) {
			return nil, invalidFormat(d.pos)
		}

		k, err := d.byteString()
		if err != nil {
			return nil, err
		}

		v, err := d.value()
		if err != nil {
			return nil, err
		}
		dict[string(k)] = v
	}

	d.depth--
	return dict, nil
}

// digits accumulates a non-empty run of decimal digits, failing with
// IntegerOverflow at the digit that would make the number exceed limit.
func (d *Decoder) digits(limit uint64) (uint64, error) {
	start := d.pos

	var n uint64
	for ; d.pos < len(d.buf) && isDigit(d.buf[d.pos]); d.pos++ {
		if n > limit/10 {
			return 0, integerOverflow(d.pos)
		}
		n *= 10

		digit := uint64(d.buf[d.pos] - '0')
		if n > limit-digit {
			return 0, integerOverflow(d.pos)
		}
		n += digit
	}

	if d.pos == start {
		return 0, invalidFormat(d.pos)
	}
	return n, nil
}

func isDigit(c byte) bool        { return '0' <= c && c <= '9' }
func isNonZeroDigit(c byte) bool { return '1' <= c && c <= '9' }
