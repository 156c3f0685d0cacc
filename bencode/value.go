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
	"slices"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Kind is the kind of a bencoded value.
type Kind uint8

// Predefine the kinds of the bencoded values.
const (
	KindInteger Kind = iota + 1
	KindByteString
	KindList
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindByteString:
		return "string"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a bencoded value, which is one of Integer, ByteString, List
// and Dictionary. No other type implements it.
type Value interface {
	Kind() Kind
	isValue()
}

var (
	_ Value = Integer(0)
	_ Value = ByteString("")
	_ Value = List(nil)
	_ Value = Dictionary(nil)
)

// Integer is a signed 64-bit bencoded integer.
type Integer int64

// ByteString is a bencoded string. The underlying Go string is used only
// as an immutable byte sequence and may contain any bytes.
type ByteString string

// List is an ordered list of bencoded values.
type List []Value

// Dictionary maps raw byte-string keys to bencoded values.
//
// The map order is irrelevant. Encode sorts the keys.
type Dictionary map[string]Value

func (Integer) Kind() Kind    { return KindInteger }
func (ByteString) Kind() Kind { return KindByteString }
func (List) Kind() Kind       { return KindList }
func (Dictionary) Kind() Kind { return KindDictionary }

func (Integer) isValue()    {}
func (ByteString) isValue() {}
func (List) isValue()       {}
func (Dictionary) isValue() {}

// Int returns the Integer of i.
func Int(i int64) Integer { return Integer(i) }

// Bytes returns a ByteString holding a copy of b.
func Bytes(b []byte) ByteString { return ByteString(b) }

// Str returns a ByteString holding the bytes of s as they are,
// without any UTF-8 validation. Use Text to validate.
func Str(s string) ByteString { return ByteString(s) }

// NewList returns a List of the values, copying the argument slice.
func NewList(values ...Value) List {
	return append(make(List, 0, len(values)), values...)
}

// NewDictionary returns a Dictionary holding a copy of m.
func NewDictionary(m map[string]Value) Dictionary {
	d := make(Dictionary, len(m))
	for k, v := range m {
		d[k] = v
	}
	return d
}

// Int64 returns the integer as int64.
func (i Integer) Int64() int64 { return int64(i) }

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Bytes returns a copy of the raw bytes.
func (s ByteString) Bytes() []byte { return []byte(s) }

// Len returns the number of the bytes.
func (s ByteString) Len() int { return len(s) }

// Len returns the number of the elements.
func (l List) Len() int { return len(l) }

// Len returns the number of the keys.
func (d Dictionary) Len() int { return len(d) }

// Get returns the value of the key and reports whether it exists.
func (d Dictionary) Get(key string) (v Value, ok bool) {
	v, ok = d[key]
	return
}

// Keys returns the keys in byte-lexicographic order, that's, the order
// in which they are encoded.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Equal reports whether a and b are structurally equal: the same kind and,
// recursively, the same content. Dictionaries are equal when they have the
// same set of keys with equal values, whatever order they were built in.
//
// Two nil values are equal; nil is never equal to a non-nil value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv

	case ByteString:
		bv, ok := b.(ByteString)
		return ok && av == bv

	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	case Dictionary:
		bv, ok := b.(Dictionary)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if w, ok := bv[k]; !ok || !Equal(v, w) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// DigestSize is the size of the digest returned by Digest.
const DigestSize = 32

// Digest returns the BLAKE3 hash of the canonical encoding of v.
//
// Values that are Equal always have the same digest, so it can be used
// to index or deduplicate trees. It panics if v contains a nil value.
func Digest(v Value) [DigestSize]byte {
	return blake3.Sum256(mustEncode(v))
}

// Key returns the canonical encoding of v as a string, which is usable as
// a Go map key: two values have the same Key if and only if they are Equal.
// It panics if v contains a nil value.
func Key(v Value) string {
	return string(mustEncode(v))
}

func mustEncode(v Value) []byte {
	b, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}

// Format renders v in a short human-readable form, such as
// {"a": [1, "b"]}, mainly for debugging and test output.
func Format(v Value) string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func format(sb *strings.Builder, v Value) {
	switch vv := v.(type) {
	case nil:
		sb.WriteString("<nil>")
	case Integer:
		sb.WriteString(vv.String())
	case ByteString:
		sb.WriteString(strconv.Quote(string(vv)))
	case List:
		sb.WriteByte('[')
		for i, e := range vv {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, e)
		}
		sb.WriteByte(']')
	case Dictionary:
		sb.WriteByte('{')
		for i, k := range vv.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			format(sb, vv[k])
		}
		sb.WriteByte('}')
	}
}
