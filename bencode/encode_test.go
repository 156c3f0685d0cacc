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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"zero", Int(0), "i0e"},
		{"positive", Int(123), "i123e"},
		{"negative", Int(-123), "i-123e"},
		{"max", Int(math.MaxInt64), "i9223372036854775807e"},
		{"min", Int(math.MinInt64), "i-9223372036854775808e"},
		{"empty string", Str(""), "0:"},
		{"string", Str("Hello"), "5:Hello"},
		{"binary string", Bytes([]byte{0, 'e', 0xff}), "3:\x00e\xff"},
		{"empty list", NewList(), "le"},
		{"nil list", List(nil), "le"},
		{"list", NewList(Str("Hello"), Int(123)), "l5:Helloi123ee"},
		{"nested list", NewList(NewList(), NewList(Int(1))), "lleli1eee"},
		{"empty dictionary", Dictionary{}, "de"},
		{"dictionary", Dictionary{"Hello": Int(123)}, "d5:Helloi123ee"},
		{"two keys", Dictionary{"Hello": Int(123), "World": Int(456)}, "d5:Helloi123e5:Worldi456ee"},
		{"byte order", Dictionary{"b": Int(1), "a": Int(2), "B": Int(3), "ab": Int(4), "": Int(5)}, "d0:i5e1:Bi3e1:ai2e2:abi4e1:bi1ee"},
		{"non-text keys", Dictionary{"\xff": Int(1), "z": Int(2), "\x00": Int(3)}, "d1:\x00i3e1:zi2e1:\xffi1ee"},
		{
			"nested dictionary",
			Dictionary{"info": Dictionary{"name": Str("a"), "length": Int(1)}, "announce": Str("url")},
			"d8:announce3:url4:infod6:lengthi1e4:name1:aee",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := Encode(test.value)
			require.NoError(t, err)
			require.Equal(t, test.want, string(b))
		})
	}
}

func TestEncodeCanonicalOrder(t *testing.T) {
	forward := make(Dictionary)
	forward["Hello"] = Int(123)
	forward["World"] = Int(456)

	reverse := make(Dictionary)
	reverse["World"] = Int(456)
	reverse["Hello"] = Int(123)

	b1, err := Encode(forward)
	require.NoError(t, err)
	b2, err := Encode(reverse)
	require.NoError(t, err)

	require.Equal(t, "d5:Helloi123e5:Worldi456ee", string(b1))
	require.Equal(t, b1, b2)
}

func TestEncodeNilValue(t *testing.T) {
	for _, v := range []Value{
		nil,
		List{Int(1), nil},
		Dictionary{"a": nil},
		Dictionary{"a": List{Dictionary{"b": nil}}},
	} {
		b, err := Encode(v)
		require.True(t, errors.Is(err, ErrNilValue), "value %s", Format(v))
		require.Nil(t, b)
	}
}

func TestAppend(t *testing.T) {
	b, err := Append([]byte("prefix:"), NewList(Int(1)))
	require.NoError(t, err)
	require.Equal(t, "prefix:li1ee", string(b))

	b, err = Append([]byte("prefix:"), List{nil})
	require.Error(t, err)
	require.Equal(t, "prefix:", string(b))
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		Int(0),
		Int(math.MinInt64),
		Str(""),
		Bytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		NewList(),
		NewList(Int(1), Str("two"), NewList(Int(3)), Dictionary{"four": Int(4)}),
		Dictionary{},
		Dictionary{
			"announce": Str("http://tracker/announce"),
			"info": Dictionary{
				"files": NewList(
					Dictionary{"length": Int(10), "path": NewList(Str("a"), Str("b.txt"))},
					Dictionary{"length": Int(0), "path": NewList(Str("c"))},
				),
				"name":         Str("root"),
				"piece length": Int(1 << 18),
				"pieces":       Bytes(make([]byte, 20)),
			},
			"\xff\xfe": NewList(),
		},
	}

	for _, v := range values {
		t.Run(Format(v), func(t *testing.T) {
			b, err := Encode(v)
			require.NoError(t, err)

			got, err := DecodeAll(b)
			require.NoError(t, err)
			require.True(t, Equal(v, got))
			if diff := cmp.Diff(v, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeEncodeNotIdempotentForUnsortedInput(t *testing.T) {
	input := []byte("d1:bi1e1:ai2ee")

	v, err := Decode(input)
	require.NoError(t, err)

	b, err := Encode(v)
	require.NoError(t, err)
	require.Equal(t, "d1:ai2e1:bi1ee", string(b))
	require.NotEqual(t, input, b)

	// Once canonical, decode and encode are stable.
	v2, err := Decode(b)
	require.NoError(t, err)
	require.True(t, Equal(v, v2))

	b2, err := Encode(v2)
	require.NoError(t, err)
	require.Equal(t, b, b2)
}
