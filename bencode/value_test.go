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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Equal(t, KindInteger, Int(1).Kind())
	assert.Equal(t, KindByteString, Str("").Kind())
	assert.Equal(t, KindList, NewList().Kind())
	assert.Equal(t, KindDictionary, Dictionary{}.Kind())

	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "string", KindByteString.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "dictionary", KindDictionary.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same integer", Int(1), Int(1), true},
		{"different integer", Int(1), Int(2), false},
		{"integer and string", Int(1), Str("1"), false},
		{"same string", Str("a"), Bytes([]byte("a")), true},
		{"different string", Str("a"), Str("b"), false},
		{"empty and nil list", NewList(), List(nil), true},
		{"same list", NewList(Int(1), Str("a")), NewList(Int(1), Str("a")), true},
		{"list order", NewList(Int(1), Str("a")), NewList(Str("a"), Int(1)), false},
		{"list length", NewList(Int(1)), NewList(Int(1), Int(1)), false},
		{"list and dictionary", NewList(), Dictionary{}, false},
		{"same dictionary", Dictionary{"a": Int(1), "b": Int(2)}, Dictionary{"b": Int(2), "a": Int(1)}, true},
		{"dictionary value", Dictionary{"a": Int(1)}, Dictionary{"a": Int(2)}, false},
		{"dictionary key", Dictionary{"a": Int(1)}, Dictionary{"b": Int(1)}, false},
		{"dictionary size", Dictionary{"a": Int(1)}, Dictionary{"a": Int(1), "b": Int(1)}, false},
		{"nested", Dictionary{"l": NewList(Dictionary{"x": Int(1)})}, Dictionary{"l": NewList(Dictionary{"x": Int(1)})}, true},
		{"nested difference", Dictionary{"l": NewList(Dictionary{"x": Int(1)})}, Dictionary{"l": NewList(Dictionary{"x": Int(0)})}, false},
		{"both nil", nil, nil, true},
		{"nil and value", nil, Int(0), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Equal(test.a, test.b))
			assert.Equal(t, test.want, Equal(test.b, test.a))
		})
	}
}

func TestDigestAndKey(t *testing.T) {
	a := Dictionary{"x": NewList(Int(1), Str("y")), "z": Dictionary{}}
	b := make(Dictionary)
	b["z"] = Dictionary{}
	b["x"] = NewList(Int(1), Str("y"))

	require.True(t, Equal(a, b))
	require.Equal(t, Digest(a), Digest(b))
	require.Equal(t, Key(a), Key(b))
	require.Equal(t, "d1:xli1e1:ye1:zdee", Key(a))

	c := Dictionary{"x": NewList(Int(1), Str("y"))}
	require.NotEqual(t, Digest(a), Digest(c))
	require.NotEqual(t, Key(a), Key(c))

	// Different kinds never share a key, e.g. the integer 1 and the string "1".
	seen := map[string]Value{}
	for _, v := range []Value{Int(1), Str("1"), NewList(Int(1)), Int(1), NewList(Int(1))} {
		seen[Key(v)] = v
	}
	require.Len(t, seen, 3)

	require.Panics(t, func() { Digest(NewList(nil)) })
}

func TestConstructorsCopy(t *testing.T) {
	raw := []byte("abc")
	s := Bytes(raw)
	raw[0] = 'x'
	require.Equal(t, ByteString("abc"), s)

	out := s.Bytes()
	out[0] = 'y'
	require.Equal(t, ByteString("abc"), s)

	elems := []Value{Int(1), Int(2)}
	l := NewList(elems...)
	elems[0] = Int(9)
	require.Equal(t, List{Int(1), Int(2)}, l)

	m := map[string]Value{"a": Int(1)}
	d := NewDictionary(m)
	m["b"] = Int(2)
	require.Equal(t, 1, d.Len())
}

func TestDictionaryAccessors(t *testing.T) {
	d := Dictionary{"b": Int(1), "a": Int(2), "\xff": Int(3), "A": Int(4)}
	require.Equal(t, []string{"A", "a", "b", "\xff"}, d.Keys())

	v, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, Int(2), v)

	_, ok = d.Get("c")
	require.False(t, ok)
}

func TestText(t *testing.T) {
	s, err := Text("안녕")
	require.NoError(t, err)
	require.Equal(t, ByteString("안녕"), s)
	require.True(t, s.IsText())

	text, err := s.Text()
	require.NoError(t, err)
	require.Equal(t, "안녕", text)

	_, err = Text("\xffabc")
	require.True(t, errors.Is(err, ErrInvalidText))

	var te *TextError
	require.True(t, errors.As(err, &te))
	require.Equal(t, []byte("\xffabc"), te.Data)

	_, err = Str("a\xc3").Text()
	require.True(t, errors.As(err, &te))
	require.Equal(t, []byte("a\xc3"), te.Data)
	require.False(t, Str("a\xc3").IsText())
}

func TestTextDictionary(t *testing.T) {
	d, err := TextDictionary(map[string]Value{"name": Str("x"), "😀": Int(1)})
	require.NoError(t, err)
	require.Equal(t, Dictionary{"name": Str("x"), "😀": Int(1)}, d)

	keys, err := d.TextKeys()
	require.NoError(t, err)
	require.Equal(t, []string{"name", "😀"}, keys)

	_, err = TextDictionary(map[string]Value{"ok": Int(1), "bad\xff": Int(2)})
	var te *TextError
	require.True(t, errors.As(err, &te))
	require.Equal(t, []byte("bad\xff"), te.Data)

	_, err = Dictionary{"a": Int(1), "\xfe": Int(2), "\xff": Int(3)}.TextKeys()
	require.True(t, errors.As(err, &te))
	require.Equal(t, []byte("\xfe"), te.Data)
}

func TestFormat(t *testing.T) {
	v := Dictionary{"b": NewList(Int(1), Str("x")), "a": Dictionary{}, "c": List{nil}}
	require.Equal(t, `{"a": {}, "b": [1, "x"], "c": [<nil>]}`, Format(v))
}
