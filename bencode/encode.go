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
)

// Encode returns the canonical encoding of v.
//
// The only error is ErrNilValue, returned when v is nil or contains a nil
// element or dictionary value.
func Encode(v Value) ([]byte, error) {
	return Append(nil, v)
}

// Append appends the canonical encoding of v to dst and returns
// the extended buffer. On failure, it returns dst unmodified.
func Append(dst []byte, v Value) ([]byte, error) {
	b, err := appendValue(dst, v)
	if err != nil {
		return dst, err
	}
	return b, nil
}

func appendValue(b []byte, v Value) ([]byte, error) {
	switch vv := v.(type) {
	case Integer:
		b = append(b, 'i')
		b = strconv.AppendInt(b, int64(vv), 10)
		return append(b, 'e'), nil

	case ByteString:
		return appendString(b, string(vv)), nil

	case List:
		var err error
		b = append(b, 'l')
		for _, e := range vv {
			if b, err = appendValue(b, e); err != nil {
				return nil, err
			}
		}
		return append(b, 'e'), nil

	case Dictionary:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		var err error
		b = append(b, 'd')
		for _, k := range keys {
			b = appendString(b, k)
			if b, err = appendValue(b, vv[k]); err != nil {
				return nil, err
			}
		}
		return append(b, 'e'), nil

	default:
		return nil, ErrNilValue
	}
}

func appendString(b []byte, s string) []byte {
	b = strconv.AppendInt(b, int64(len(s)), 10)
	b = append(b, ':')
	return append(b, s...)
}
