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

package metainfo

import (
	"github.com/cockroachdb/errors"
	"github.com/xgfone/bencode/bencode"
)

// ErrInvalidField is returned when a field of the metainfo is missing
// or has an unexpected kind or value.
var ErrInvalidField = errors.New("metainfo: invalid field")

func fieldError(key string, format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidField, "'%s': "+format, append([]interface{}{key}, args...)...)
}

func asDict(v bencode.Value, key string) (bencode.Dictionary, error) {
	d, ok := v.(bencode.Dictionary)
	if !ok {
		return nil, fieldError(key, "expect a dictionary, but got %s", kindOf(v))
	}
	return d, nil
}

func getString(d bencode.Dictionary, key string, required bool) (string, error) {
	v, ok := d[key]
	if !ok {
		if required {
			return "", fieldError(key, "missing")
		}
		return "", nil
	}

	s, ok := v.(bencode.ByteString)
	if !ok {
		return "", fieldError(key, "expect a string, but got %s", kindOf(v))
	}
	return string(s), nil
}

func getInt(d bencode.Dictionary, key string, required bool) (int64, error) {
	v, ok := d[key]
	if !ok {
		if required {
			return 0, fieldError(key, "missing")
		}
		return 0, nil
	}

	i, ok := v.(bencode.Integer)
	if !ok {
		return 0, fieldError(key, "expect an integer, but got %s", kindOf(v))
	}
	return int64(i), nil
}

func toStrings(v bencode.Value, key string) ([]string, error) {
	l, ok := v.(bencode.List)
	if !ok {
		return nil, fieldError(key, "expect a list, but got %s", kindOf(v))
	}

	ss := make([]string, len(l))
	for i, e := range l {
		s, ok := e.(bencode.ByteString)
		if !ok {
			return nil, fieldError(key, "the element %d is %s, not string", i, kindOf(e))
		}
		ss[i] = string(s)
	}
	return ss, nil
}

func fromStrings(ss []string) bencode.List {
	l := make(bencode.List, len(ss))
	for i, s := range ss {
		l[i] = bencode.Str(s)
	}
	return l
}

func kindOf(v bencode.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
