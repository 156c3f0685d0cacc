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

import "unicode/utf8"

// Text returns the ByteString of the UTF-8 text s.
//
// It returns a *TextError if s is not valid UTF-8.
func Text(s string) (ByteString, error) {
	if !utf8.ValidString(s) {
		return "", &TextError{Data: []byte(s)}
	}
	return ByteString(s), nil
}

// Text returns the byte string as UTF-8 text.
//
// It returns a *TextError if the bytes are not valid UTF-8.
func (s ByteString) Text() (string, error) {
	if !utf8.ValidString(string(s)) {
		return "", &TextError{Data: []byte(s)}
	}
	return string(s), nil
}

// IsText reports whether the byte string is valid UTF-8.
func (s ByteString) IsText() bool { return utf8.ValidString(string(s)) }

// TextDictionary returns a Dictionary from a map keyed by text.
//
// It returns a *TextError carrying the offending key if any key
// is not valid UTF-8.
func TextDictionary(m map[string]Value) (Dictionary, error) {
	d := make(Dictionary, len(m))
	for k, v := range m {
		if !utf8.ValidString(k) {
			return nil, &TextError{Data: []byte(k)}
		}
		d[k] = v
	}
	return d, nil
}

// TextKeys returns the sorted keys of the dictionary as text.
//
// It returns a *TextError carrying the first offending key, in key order,
// if a key is not valid UTF-8.
func (d Dictionary) TextKeys() ([]string, error) {
	keys := d.Keys()
	for _, k := range keys {
		if !utf8.ValidString(k) {
			return nil, &TextError{Data: []byte(k)}
		}
	}
	return keys, nil
}
