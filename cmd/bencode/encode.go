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

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/jsonc"
	"github.com/xgfone/bencode/bencode"
)

func runEncode(e *env, args []string) error {
	var hexInput, hexOutput bool

	flagSet := newFlagSet(e, "encode", &hexInput)
	flagSet.BoolVar(&hexOutput, "hex-output", false, "write the bencoded bytes as hex")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}

	data, err := readInput(e, flagSet.Args(), hexInput)
	if err != nil {
		return err
	}

	v, err := jsonToValue(jsonc.ToJSON(data))
	if err != nil {
		return err
	}

	out, err := bencode.Encode(v)
	if err != nil {
		return errors.Wrap(err, "encode bencode")
	}
	e.logger.Debug("encoded value", "kind", v.Kind(), "bytes", len(out))

	if hexOutput {
		out = append([]byte(hex.EncodeToString(out)), '\n')
	}
	_, err = e.stdout.Write(out)
	return err
}

// jsonToValue converts a JSON document to a bencoded value. Strings with
// the "hex:" prefix are decoded as raw bytes, which is the inverse of
// the decode command. Anything but whitespace after the value is an error.
func jsonToValue(data []byte) (bencode.Value, error) {
	value, dataType, end, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse JSON")
	}
	if rest := bytes.TrimLeftFunc(data[end:], unicode.IsSpace); len(rest) > 0 {
		return nil, errors.Newf("unexpected data after the JSON value at offset %d", len(data)-len(rest))
	}
	return parseJSONValue(dataType, value)
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (bencode.Value, error) {
	switch dataType {
	case jsonparser.String:
		s, err := parseJSONString(data)
		if err != nil {
			return nil, err
		}
		return bencode.Str(s), nil

	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			return nil, errors.Newf("number %s is not a 64-bit integer", data)
		}
		return bencode.Int(i), nil

	case jsonparser.Array:
		l := bencode.List{}
		var elemErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
			if elemErr != nil {
				return
			} else if err != nil {
				elemErr = err
				return
			}

			v, err := parseJSONValue(dataType, value)
			if err != nil {
				elemErr = errors.Wrapf(err, "index %d", len(l))
				return
			}
			l = append(l, v)
		})
		if err == nil {
			err = elemErr
		}
		if err != nil {
			return nil, err
		}
		return l, nil

	case jsonparser.Object:
		d := bencode.Dictionary{}
		err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
			// ObjectEach passes keys already unescaped.
			k, err := unhexText(string(key))
			if err != nil {
				return err
			}

			v, err := parseJSONValue(dataType, value)
			if err != nil {
				return errors.Wrapf(err, "key %q", k)
			}
			d[k] = v
			return nil
		})
		if err != nil {
			return nil, err
		}
		return d, nil

	default:
		return nil, errors.Newf("JSON %v %s has no bencode equivalent", dataType, data)
	}
}

func parseJSONString(data []byte) (string, error) {
	s, err := jsonparser.ParseString(data)
	if err != nil {
		return "", errors.Wrap(err, "parse JSON string")
	}
	return unhexText(s)
}

func unhexText(s string) (string, error) {
	if rest, ok := strings.CutPrefix(s, hexPrefix); ok {
		b, err := hex.DecodeString(rest)
		if err != nil {
			return "", errors.Wrapf(err, "decode %q", s)
		}
		return string(b), nil
	}
	return s, nil
}
