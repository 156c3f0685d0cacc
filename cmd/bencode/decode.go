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
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/xgfone/bencode/bencode"
	"gopkg.in/yaml.v3"
)

// hexPrefix marks a byte string rendered as hex, because it is not valid
// UTF-8 or because its text would itself start with the prefix.
const hexPrefix = "hex:"

// cborEncMode writes CBOR with the Core Deterministic Encoding, so the same
// bencoded input always produces the same CBOR bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	if cborEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("bencode: cbor encoder initialization failed: " + err.Error())
	}
}

func runDecode(e *env, args []string) error {
	var (
		hexInput bool
		format   string
		compact  bool
		slurp    bool
		utf8     bool
	)

	flagSet := newFlagSet(e, "decode", &hexInput)
	flagSet.StringVarP(&format, "format", "f", "json", "output format: json, yaml or cbor")
	flagSet.BoolVarP(&compact, "compact", "c", false, "compact JSON output (no indentation)")
	flagSet.BoolVarP(&slurp, "slurp", "s", false, "read a sequence of values as one list")
	flagSet.BoolVar(&utf8, "utf8", false, "reject byte strings that are not valid UTF-8")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}

	data, err := readInput(e, flagSet.Args(), hexInput)
	if err != nil {
		return err
	}

	var opts []bencode.DecodeOption
	if utf8 {
		opts = append(opts, bencode.RequireUTF8())
	}

	value, err := decodeInput(e, data, slurp, opts...)
	if err != nil {
		return err
	}

	return writeValue(e.stdout, value, format, compact)
}

func decodeInput(e *env, data []byte, slurp bool, opts ...bencode.DecodeOption) (bencode.Value, error) {
	if len(data) == 0 {
		return nil, errors.New("empty input: expected bencoded data")
	}

	if !slurp {
		v, err := bencode.DecodeAll(data, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "decode bencode")
		}
		return v, nil
	}

	var values bencode.List
	d := bencode.NewDecoder(data, opts...)
	for d.More() {
		v, err := d.Decode()
		if err != nil {
			return nil, errors.Wrapf(err, "decode bencode sequence item %d", len(values))
		}
		e.logger.Debug("decoded item", "index", len(values), "kind", v.Kind(), "end", d.Offset())
		values = append(values, v)
	}
	return values, nil
}

func writeValue(w io.Writer, v bencode.Value, format string, compact bool) (err error) {
	var out []byte
	switch strings.ToLower(format) {
	case "json":
		if compact {
			out, err = json.Marshal(toNative(v, false))
		} else {
			out, err = json.MarshalIndent(toNative(v, false), "", "  ")
		}
		out = append(out, '\n')

	case "yaml", "yml":
		out, err = yaml.Marshal(toNative(v, false))

	case "cbor":
		out, err = cborEncMode.Marshal(toNative(v, true))

	default:
		return errors.Newf("unknown output format %q", format)
	}

	if err != nil {
		return errors.Wrapf(err, "encode %s", format)
	}
	_, err = w.Write(out)
	return err
}

// toNative converts the value to the plain Go types understood by the
// JSON, YAML and CBOR encoders. With binary, byte strings that are not
// text become CBOR byte strings instead of hex text.
func toNative(v bencode.Value, binary bool) interface{} {
	switch vv := v.(type) {
	case bencode.Integer:
		return int64(vv)

	case bencode.ByteString:
		if !binary {
			return textOf(string(vv))
		} else if !vv.IsText() {
			return vv.Bytes()
		}
		return string(vv)

	case bencode.List:
		l := make([]interface{}, len(vv))
		for i, e := range vv {
			l[i] = toNative(e, binary)
		}
		return l

	case bencode.Dictionary:
		m := make(map[string]interface{}, len(vv))
		for k, e := range vv {
			m[textOf(k)] = toNative(e, binary)
		}
		return m

	default:
		return nil
	}
}

func textOf(s string) string {
	if bencode.Str(s).IsText() && !strings.HasPrefix(s, hexPrefix) {
		return s
	}
	return hexPrefix + hex.EncodeToString([]byte(s))
}
