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
	"io"
	"os"
	"unicode"

	"github.com/cockroachdb/errors"
)

// readInput reads the input from the only positional argument, if any,
// or from stdin. When hexMode is true, the input is hex-encoded and
// whitespace in it is ignored.
func readInput(e *env, args []string, hexMode bool) (data []byte, err error) {
	switch len(args) {
	case 0:
		if data, err = io.ReadAll(e.stdin); err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
		e.logger.Debug("read input", "source", "stdin", "bytes", len(data))

	case 1:
		if data, err = os.ReadFile(args[0]); err != nil {
			return nil, errors.Wrapf(err, "read %s", args[0])
		}
		e.logger.Debug("read input", "source", args[0], "bytes", len(data))

	default:
		return nil, errors.Newf("expect at most one input file, got %d arguments", len(args))
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	n, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "decode hex input")
	}
	return decoded[:n], nil
}
