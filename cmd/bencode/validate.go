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
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/xgfone/bencode/bencode"
)

func runValidate(e *env, args []string) error {
	var (
		hexInput bool
		utf8     bool
		maxDepth int
	)

	flagSet := newFlagSet(e, "validate", &hexInput)
	flagSet.BoolVar(&utf8, "utf8", false, "require every byte string to be valid UTF-8")
	flagSet.IntVar(&maxDepth, "max-depth", bencode.DefaultMaxDepth, "maximum nesting depth, 0 for no limit")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}

	data, err := readInput(e, flagSet.Args(), hexInput)
	if err != nil {
		return err
	}

	opts := []bencode.DecodeOption{bencode.MaxDepth(maxDepth)}
	if utf8 {
		opts = append(opts, bencode.RequireUTF8())
	}

	v, err := bencode.DecodeAll(data, opts...)
	if err != nil {
		var de *bencode.DecodeError
		if errors.As(err, &de) {
			fmt.Fprintf(e.stdout, "invalid: %s at offset %d%s\n", de.Kind, de.Offset, excerpt(data, de.Offset))
		}
		return errors.Wrap(err, "validate")
	}

	fmt.Fprintf(e.stdout, "valid: %s, %d bytes\n", v.Kind(), len(data))
	return nil
}

// excerpt returns a short quoted excerpt of the input at offset.
func excerpt(data []byte, offset int) string {
	if offset >= len(data) {
		return " (end of input)"
	}

	end := offset + 16
	if end > len(data) {
		end = len(data)
	}
	return fmt.Sprintf(" near %q", data[offset:end])
}
