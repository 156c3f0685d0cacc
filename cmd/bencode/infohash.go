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

	"github.com/xgfone/bencode/metainfo"
)

func runInfoHash(e *env, args []string) error {
	var hexInput bool

	flagSet := newFlagSet(e, "infohash", &hexInput)
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}

	data, err := readInput(e, flagSet.Args(), hexInput)
	if err != nil {
		return err
	}

	mi, err := metainfo.Parse(data)
	if err != nil {
		return err
	}

	info, err := mi.Info()
	if err != nil {
		return err
	}

	e.logger.Debug("parsed torrent", "name", info.Name, "pieces", info.CountPieces(), "info_bytes", len(mi.InfoBytes))

	fmt.Fprintf(e.stdout, "name:      %s\n", info.Name)
	fmt.Fprintf(e.stdout, "length:    %d\n", info.TotalLength())
	fmt.Fprintf(e.stdout, "info hash: %s\n", mi.InfoHash())
	fmt.Fprintf(e.stdout, "magnet:    %s\n", mi.Magnet(info.Name, mi.InfoHash()))
	return nil
}
