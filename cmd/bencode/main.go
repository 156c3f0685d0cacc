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

// bencode inspects and produces bencoded data from the command line.
//
//	bencode decode [-f json|yaml|cbor] [-c] [-s] [-x] [--utf8] [file]
//	bencode encode [-x] [file]
//	bencode validate [-x] [--utf8] [--max-depth n] [file]
//	bencode infohash [file]
//
// Input is read from the file argument, or from stdin without one.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is what a command reads from and writes to.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

var commands = []command{
	{"decode", "convert bencode to JSON, YAML or CBOR", runDecode},
	{"encode", "convert JSON (comments allowed) to bencode", runEncode},
	{"validate", "check that the input is exactly one bencoded value", runValidate},
	{"infohash", "print the info hash and magnet link of a .torrent file", runInfoHash},
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var verbose bool

	flagSet := pflag.NewFlagSet("bencode", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log debug messages to stderr")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return errors.New("missing command")
	}

	for _, cmd := range commands {
		if cmd.name == rest[0] {
			e.logger.Debug("running command", "command", cmd.name, "args", rest[1:])
			if err := cmd.run(e, rest[1:]); !errors.Is(err, errHelp) {
				return err
			}
			return nil
		}
	}
	return errors.Newf("unknown command %q", rest[0])
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: bencode [-v] <command> [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flagSet.FlagUsages())
}

// newFlagSet returns the flag set of a command, with the shared --hex flag.
func newFlagSet(e *env, name string, hexInput *bool) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("bencode "+name, pflag.ContinueOnError)
	flagSet.SetOutput(e.stderr)
	flagSet.BoolVarP(hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
	return flagSet
}

// parseFlags parses the command flags, returning errHelp for -h.
func parseFlags(flagSet *pflag.FlagSet, args []string) error {
	err := flagSet.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return errHelp
	}
	return err
}

var errHelp = errors.New("help requested")
