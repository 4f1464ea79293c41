// Copyright 2026 Blink Labs Software
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

// rxedit inspects and edits Pokemon Essentials save files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/blinklabs-io/rxedit"
	"github.com/blinklabs-io/rxedit/internal/config"
	"github.com/spf13/pflag"
)

type command struct {
	usage string
	run   func(*app, []string) error
}

var commands = map[string]command{
	"inspect": {
		usage: "inspect [--format text|json|cbor] FILE",
		run:   runInspect,
	},
	"set": {
		usage: "set [--money N] [--level I=L]... [--stat I:STAT=V]... (-o OUT | --in-place) FILE",
		run:   runSet,
	},
	"dump": {
		usage: "dump FILE",
		run:   runDump,
	},
	"diff": {
		usage: "diff [--no-color] FILE FILE",
		run:   runDiff,
	},
	"batch": {
		usage: "batch JOBFILE",
		run:   runBatch,
	},
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func (f *globalFlags) register(flagset *pflag.FlagSet) {
	flagset.StringVar(
		&f.configPath,
		"config",
		"",
		"path to YAML config file (default $"+config.EnvConfigPath+")",
	)
	flagset.StringVar(
		&f.logLevel,
		"log-level",
		"",
		"override the configured log level",
	)
}

// app carries what every subcommand needs once its flags are parsed
type app struct {
	name   string
	usage  string
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *slog.Logger
	global globalFlags
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		usage(stderr)
		return 2
	}
	a := &app{
		name:   args[0],
		usage:  cmd.usage,
		stdout: stdout,
		stderr: stderr,
	}
	if err := cmd.run(a, args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "rxedit %s: %s\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: rxedit COMMAND [flags]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  rxedit %s\n", commands[name].usage)
	}
}

// flagSet returns a flag set for the subcommand with the global flags
// already registered
func (a *app) flagSet() *pflag.FlagSet {
	flagset := pflag.NewFlagSet(a.name, pflag.ContinueOnError)
	flagset.SetOutput(a.stderr)
	a.global.register(flagset)
	return flagset
}

// parse parses args, then loads the config and builds the logger. It
// checks that exactly nargs positional arguments remain.
func (a *app) parse(flagset *pflag.FlagSet, args []string, nargs int) error {
	if err := flagset.Parse(args); err != nil {
		return err
	}
	if flagset.NArg() != nargs {
		fmt.Fprintf(a.stderr, "usage: rxedit %s\n", a.usage)
		return fmt.Errorf("expected %d argument(s), got %d", nargs, flagset.NArg())
	}
	cfg, err := config.Load(a.global.configPath)
	if err != nil {
		return err
	}
	if a.global.logLevel != "" {
		cfg.Logging.Level = a.global.logLevel
	}
	logger, err := cfg.Logging.NewLogger(a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// decoderOptions configures sessions from the decoder config
func (a *app) decoderOptions() []rxedit.SessionOptionFunc {
	return []rxedit.SessionOptionFunc{
		rxedit.WithKnownClasses(a.cfg.Decoder.KnownClasses...),
		rxedit.WithMaxDepth(a.cfg.Decoder.MaxDepth),
	}
}

// openSession reads path into a new session
func (a *app) openSession(path string) (*rxedit.Session, error) {
	s := rxedit.NewSession(
		append(
			[]rxedit.SessionOptionFunc{rxedit.WithLogger(a.logger)},
			a.decoderOptions()...,
		)...,
	)
	if err := loadFile(s, path); err != nil {
		return nil, err
	}
	return s, nil
}

func loadFile(s *rxedit.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Load(path, data)
}

// writeFile replaces path atomically with data. The temp file is unique
// to this call and lives next to path so the rename stays on one
// filesystem.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	// CreateTemp makes the file 0600
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
