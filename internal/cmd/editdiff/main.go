// Copyright 2025 The editdist Authors
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

// editdiff compares two files line by line and prints a unified diff.
//
// Usage:
//
//	editdiff [-context n] [-max-cost n] [-color] old new
package main

import (
	"flag"
	"fmt"
	"os"

	"editdist.dev/editdist"
	"editdist.dev/editdist/textdiff"
	"editdist.dev/editdist/textdiff/color"
)

var (
	context  = flag.Int("context", 3, "number of matching lines around each hunk")
	maxCost  = flag.Int("max-cost", 0, "if > 0, bound the search and settle for a non-minimal diff")
	colorize = flag.Bool("color", false, "color the output for terminals")
)

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected 2 args, got %d", len(args))
	}

	old, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading old file: %v", err)
	}
	new, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading new file: %v", err)
	}

	opts := []editdist.Option{editdist.Context(*context)}
	if *maxCost > 0 {
		opts = append(opts, editdist.MaxCost(*maxCost))
	}
	if *colorize {
		opts = append(opts, color.Colors())
	}

	diff := textdiff.UnifiedBytes(old, new, opts)
	if len(diff) == 0 {
		return nil
	}

	fmt.Printf("--- %s\n", args[0])
	fmt.Printf("+++ %s\n", args[1])
	os.Stdout.Write(diff)

	return nil
}
