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

// Package textdiff provides functions to efficiently compare text line by line.
package textdiff

import (
	"bytes"
	"fmt"
	"strings"
	"unsafe"

	"editdist.dev/editdist"
	"editdist.dev/editdist/internal/config"
	"editdist.dev/editdist/internal/edits"
	"editdist.dev/editdist/internal/myers"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

// Unified compares the lines in x and y and returns the changes necessary to convert from one to
// the other in unified format.
//
// The following options are supported: [editdist.Context], [editdist.MaxCost] (which trades an
// optimal diff for bounded work on very dissimilar inputs), and [color.Colors].
//
// Important: The output is not guaranteed to be stable and may change with minor version
// upgrades. DO NOT rely on the output being stable.
func Unified(x, y string, opts ...editdist.Option) string {
	// This hackery lets us support both string and []byte types with the same implementation
	// without copying the inputs in or the outputs out. It's safe because we never modify the
	// inputs or retain the output anywhere.
	xp, yp := unsafe.StringData(x), unsafe.StringData(y)
	out := UnifiedBytes(unsafe.Slice(xp, len(x)), unsafe.Slice(yp, len(y)), opts)
	return unsafe.String(unsafe.SliceData(out), len(out))
}

// UnifiedBytes compares the lines in x and y and returns the changes necessary to convert from
// one to the other in unified format.
//
// The following options are supported: [editdist.Context], [editdist.MaxCost] (which trades an
// optimal diff for bounded work on very dissimilar inputs), and [color.Colors].
//
// Important: The output is not guaranteed to be stable and may change with minor version
// upgrades. DO NOT rely on the output being stable.
func UnifiedBytes(x, y []byte, opts []editdist.Option) []byte {
	cfg := config.FromOptions(opts, config.Context|config.MaxCost|config.Colors)

	xlines := bytes.SplitAfter(x, []byte{'\n'})
	ylines := bytes.SplitAfter(y, []byte{'\n'})

	// SplitAfter adds an empty element after the last '\n', we need to remove it because it
	// doesn't count as a line for diffs.
	if len(xlines[len(xlines)-1]) == 0 {
		xlines = xlines[:len(xlines)-1]
	}
	if len(ylines[len(ylines)-1]) == 0 {
		ylines = ylines[:len(ylines)-1]
	}

	lim := myers.Limit{Max: cfg.MaxCost, Valid: cfg.HasMaxCost}
	flags, _ := myers.DiffFunc(xlines, ylines, bytes.Equal, lim)
	hunks, _ := edits.Hunks(flags, len(xlines), len(ylines), cfg)
	if len(hunks) == 0 {
		return nil
	}

	// Format output.
	var b bytes.Buffer
	for i, h := range hunks {
		writeLine(&b, colorFn(cfg, colorHunkHeader),
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.S0+1, h.S1-h.S0, h.T0+1, h.T1-h.T0))
		for s, t := h.S0, h.T0; s < h.S1 || t < h.T1; {
			var prefix string
			var line []byte
			var cf func(a ...any) string
			switch {
			case flags[s]&edits.Delete != 0:
				prefix = prefixDelete
				line = xlines[s]
				cf = colorFn(cfg, colorDelete)
				s++
			case flags[t]&edits.Insert != 0:
				prefix = prefixInsert
				line = ylines[t]
				cf = colorFn(cfg, colorInsert)
				t++
			default:
				prefix = prefixMatch
				line = xlines[s]
				cf = colorFn(cfg, colorMatch)
				s++
				t++
			}
			missingNewline := i == len(hunks)-1 && (s == h.S1 || t == h.T1) && line[len(line)-1] != '\n'
			writeLine(&b, cf, prefix+strings.TrimSuffix(unsafeString(line), "\n"))
			if missingNewline {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return b.Bytes()
}

type colorKind int

const (
	colorHunkHeader colorKind = iota
	colorMatch
	colorDelete
	colorInsert
)

func colorFn(cfg config.Config, kind colorKind) func(a ...any) string {
	if cfg.Colors == nil {
		return nil
	}
	switch kind {
	case colorHunkHeader:
		return cfg.Colors.HunkHeader
	case colorMatch:
		return cfg.Colors.Match
	case colorDelete:
		return cfg.Colors.Delete
	case colorInsert:
		return cfg.Colors.Insert
	default:
		panic("never reached")
	}
}

// writeLine writes line plus a newline, applying cf to the line when set.
func writeLine(b *bytes.Buffer, cf func(a ...any) string, line string) {
	if cf != nil {
		b.WriteString(cf(line))
	} else {
		b.WriteString(line)
	}
	b.WriteByte('\n')
}

func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
