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

// Package color provides coloring of unified diffs for terminals.
//
// The default scheme colors hunk headers cyan, deletions red and insertions green:
//
//	textdiff.Unified(x, y, color.Colors())
//
// Individual parts can be overridden with [github.com/fatih/color] attributes:
//
//	textdiff.Unified(x, y, color.Colors(color.HunkHeaders(fatihcolor.FgYellow, fatihcolor.Bold)))
//
// Whether escape sequences are actually produced follows the fatih/color conventions (NO_COLOR,
// non-terminal output, color.NoColor).
package color

import (
	"github.com/fatih/color"

	"editdist.dev/editdist"
	"editdist.dev/editdist/internal/config"
)

// An Option overrides part of the color scheme in [Colors].
type Option func(*config.ColorConfig)

// HunkHeaders colors hunk headers, the "@@ ... @@" part of the unified diff.
func HunkHeaders(attrs ...color.Attribute) Option {
	f := color.New(attrs...).SprintFunc()
	return func(cc *config.ColorConfig) {
		cc.HunkHeader = f
	}
}

// Matches colors matching lines.
func Matches(attrs ...color.Attribute) Option {
	f := color.New(attrs...).SprintFunc()
	return func(cc *config.ColorConfig) {
		cc.Match = f
	}
}

// Deletes colors deleted lines.
func Deletes(attrs ...color.Attribute) Option {
	f := color.New(attrs...).SprintFunc()
	return func(cc *config.ColorConfig) {
		cc.Delete = f
	}
}

// Inserts colors inserted lines.
func Inserts(attrs ...color.Attribute) Option {
	f := color.New(attrs...).SprintFunc()
	return func(cc *config.ColorConfig) {
		cc.Insert = f
	}
}

// Colors enables colored unified diff output with the default scheme, adjusted by opts.
func Colors(opts ...Option) editdist.Option {
	cc := &config.ColorConfig{
		HunkHeader: color.New(color.FgCyan).SprintFunc(),
		Delete:     color.New(color.FgRed).SprintFunc(),
		Insert:     color.New(color.FgGreen).SprintFunc(),
	}
	for _, opt := range opts {
		opt(cc)
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Colors = cc
		return config.Colors
	}
}
