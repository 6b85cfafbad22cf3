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

// Package editdist computes minimum-cost edit distances between two slices and, on request, the
// edit scripts achieving them.
//
// The simple entry points are [Distance] and [Script], which work with unit costs: every
// insertion and deletion costs 1. For arbitrary cost functions — per-element, asymmetric, or
// floating point — and for feeding a custom script sink, use [Align] with a [Params] record.
//
// Two engines are used under the hood, selected automatically. Unit-cost alignments without
// substitutions run on Myers' O(ND) algorithm: O(D) space when only the distance is needed, the
// linear-space divide-and-conquer variant when a script is requested. Everything else runs on a
// Dijkstra shortest-path search over the implicit edit graph, which handles any non-negative
// cost function at the price of a larger search.
//
// Both engines honor an optional maximum cost: when the cheapest remaining alignment provably
// exceeds the cap the search stops early and a deterministic upper bound (and upper-bound
// script) is produced, or, with [MaxCostError], the call fails. This bounds the work spent on
// very dissimilar inputs.
//
// Note: For a line-by-line diff of text, please see [editdist.dev/editdist/textdiff].
//
// [editdist.dev/editdist/textdiff]: https://pkg.go.dev/editdist.dev/editdist/textdiff
package editdist
