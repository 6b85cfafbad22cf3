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

package editdist

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match      Op = iota // Two elements are equal
	Delete               // A deletion of an element of the left slice
	Insert               // An insertion of an element of the right slice
	Substitute           // A replacement of an element of the left slice by one of the right
)

// Edit describes a single edit of a script.
//
//   - For Match, X and Y are set to their respective elements and Cost is zero.
//   - For Delete, X is set to the deleted element of the left slice and Y is the zero value.
//   - For Insert, Y is set to the inserted element of the right slice and X is the zero value.
//   - For Substitute, X and Y are set to the replaced and the replacing element.
//
// Cost is the cost the operation contributed to the distance.
type Edit[T any, C Number] struct {
	Op   Op
	X, Y T
	Cost C
}

// Recorder is an [Emitter] that records the script as a slice of edits.
type Recorder[T any, C Number] struct {
	Edits []Edit[T, C]
}

func (r *Recorder[T, C]) Equality(x, y T) {
	r.Edits = append(r.Edits, Edit[T, C]{Op: Match, X: x, Y: y})
}

func (r *Recorder[T, C]) Insertion(y T, cost C) {
	r.Edits = append(r.Edits, Edit[T, C]{Op: Insert, Y: y, Cost: cost})
}

func (r *Recorder[T, C]) Deletion(x T, cost C) {
	r.Edits = append(r.Edits, Edit[T, C]{Op: Delete, X: x, Cost: cost})
}

func (r *Recorder[T, C]) Substitution(x, y T, cost C) {
	r.Edits = append(r.Edits, Edit[T, C]{Op: Substitute, X: x, Y: y, Cost: cost})
}
