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

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		opts []Option
		want int
	}{
		{
			name: "empty",
			x:    "",
			y:    "",
			want: 0,
		},
		{
			name: "identical",
			x:    "abc",
			y:    "abc",
			want: 0,
		},
		{
			name: "x-empty",
			x:    "",
			y:    "abc",
			want: 3,
		},
		{
			name: "y-empty",
			x:    "abc",
			y:    "",
			want: 3,
		},
		{
			name: "no-substitution",
			x:    "abc",
			y:    "axc",
			want: 2,
		},
		{
			name: "substitution",
			x:    "abc",
			y:    "axc",
			opts: []Option{Substitution(true)},
			want: 1,
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    "ABCABBA",
			y:    "CBABAC",
			want: 5,
		},
		{
			name: "kitten-sitting",
			x:    "kitten",
			y:    "sitting",
			want: 5,
		},
		{
			name: "kitten-sitting-substitution",
			x:    "kitten",
			y:    "sitting",
			opts: []Option{Substitution(true)},
			want: 3,
		},
		{
			name: "hello-world-substitution",
			x:    "Oh, hello world.",
			y:    "Hello world!!",
			opts: []Option{Substitution(true)},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance([]byte(tt.x), []byte(tt.y), tt.opts...)
			if err != nil {
				t.Fatalf("Distance(...) failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.x, tt.y, got, tt.want)
			}

			got, err = DistanceFunc([]byte(tt.x), []byte(tt.y), func(a, b byte) bool { return a == b }, tt.opts...)
			if err != nil {
				t.Fatalf("DistanceFunc(...) failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DistanceFunc(%q, %q) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestScript(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		opts []Option
		want []Edit[byte, int]
	}{
		{
			name: "empty",
			x:    "",
			y:    "",
			want: nil,
		},
		{
			name: "identical",
			x:    "abc",
			y:    "abc",
			want: []Edit[byte, int]{
				{Match, 'a', 'a', 0},
				{Match, 'b', 'b', 0},
				{Match, 'c', 'c', 0},
			},
		},
		{
			name: "no-substitution",
			x:    "abc",
			y:    "axc",
			want: []Edit[byte, int]{
				{Match, 'a', 'a', 0},
				{Delete, 'b', 0, 1},
				{Insert, 0, 'x', 1},
				{Match, 'c', 'c', 0},
			},
		},
		{
			name: "substitution",
			x:    "abc",
			y:    "axc",
			opts: []Option{Substitution(true)},
			want: []Edit[byte, int]{
				{Match, 'a', 'a', 0},
				{Substitute, 'b', 'x', 1},
				{Match, 'c', 'c', 0},
			},
		},
		{
			name: "x-empty",
			x:    "",
			y:    "ab",
			want: []Edit[byte, int]{
				{Insert, 0, 'a', 1},
				{Insert, 0, 'b', 1},
			},
		},
		{
			name: "y-empty",
			x:    "ab",
			y:    "",
			want: []Edit[byte, int]{
				{Delete, 'a', 0, 1},
				{Delete, 'b', 0, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Script([]byte(tt.x), []byte(tt.y), tt.opts...)
			if err != nil {
				t.Fatalf("Script(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Script(%q, %q) differs [-want,+got]:\n%s", tt.x, tt.y, diff)
			}
		})
	}
}

// replay applies script to x, checking that it consumes exactly x and produces exactly y, that
// matches carry no cost, and returns the sum of the emitted costs.
func replay[T comparable, C Number](t *testing.T, x, y []T, script []Edit[T, C]) C {
	t.Helper()
	var out []T
	var total C
	i := 0
	for _, e := range script {
		switch e.Op {
		case Match:
			if i >= len(x) || x[i] != e.X {
				t.Fatalf("match out of sync at %d: %v", i, e)
			}
			if e.Cost != 0 {
				t.Fatalf("match with non-zero cost: %v", e)
			}
			out = append(out, e.Y)
			i++
		case Delete:
			if i >= len(x) || x[i] != e.X {
				t.Fatalf("delete out of sync at %d: %v", i, e)
			}
			i++
		case Insert:
			out = append(out, e.Y)
		case Substitute:
			if i >= len(x) || x[i] != e.X {
				t.Fatalf("substitute out of sync at %d: %v", i, e)
			}
			out = append(out, e.Y)
			i++
		}
		total += e.Cost
	}
	if i != len(x) {
		t.Fatalf("script consumed %d of %d elements", i, len(x))
	}
	if !slices.Equal(out, y) {
		t.Fatalf("script replay produced %v, want %v", out, y)
	}
	return total
}

func TestScriptReplay(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		x := randSeq(rng, rng.IntN(30))
		y := randSeq(rng, rng.IntN(30))
		for _, sub := range []bool{false, true} {
			script, err := Script(x, y, Substitution(sub))
			if err != nil {
				t.Fatal(err)
			}
			d, err := Distance(x, y, Substitution(sub))
			if err != nil {
				t.Fatal(err)
			}
			if got := replay(t, x, y, script); got != d {
				t.Errorf("sum of script costs = %d, distance = %d (x=%q y=%q sub=%v)", got, d, x, y, sub)
			}
			if !sub {
				for _, e := range script {
					if e.Op == Substitute {
						t.Fatalf("substitution emitted with substitutions disabled: %v", e)
					}
				}
			}
		}
	}
}

// dpDistance is a quadratic reference implementation used to cross-check the engines.
func dpDistance(x, y []byte, ins, del func(byte) float64, sub func(a, b byte) float64, allowSub bool, eq func(a, b byte) bool) float64 {
	m := len(y)
	prev := make([]float64, m+1)
	cur := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = prev[j-1] + ins(y[j-1])
	}
	for i := 1; i <= len(x); i++ {
		cur[0] = prev[0] + del(x[i-1])
		for j := 1; j <= m; j++ {
			best := cur[j-1] + ins(y[j-1])
			if v := prev[j] + del(x[i-1]); v < best {
				best = v
			}
			if eq(x[i-1], y[j-1]) {
				if v := prev[j-1]; v < best {
					best = v
				}
			} else if allowSub {
				if v := prev[j-1] + sub(x[i-1], y[j-1]); v < best {
					best = v
				}
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[m]
}

func randSeq(rng *rand.Rand, n int) []byte {
	const alphabet = "abcd"
	s := make([]byte, n)
	for i := range s {
		s[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return s
}

// TestEngineCrossCheck verifies that the Myers engines and the general engine agree with each
// other and with the reference implementation on inputs satisfying all preconditions.
func TestEngineCrossCheck(t *testing.T) {
	eq := func(a, b byte) bool { return a == b }
	unit := func(byte) float64 { return 1 }
	unitSub := func(a, b byte) float64 { return 1 }
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 300; i++ {
		x := randSeq(rng, rng.IntN(50))
		y := randSeq(rng, rng.IntN(50))
		want := int(dpDistance(x, y, unit, unit, unitSub, false, eq))

		myers, err := Distance(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if myers != want {
			t.Fatalf("Distance(%q, %q) = %d, reference says %d", x, y, myers, want)
		}

		// Forcing explicit unit costs routes around the Myers preconditions and into the
		// general engine.
		general, err := Align(x, y, Params[byte, int]{
			Cost: Costs[byte, int]{
				Insert: func(byte) int { return 1 },
				Delete: func(byte) int { return 1 },
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if general != want {
			t.Fatalf("general engine on (%q, %q) = %d, reference says %d", x, y, general, want)
		}

		// The script-producing path has to find the same distance.
		script, err := Script(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if got := replay(t, x, y, script); got != want {
			t.Fatalf("script cost on (%q, %q) = %d, reference says %d", x, y, got, want)
		}
	}
}

func TestSubstitutionNeverWorse(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 100; i++ {
		x := randSeq(rng, rng.IntN(30))
		y := randSeq(rng, rng.IntN(30))
		plain, err := Distance(x, y)
		if err != nil {
			t.Fatal(err)
		}
		sub, err := Distance(x, y, Substitution(true))
		if err != nil {
			t.Fatal(err)
		}
		if sub > plain {
			t.Fatalf("substitution distance %d > plain distance %d for (%q, %q)", sub, plain, x, y)
		}
	}
}

func TestAlignAsymmetricCosts(t *testing.T) {
	costs := Costs[byte, int]{
		Insert:     func(byte) int { return 2 },
		Delete:     func(byte) int { return 1 },
		Substitute: func(a, b byte) int { return 1 },
	}
	p := Params[byte, int]{Cost: costs, Substitution: true}

	got, err := Align([]byte("aaaa"), []byte("aa"), p)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("Align(aaaa, aa) = %d, want 2", got)
	}

	got, err = Align([]byte("aa"), []byte("aaaa"), p)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("Align(aa, aaaa) = %d, want 4", got)
	}
}

func TestAlignFloatCosts(t *testing.T) {
	upper := func(c byte) byte {
		if 'a' <= c && c <= 'z' {
			return c - 'a' + 'A'
		}
		return c
	}
	costs := Costs[byte, float64]{
		Insert: func(byte) float64 { return 1 },
		Delete: func(byte) float64 { return 1 },
		Substitute: func(a, b byte) float64 {
			if upper(a) == upper(b) {
				return 0.5
			}
			return 1
		},
	}
	x := []byte("Try to find XXX capitalized")
	y := []byte("xxx")

	var rec Recorder[byte, float64]
	got, err := Align(x, y, Params[byte, float64]{Cost: costs, Substitution: true, Script: &rec})
	if err != nil {
		t.Fatal(err)
	}
	if want := 25.5; got != want {
		t.Errorf("Align(...) = %v, want %v", got, want)
	}
	if sum := replay(t, x, y, rec.Edits); sum != got {
		t.Errorf("sum of script costs = %v, distance = %v", sum, got)
	}
	subs := 0
	for _, e := range rec.Edits {
		if e.Op == Substitute {
			subs++
			if e.Cost != 0.5 {
				t.Errorf("substitution cost = %v, want 0.5: %v", e.Cost, e)
			}
		}
	}
	if subs != 3 {
		t.Errorf("script has %d substitutions, want 3", subs)
	}
}

func TestMaxCost(t *testing.T) {
	x, y := []byte("abcdef"), []byte("uvwxyz")
	const trueDist = 12 // no common elements: delete 6, insert 6

	t.Run("cap-above-distance", func(t *testing.T) {
		got, err := Distance(x, y, MaxCost(trueDist))
		if err != nil {
			t.Fatal(err)
		}
		if got != trueDist {
			t.Errorf("Distance with cap %d = %d, want the true distance %d", trueDist, got, trueDist)
		}
	})

	t.Run("cap-below-distance", func(t *testing.T) {
		for limit := 0; limit < trueDist; limit++ {
			got, err := Distance(x, y, MaxCost(limit))
			if err != nil {
				t.Fatal(err)
			}
			if got <= limit {
				t.Errorf("Distance with cap %d = %d, want > %d", limit, got, limit)
			}
			if got < trueDist {
				t.Errorf("Distance with cap %d = %d, want >= %d", limit, got, trueDist)
			}
		}
	})

	t.Run("error-mode", func(t *testing.T) {
		_, err := Distance(x, y, MaxCost(trueDist-1), MaxCostError())
		if !errors.Is(err, ErrMaxCostExceeded) {
			t.Errorf("Distance(...) error = %v, want ErrMaxCostExceeded", err)
		}
		if _, err := Distance(x, y, MaxCost(trueDist), MaxCostError()); err != nil {
			t.Errorf("Distance(...) with sufficient cap failed: %v", err)
		}

		script, err := Script(x, y, MaxCost(trueDist-1), MaxCostError())
		if !errors.Is(err, ErrMaxCostExceeded) {
			t.Errorf("Script(...) error = %v, want ErrMaxCostExceeded", err)
		}
		if script != nil {
			t.Errorf("Script(...) returned a script alongside the error")
		}
	})

	t.Run("capped-script-still-valid", func(t *testing.T) {
		for limit := 0; limit <= trueDist; limit++ {
			var rec Recorder[byte, int]
			d, err := Align(x, y, Params[byte, int]{Script: &rec, MaxCost: Cap(limit)})
			if err != nil {
				t.Fatal(err)
			}
			if got := replay(t, x, y, rec.Edits); got != d {
				t.Errorf("cap %d: script costs sum to %d, distance reports %d", limit, got, d)
			}
			if d < trueDist {
				t.Errorf("cap %d: distance %d below the true distance %d", limit, d, trueDist)
			}
			if limit >= trueDist && d != trueDist {
				t.Errorf("cap %d above the true distance changed the result to %d", limit, d)
			}
		}
	})

	t.Run("general-engine", func(t *testing.T) {
		d, err := Distance(x, y, Substitution(true))
		if err != nil {
			t.Fatal(err)
		}
		if d != 6 {
			t.Fatalf("substitution distance = %d, want 6", d)
		}
		got, err := Distance(x, y, Substitution(true), MaxCost(5))
		if err != nil {
			t.Fatal(err)
		}
		if got <= 5 || got < 6 {
			t.Errorf("capped substitution distance = %d, want > 5", got)
		}
		_, err = Distance(x, y, Substitution(true), MaxCost(5), MaxCostError())
		if !errors.Is(err, ErrMaxCostExceeded) {
			t.Errorf("error = %v, want ErrMaxCostExceeded", err)
		}
		if _, err := Distance(x, y, Substitution(true), MaxCost(6), MaxCostError()); err != nil {
			t.Errorf("substitution distance with sufficient cap failed: %v", err)
		}
	})

	t.Run("cap-never-below-true-distance", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 8))
		eq := func(a, b byte) bool { return a == b }
		unit := func(byte) float64 { return 1 }
		unitSub := func(a, b byte) float64 { return 1 }
		for i := 0; i < 100; i++ {
			x := randSeq(rng, rng.IntN(30))
			y := randSeq(rng, rng.IntN(30))
			want := int(dpDistance(x, y, unit, unit, unitSub, false, eq))
			for _, limit := range []int{0, 1, want / 2, want, want + 1} {
				got, err := Distance(x, y, MaxCost(limit))
				if err != nil {
					t.Fatal(err)
				}
				if got < want {
					t.Fatalf("cap %d on (%q, %q): got %d below the true distance %d", limit, x, y, got, want)
				}
				if limit >= want && got != want {
					t.Fatalf("cap %d >= true distance %d on (%q, %q) changed the result to %d", limit, want, x, y, got)
				}
			}
		}
	})
}

func TestNegativeCost(t *testing.T) {
	costs := Costs[byte, int]{
		Insert:     func(byte) int { return -1 },
		Delete:     func(byte) int { return 1 },
		Substitute: func(a, b byte) int { return 1 },
	}
	_, err := Align([]byte("a"), []byte("b"), Params[byte, int]{Cost: costs})
	if !errors.Is(err, ErrNegativeCost) {
		t.Errorf("Align(...) error = %v, want ErrNegativeCost", err)
	}
}

func TestScriptFunc(t *testing.T) {
	// Case-insensitive equality with unit costs: equal-under-eq pairs must align for free.
	eq := func(a, b string) bool { return strings.EqualFold(a, b) }
	x := strings.Split("Foo Bar", "")
	y := strings.Split("foo baz", "")
	script, err := ScriptFunc(x, y, eq)
	if err != nil {
		t.Fatal(err)
	}
	d, err := DistanceFunc(x, y, eq)
	if err != nil {
		t.Fatal(err)
	}
	if d != 2 {
		t.Errorf("DistanceFunc(...) = %d, want 2", d)
	}
	total := 0
	i := 0
	var out []string
	for _, e := range script {
		switch e.Op {
		case Match:
			if !eq(x[i], e.X) {
				t.Fatalf("match out of sync: %v", e)
			}
			out = append(out, e.Y)
			i++
		case Delete:
			i++
			total += e.Cost
		case Insert:
			out = append(out, e.Y)
			total += e.Cost
		}
	}
	if i != len(x) || !slices.Equal(out, y) || total != d {
		t.Errorf("script replay mismatch: consumed %d, got %q, cost %d", i, strings.Join(out, ""), total)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Match, "Match"},
		{Delete, "Delete"},
		{Insert, "Insert"},
		{Substitute, "Substitute"},
		{Op(42), "Op(42)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}
