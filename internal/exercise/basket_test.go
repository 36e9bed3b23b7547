package exercise

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(42, Params{})
	b := Generate(42, Params{})

	ignore := cmpopts.IgnoreFields(Instance{}, "ID", "CreatedAt")
	if diff := cmp.Diff(a, b, ignore); diff != "" {
		t.Errorf("same seed produced different exercises (-a +b):\n%s", diff)
	}
	if a.ID == b.ID {
		t.Errorf("instances share id %s", a.ID)
	}
}

func TestGenerateRanges(t *testing.T) {
	testCases := []struct {
		name   string
		params Params
		lo, hi int
	}{
		{"defaults", Params{}, 6, 12},
		{"narrow", Params{MinKittens: 8, MaxKittens: 8}, 8, 8},
		{"too small", Params{MinKittens: 1, MaxKittens: 2}, 4, 4},
	}

	for _, tc := range testCases {
		for seed := uint32(0); seed < 200; seed++ {
			inst := Generate(seed, tc.params)
			if inst.Total < tc.lo || inst.Total > tc.hi {
				t.Fatalf("%s seed %d: total %d outside %d..%d", tc.name, seed, inst.Total, tc.lo, tc.hi)
			}
			if inst.Target < 2 || inst.Target > inst.Total-2 {
				t.Fatalf("%s seed %d: target %d outside 2..%d", tc.name, seed, inst.Target, inst.Total-2)
			}
			if len(inst.Kittens) != inst.Total {
				t.Fatalf("%s seed %d: %d kittens for total %d", tc.name, seed, len(inst.Kittens), inst.Total)
			}
			for i, k := range inst.Kittens {
				if k.ID != i || k.X < minX || k.X > maxX || k.Y < minY || k.Y > maxY {
					t.Fatalf("%s seed %d: bad kitten %+v", tc.name, seed, k)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	inst := &Instance{Total: 10, Target: 4}

	testCases := []struct {
		answer   int
		correct  bool
		feedback string
	}{
		{4, true, "Perfect! You counted correctly!"},
		{3, false, "Not quite - you need 1 more kitten!"},
		{0, false, "Not quite - you need 4 more kittens!"},
		{5, false, "Too many! Take 1 kitten out."},
		{9, false, "Too many! Take 5 kittens out."},
	}

	for _, tc := range testCases {
		got := inst.Validate(tc.answer)
		if got.Correct != tc.correct || got.Feedback != tc.feedback {
			t.Errorf("answer %d: expected {%v %q}, got {%v %q}", tc.answer, tc.correct, tc.feedback, got.Correct, got.Feedback)
		}
	}
}

func TestNewSeedInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		if s := NewSeed(); s >= 0x7fffffff {
			t.Fatalf("seed %d out of range", s)
		}
	}
}
