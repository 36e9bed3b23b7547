// Package exercise generates and grades the kittens-in-a-basket counting
// exercise.
package exercise

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ratforge/ratforge/internal/debug"
)

const (
	// Key identifies the basket exercise in the attempt log.
	Key   = "counting-basket"
	Title = "Kittens in a Basket"
)

// Default kitten count range.
const (
	DefaultMinKittens = 6
	DefaultMaxKittens = 12
)

// Kitten positions are percentages of the play area.
const (
	minX, maxX = 5, 60
	minY, maxY = 10, 80
)

type Kitten struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// Params bounds the number of kittens. Zero values use the defaults.
type Params struct {
	MinKittens int
	MaxKittens int
}

// Instance is one generated exercise.
type Instance struct {
	ID        string    `json:"id"`
	Seed      uint32    `json:"seed"`
	Total     int       `json:"totalKittens"`
	Target    int       `json:"targetCount"`
	Kittens   []Kitten  `json:"kittenPositions"`
	CreatedAt time.Time `json:"createdAt"`
}

type Result struct {
	Correct  bool
	Feedback string
}

// lcg is the 31-bit linear congruential generator used for seeding
// exercises, so a seed always produces the same layout.
type lcg struct{ s uint64 }

func (r *lcg) next() float64 {
	r.s = (r.s*1103515245 + 12345) & 0x7fffffff
	return float64(r.s) / 0x7fffffff
}

// intn returns an integer in [lo, hi].
func (r *lcg) intn(lo, hi int) int {
	n := lo + int(r.next()*float64(hi-lo+1))
	if n > hi {
		n = hi
	}
	return n
}

// NewSeed returns a random seed in the generator's range.
func NewSeed() uint32 {
	return rand.Uint32N(0x7fffffff)
}

func (p Params) bounds() (int, int) {
	lo, hi := p.MinKittens, p.MaxKittens
	if lo == 0 {
		lo = DefaultMinKittens
	}
	if hi == 0 {
		hi = DefaultMaxKittens
	}
	// target is drawn from 2..total-2
	if lo < 4 {
		lo = 4
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Generate builds the exercise for seed.
func Generate(seed uint32, p Params) *Instance {
	r := &lcg{s: uint64(seed)}
	lo, hi := p.bounds()

	total := r.intn(lo, hi)
	target := r.intn(2, total-2)
	kittens := make([]Kitten, total)
	for i := range kittens {
		kittens[i] = Kitten{
			ID: i,
			X:  r.intn(minX, maxX),
			Y:  r.intn(minY, maxY),
		}
	}

	inst := &Instance{
		ID:        uuid.NewString(),
		Seed:      seed,
		Total:     total,
		Target:    target,
		Kittens:   kittens,
		CreatedAt: time.Now(),
	}
	debug.Log(debug.EXERCISE, "generated %s seed=%d total=%d target=%d", inst.ID, seed, total, target)
	return inst
}

// KittenID is the drag item id of kitten i.
func KittenID(i int) string {
	return fmt.Sprintf("kitten-%d", i)
}

// Validate grades the number of kittens placed in the basket.
func (inst *Instance) Validate(answer int) Result {
	switch diff := inst.Target - answer; {
	case diff == 0:
		return Result{Correct: true, Feedback: "Perfect! You counted correctly!"}
	case diff > 0:
		return Result{Feedback: fmt.Sprintf("Not quite - you need %d more %s!", diff, kittens(diff))}
	default:
		return Result{Feedback: fmt.Sprintf("Too many! Take %d %s out.", -diff, kittens(-diff))}
	}
}

// Prompt is the instruction shown above the play area.
func (inst *Instance) Prompt() string {
	return fmt.Sprintf("Put %d kittens in the basket!", inst.Target)
}

func kittens(n int) string {
	if n == 1 {
		return "kitten"
	}
	return "kittens"
}
