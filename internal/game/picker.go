package game

import (
	"math/rand"
	"time"
)

// Picker draws round targets from the configured range.
type Picker struct {
	rnd  *rand.Rand
	min  int
	max  int
	prev int
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker(min, max int) *Picker {
	return &Picker{
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
		min:  min,
		max:  max,
		prev: -1,
	}
}

// Next picks a target, avoiding an immediate repeat when the range allows.
func (p *Picker) Next() int {
	if p.min == p.max {
		return p.min
	}
	for {
		n := p.min + p.rnd.Intn(p.max-p.min+1)
		if n != p.prev {
			p.prev = n
			return n
		}
	}
}
