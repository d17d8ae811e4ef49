// Package fan lays out the face-down cards a user chooses from.
package fan

import (
	"math"
	"math/rand/v2"
)

const (
	// DefaultCount is the number of cards fanned out when the catalog is large enough
	DefaultCount = 53
	// Sweep is the arc, in degrees, the fan spans
	Sweep = 345.0
	// Radius is the distance of every card from the fan centre
	Radius = 250.0
)

// Slot is one position on the fan and the catalog card placed there
type Slot struct {
	Position int     // Slot number along the arc
	Index    int     // Catalog index of the card in this slot
	Angle    float64 // Degrees along the arc
	X, Y     float64 // Offset from the fan centre
	Rotation float64 // Card rotation in degrees
}

// Fan is one shuffled arrangement of cards
type Fan struct {
	Slots []Slot
}

// New shuffles catalogSize cards, keeps min(count, catalogSize) of them and
// places them along the arc. rng may be nil.
func New(catalogSize, count int, rng *rand.Rand) Fan {
	indices := Shuffle(catalogSize, count, rng)
	slots := Layout(len(indices))
	for i := range slots {
		slots[i].Index = indices[i]
	}
	return Fan{Slots: slots}
}

// Shuffle returns a random selection of min(count, catalogSize) distinct catalog indices
func Shuffle(catalogSize, count int, rng *rand.Rand) []int {
	if catalogSize <= 0 || count <= 0 {
		return nil
	}
	var perm []int
	if rng != nil {
		perm = rng.Perm(catalogSize)
	} else {
		perm = rand.Perm(catalogSize)
	}
	return perm[:min(count, catalogSize)]
}

// Layout computes the arc geometry for count slots. Position depends only on
// the slot number, never on which card sits there.
func Layout(count int) []Slot {
	if count <= 0 {
		return nil
	}
	step := Sweep / float64(count)
	slots := make([]Slot, count)
	for i := range slots {
		angle := step * float64(i)
		rad := angle * math.Pi / 180
		slots[i] = Slot{
			Position: i,
			Index:    -1,
			Angle:    angle,
			X:        Radius * math.Cos(rad),
			Y:        Radius * math.Sin(rad),
			Rotation: angle + 90,
		}
	}
	return slots
}

// Len returns the number of slots
func (f Fan) Len() int {
	return len(f.Slots)
}

// Indices returns the catalog indices in slot order
func (f Fan) Indices() []int {
	out := make([]int, len(f.Slots))
	for i, s := range f.Slots {
		out[i] = s.Index
	}
	return out
}

// Slot returns the slot at position pos
func (f Fan) Slot(pos int) (Slot, bool) {
	if pos < 0 || pos >= len(f.Slots) {
		return Slot{}, false
	}
	return f.Slots[pos], true
}
