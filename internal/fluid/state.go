package fluid

import "fmt"

// FieldNames lists the snapshot fields in the order used by State.Fields.
var FieldNames = [8]string{"vx", "vy", "vx0", "vy0", "r", "g", "b", "s"}

// State is a deep copy of all eight grid fields.
type State struct {
	Size int

	Vx, Vy   []float32
	Vx0, Vy0 []float32
	R, G, B  []float32
	S        []float32
}

// Fields returns the eight slices in FieldNames order. The slices alias the
// state; they are not copies.
func (s State) Fields() [8][]float32 {
	return [8][]float32{s.Vx, s.Vy, s.Vx0, s.Vy0, s.R, s.G, s.B, s.S}
}

// Clone returns an independent copy of s.
func (s State) Clone() State {
	return State{
		Size: s.Size,
		Vx:   cloneField(s.Vx),
		Vy:   cloneField(s.Vy),
		Vx0:  cloneField(s.Vx0),
		Vy0:  cloneField(s.Vy0),
		R:    cloneField(s.R),
		G:    cloneField(s.G),
		B:    cloneField(s.B),
		S:    cloneField(s.S),
	}
}

func cloneField(f []float32) []float32 {
	c := make([]float32, len(f))
	copy(c, f)
	return c
}

func (g *Grid) view() State {
	return State{
		Size: g.n,
		Vx:   g.Vx,
		Vy:   g.Vy,
		Vx0:  g.Vx0,
		Vy0:  g.Vy0,
		R:    g.R,
		G:    g.G,
		B:    g.B,
		S:    g.S,
	}
}

// SaveState captures all eight fields.
func (g *Grid) SaveState() State {
	return g.view().Clone()
}

// RestoreState overwrites all eight fields from s. A snapshot taken at a
// different size is rejected and the grid is left untouched.
func (g *Grid) RestoreState(s State) error {
	cells := g.n * g.n
	if s.Size != g.n {
		return fmt.Errorf("%w: snapshot size %d, grid size %d", ErrDimensionMismatch, s.Size, g.n)
	}
	src := s.Fields()
	for i, f := range src {
		if len(f) != cells {
			return fmt.Errorf("%w: field %s has %d cells, want %d", ErrDimensionMismatch, FieldNames[i], len(f), cells)
		}
	}
	dst := g.view().Fields()
	for i := range dst {
		copy(dst[i], src[i])
	}
	return nil
}
