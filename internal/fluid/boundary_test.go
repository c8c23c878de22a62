package fluid

import "testing"

func TestSetBoundary_SignConvention(t *testing.T) {
	tests := []struct {
		kind      Boundary
		left, top float32
	}{
		{Scalar, 5, 5},
		{VelocityX, -5, 5},
		{VelocityY, 5, -5},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := MustNew(5, DefaultParams())
			field := make([]float32, 25)
			field[g.IX(1, 1)] = 5

			g.SetBoundary(tt.kind, field)

			if got := field[g.IX(0, 1)]; got != tt.left {
				t.Errorf("left wall (0,1) = %v, want %v", got, tt.left)
			}
			if got := field[g.IX(1, 0)]; got != tt.top {
				t.Errorf("top wall (1,0) = %v, want %v", got, tt.top)
			}
			if want := 0.5 * (tt.left + tt.top); field[g.IX(0, 0)] != want {
				t.Errorf("corner (0,0) = %v, want %v", field[g.IX(0, 0)], want)
			}
		})
	}
}

func TestSetBoundary_FarWalls(t *testing.T) {
	g := MustNew(6, DefaultParams())
	field := make([]float32, 36)
	field[g.IX(4, 2)] = 3
	field[g.IX(2, 4)] = 7

	g.SetBoundary(VelocityX, field)
	if got := field[g.IX(5, 2)]; got != -3 {
		t.Errorf("right wall = %v, want -3", got)
	}
	if got := field[g.IX(2, 5)]; got != 7 {
		t.Errorf("bottom wall = %v, want 7", got)
	}

	g.SetBoundary(VelocityY, field)
	if got := field[g.IX(2, 5)]; got != -7 {
		t.Errorf("bottom wall = %v, want -7", got)
	}
}

func TestSetBoundary_InteriorUntouched(t *testing.T) {
	g := MustNew(6, DefaultParams())
	field := make([]float32, 36)
	for i := range field {
		field[i] = float32(i)
	}
	before := append([]float32(nil), field...)

	g.SetBoundary(VelocityX, field)

	for j := 1; j < 5; j++ {
		for i := 1; i < 5; i++ {
			if field[g.IX(i, j)] != before[g.IX(i, j)] {
				t.Fatalf("interior cell (%d,%d) changed", i, j)
			}
		}
	}
}
