package fluid

// Boundary selects how SetBoundary treats the outer ring of a field.
type Boundary int

const (
	// Scalar mirrors the interior value onto every wall.
	Scalar Boundary = iota
	// VelocityX negates on the left and right walls (no penetration in x).
	VelocityX
	// VelocityY negates on the top and bottom walls (no penetration in y).
	VelocityY
)

func (b Boundary) String() string {
	switch b {
	case Scalar:
		return "scalar"
	case VelocityX:
		return "velocity-x"
	case VelocityY:
		return "velocity-y"
	default:
		return "unknown"
	}
}

// SetBoundary derives the edge cells of x from their interior neighbours.
// Corners become the mean of their two adjacent edge cells.
func (g *Grid) SetBoundary(b Boundary, x []float32) {
	n := g.n
	for i := 1; i < n-1; i++ {
		top, bottom := x[i+n], x[i+(n-2)*n]
		if b == VelocityY {
			top, bottom = -top, -bottom
		}
		x[i] = top
		x[i+(n-1)*n] = bottom
	}
	for j := 1; j < n-1; j++ {
		row := j * n
		left, right := x[row+1], x[row+n-2]
		if b == VelocityX {
			left, right = -left, -right
		}
		x[row] = left
		x[row+n-1] = right
	}

	last := n - 1
	x[g.IX(0, 0)] = 0.5 * (x[g.IX(1, 0)] + x[g.IX(0, 1)])
	x[g.IX(0, last)] = 0.5 * (x[g.IX(1, last)] + x[g.IX(0, last-1)])
	x[g.IX(last, 0)] = 0.5 * (x[g.IX(last-1, 0)] + x[g.IX(last, 1)])
	x[g.IX(last, last)] = 0.5 * (x[g.IX(last-1, last)] + x[g.IX(last, last-1)])
}
