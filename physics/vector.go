package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// hadamard returns the component-wise product of a and b.
func hadamard(a, b cp.Vector) cp.Vector {
	return cp.Vector{X: a.X * b.X, Y: a.Y * b.Y}
}

func absVec(v cp.Vector) cp.Vector {
	return cp.Vector{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

func signVec(v cp.Vector) cp.Vector {
	return cp.Vector{X: sign(v.X), Y: sign(v.Y)}
}

// sign returns -1 for negative values and 1 otherwise, matching the
// convention that zero pushes in the positive direction.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
