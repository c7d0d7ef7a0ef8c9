package system

import "github.com/jakecoffman/cp"

func cpVector(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
