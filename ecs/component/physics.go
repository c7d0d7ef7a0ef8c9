package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Disabled is the authored starting state; at runtime the physics system
// owns whether the body is in the space.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Static   bool
	Disabled bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
