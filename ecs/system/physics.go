package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
)

const defaultBodySize = 32

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk2D space and
// lets gated entities leave and rejoin the simulation without losing their
// bodies.
type PhysicsSystem struct {
	space *cp.Space
	log   *zap.Logger

	entities  map[ecs.Entity]*bodyInfo
	requested map[ecs.Entity]bool
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	static  bool
	enabled bool
}

func NewPhysicsSystem(logger *zap.Logger) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: 0})
	return &PhysicsSystem{
		space:     space,
		log:       logger,
		entities:  make(map[ecs.Entity]*bodyInfo),
		requested: make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	if dt > 0 {
		ps.space.Step(dt)
	}
	ps.syncTransforms(w)
}

// Enable puts e back into the space. Calls before the body exists are
// remembered and applied when it is created.
func (ps *PhysicsSystem) Enable(e ecs.Entity) {
	ps.requested[e] = true
	if info := ps.entities[e]; info != nil {
		ps.setEnabled(info, true)
	}
}

// Disable takes e out of the space so it neither moves nor collides.
func (ps *PhysicsSystem) Disable(e ecs.Entity) {
	ps.requested[e] = false
	if info := ps.entities[e]; info != nil {
		ps.setEnabled(info, false)
	}
}

// Enabled reports whether e currently has a body in the space.
func (ps *PhysicsSystem) Enabled(e ecs.Entity) bool {
	info := ps.entities[e]
	return info != nil && info.enabled
}

func (ps *PhysicsSystem) setEnabled(info *bodyInfo, enabled bool) {
	if info.enabled == enabled {
		return
	}
	if enabled {
		if !info.static {
			ps.space.AddBody(info.body)
		}
		ps.space.AddShape(info.shape)
	} else {
		ps.space.RemoveShape(info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
	}
	info.enabled = enabled
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent, component.TransformComponent) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		info := ps.createBodyInfo(transform, bodyComp)
		enabled := !bodyComp.Disabled
		if want, ok := ps.requested[e]; ok {
			enabled = want
		}
		ps.setEnabled(info, enabled)
		ps.entities[e] = info

		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		ps.log.Debug("physics: body created", zap.Stringer("entity", e), zap.Bool("enabled", enabled))
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = defaultBodySize, defaultBodySize
	}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || !info.enabled {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.setEnabled(info, false)
		delete(ps.entities, e)
	}
	for e := range ps.requested {
		if !w.IsAlive(e) {
			delete(ps.requested, e)
		}
	}
}
