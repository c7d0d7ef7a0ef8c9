package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
)

// RenderSystem draws sprites and is the visibility sink for lap gates.
type RenderSystem struct {
	world *ecs.World
	pixel *ebiten.Image
}

func NewRenderSystem(w *ecs.World) *RenderSystem {
	return &RenderSystem{world: w}
}

// SetVisibility hides or shows e and every entity in its hierarchy.
func (r *RenderSystem) SetVisibility(e ecs.Entity, visible bool) {
	if r == nil || r.world == nil {
		return
	}
	ecs.WalkHierarchy(r.world, e, func(node ecs.Entity) {
		if s, ok := ecs.Get(r.world, node, component.SpriteComponent); ok {
			s.Hidden = !visible
		}
	})
}

// Visible reports whether e has a sprite that is drawn.
func (r *RenderSystem) Visible(e ecs.Entity) bool {
	s, ok := ecs.Get(r.world, e, component.SpriteComponent)
	return ok && !s.Hidden
}

func (r *RenderSystem) Draw(screen *ebiten.Image) {
	if r == nil || r.world == nil || screen == nil {
		return
	}
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}

	w := r.world
	entities := w.Query(component.TransformComponent, component.SpriteComponent)
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.SpriteComponent)
		sj, _ := ecs.Get(w, entities[j], component.SpriteComponent)
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		s, _ := ecs.Get(w, e, component.SpriteComponent)
		if s.Hidden || s.Width <= 0 || s.Height <= 0 {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)

		clr := s.Color
		if clr == nil {
			clr = color.White
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.Width, s.Height)
		op.GeoM.Translate(t.X-s.Width/2, t.Y-s.Height/2)
		op.ColorScale.ScaleWithColor(clr)
		screen.DrawImage(r.pixel, op)
	}
}
