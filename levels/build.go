package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
)

var ErrDuplicateName = errors.New("levels: duplicate piece name")

// GateLoader attaches a gate record to a spawned entity.
type GateLoader interface {
	LoadConfig(w *ecs.World, e ecs.Entity, cfg component.LapGate) error
}

// GateExporter reads a gate record back. ok is false for entities that were
// never gated.
type GateExporter interface {
	ExportConfig(e ecs.Entity) (component.LapGate, bool)
}

// Build spawns the rail carrier and every piece into w. Gated pieces start
// hidden and out of the physics space to match the inactive gate state.
// The returned map resolves piece names to their entities.
func Build(w *ecs.World, lvl *Level, gates GateLoader) (map[string]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("levels: build: nil level")
	}

	carrier := w.CreateEntity()
	if err := ecs.Add(w, carrier, component.RailCarrierComponent, &component.RailCarrier{}); err != nil {
		return nil, fmt.Errorf("levels: build carrier: %w", err)
	}
	rider := &component.RailRider{LapLength: lvl.Rail.LapLength, Speed: lvl.Rail.Speed}
	if err := ecs.Add(w, carrier, component.RailRiderComponent, rider); err != nil {
		return nil, fmt.Errorf("levels: build carrier: %w", err)
	}

	named := make(map[string]ecs.Entity, len(lvl.Pieces))
	for _, piece := range lvl.Pieces {
		gated := piece.Gate != nil
		if gated && piece.Name == "" {
			return nil, fmt.Errorf("levels: gated piece at (%v, %v) needs a name", piece.X, piece.Y)
		}
		e := w.CreateEntity()
		if err := spawnPiece(w, e, piece, gated, true, named); err != nil {
			return nil, err
		}
		for _, child := range piece.Children {
			if child.Gate != nil {
				return nil, fmt.Errorf("levels: piece %s: child %s cannot carry a gate", piece.Name, child.Name)
			}
			ce := w.CreateEntity()
			if err := spawnPiece(w, ce, child, gated, false, named); err != nil {
				return nil, err
			}
			if err := ecs.AttachChild(w, e, ce); err != nil {
				return nil, fmt.Errorf("levels: piece %s: %w", piece.Name, err)
			}
		}
		if gated && gates != nil {
			if err := gates.LoadConfig(w, e, piece.Gate.Config()); err != nil {
				return nil, fmt.Errorf("levels: piece %s: %w", piece.Name, err)
			}
		}
	}
	return named, nil
}

// spawnPiece attaches p's components to e and records its name. On failure
// e is destroyed and the name stays free.
func spawnPiece(w *ecs.World, e ecs.Entity, p Piece, hidden, physics bool, named map[string]ecs.Entity) error {
	if p.Name != "" {
		if _, ok := named[p.Name]; ok {
			w.DestroyEntity(e)
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
	}

	sprite := &component.Sprite{Width: p.Width, Height: p.Height, Layer: p.Layer, Hidden: hidden}
	if p.Color != nil {
		sprite.Color = p.Color.Color
	}

	steps := []error{
		ecs.Add(w, e, component.TransformComponent, &component.Transform{X: p.X, Y: p.Y}),
		ecs.Add(w, e, component.SpriteComponent, sprite),
	}
	if p.Name != "" {
		steps = append(steps, ecs.Add(w, e, component.NameComponent, &component.Name{Value: p.Name}))
	}
	if physics && p.Solid {
		body := &component.PhysicsBody{Width: p.Width, Height: p.Height, Static: true, Disabled: hidden}
		steps = append(steps, ecs.Add(w, e, component.PhysicsBodyComponent, body))
	}
	if err := errors.Join(steps...); err != nil {
		w.DestroyEntity(e)
		return fmt.Errorf("levels: piece %s: %w", p.Name, err)
	}
	if p.Name != "" {
		named[p.Name] = e
	}
	return nil
}

// Export returns a copy of lvl whose gate records come from the runtime
// gates. Pieces without a registered gate are written without one.
func Export(lvl *Level, named map[string]ecs.Entity, gates GateExporter) *Level {
	if lvl == nil {
		return nil
	}
	out := *lvl
	out.Pieces = make([]Piece, len(lvl.Pieces))
	for i, piece := range lvl.Pieces {
		piece.Children = append([]Piece(nil), piece.Children...)
		piece.Gate = nil
		if e, ok := named[piece.Name]; ok && gates != nil {
			if cfg, ok := gates.ExportConfig(e); ok {
				rec := RecordOf(cfg)
				piece.Gate = &rec
			}
		}
		out.Pieces[i] = piece
	}
	return &out
}
