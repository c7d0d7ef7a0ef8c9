package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
)

// VisibilitySink shows or hides an entity and its render hierarchy.
type VisibilitySink interface {
	SetVisibility(e ecs.Entity, visible bool)
}

// PhysicsSink adds or removes an entity from the physics simulation.
type PhysicsSink interface {
	Enable(e ecs.Entity)
	Disable(e ecs.Entity)
}

// EditModeNotifier is implemented by the optional editor subsystem.
type EditModeNotifier interface {
	OnEnterEditMode(fn func())
	OnExitEditMode(fn func())
}

type LapGateOption func(*LapGateSystem)

func WithVisibility(v VisibilitySink) LapGateOption {
	return func(s *LapGateSystem) { s.visibility = v }
}

func WithPhysics(p PhysicsSink) LapGateOption {
	return func(s *LapGateSystem) { s.physics = p }
}

func WithLogger(l *zap.Logger) LapGateOption {
	return func(s *LapGateSystem) {
		if l != nil {
			s.log = l
		}
	}
}

// LapGateSystem activates gated entities while the carrier's progress lies in
// their window. Side effects fire only when an entity's state changes.
type LapGateSystem struct {
	store      *LapGateStore
	visibility VisibilitySink
	physics    PhysicsSink
	log        *zap.Logger

	carrierMissing bool
}

func NewLapGateSystem(opts ...LapGateOption) *LapGateSystem {
	s := &LapGateSystem{
		store: NewLapGateStore(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *LapGateSystem) Store() *LapGateStore {
	return s.store
}

// Init subscribes to the editor's mode switches. A nil editor means the
// subsystem is absent and nothing is registered.
func (s *LapGateSystem) Init(editor EditModeNotifier) {
	if editor == nil {
		s.log.Info("lap gate: editor not present, edit mode override disabled")
		return
	}
	editor.OnEnterEditMode(s.OnEnterEditMode)
	editor.OnExitEditMode(s.OnExitEditMode)
}

// LoadConfig attaches a gate to a live entity.
func (s *LapGateSystem) LoadConfig(w *ecs.World, e ecs.Entity, cfg component.LapGate) error {
	if !w.IsAlive(e) {
		return fmt.Errorf("lap gate: load %v: %w", e, component.ErrEntityNotAlive)
	}
	return s.store.Add(e, cfg)
}

func (s *LapGateSystem) ExportConfig(e ecs.Entity) (component.LapGate, bool) {
	return s.store.ExportConfig(e)
}

// Active reports the last applied state of e.
func (s *LapGateSystem) Active(e ecs.Entity) bool {
	st, ok := s.store.State(e)
	return ok && st.Active
}

// Update drops gates of destroyed entities, then gates everything against
// the carrier's progress. dt is unused; progress comes from the carrier.
func (s *LapGateSystem) Update(w *ecs.World, _ float64) {
	if s == nil || w == nil {
		return
	}
	if n := s.store.Prune(w.IsAlive); n > 0 {
		s.log.Debug("lap gate: pruned destroyed entities", zap.Int("count", n))
	}

	progress, ok := CarrierProgress(w)
	if !ok && !s.carrierMissing {
		s.log.Info("lap gate: no rail carrier, progress defaults to 0")
	}
	s.carrierMissing = !ok

	s.Tick(progress)
}

// Tick applies progress to every gate in registration order.
func (s *LapGateSystem) Tick(progress float32) {
	s.store.each(func(entry *lapGateEntry) {
		want := entry.config.Contains(progress)
		if want == entry.state.Active {
			return
		}
		s.apply(entry, want)
	})
}

// ActivateAll forces every gate active regardless of progress.
func (s *LapGateSystem) ActivateAll() {
	s.store.each(func(entry *lapGateEntry) { s.apply(entry, true) })
}

// DeactivateAll forces every gate inactive. The next Tick re-derives the
// correct states.
func (s *LapGateSystem) DeactivateAll() {
	s.store.each(func(entry *lapGateEntry) { s.apply(entry, false) })
}

func (s *LapGateSystem) OnEnterEditMode() {
	s.log.Debug("lap gate: edit mode entered", zap.Int("gates", s.store.Len()))
	s.ActivateAll()
}

func (s *LapGateSystem) OnExitEditMode() {
	s.log.Debug("lap gate: edit mode exited", zap.Int("gates", s.store.Len()))
	s.DeactivateAll()
}

func (s *LapGateSystem) apply(entry *lapGateEntry, active bool) {
	entry.state.Active = active
	if s.visibility != nil {
		s.visibility.SetVisibility(entry.entity, active)
	}
	if s.physics != nil {
		if active {
			s.physics.Enable(entry.entity)
		} else {
			s.physics.Disable(entry.entity)
		}
	}
}
