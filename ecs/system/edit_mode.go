package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/railgate/ecs"
)

// EditModeSystem is the in-game editor switch. While it is active the host
// stops simulating so every lap gate stays visible for inspection.
type EditModeSystem struct {
	key    ebiten.Key
	active bool
	log    *zap.Logger

	onEnter []func()
	onExit  []func()
}

func NewEditModeSystem(key ebiten.Key, logger *zap.Logger) *EditModeSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditModeSystem{key: key, log: logger}
}

func (s *EditModeSystem) OnEnterEditMode(fn func()) {
	if fn != nil {
		s.onEnter = append(s.onEnter, fn)
	}
}

func (s *EditModeSystem) OnExitEditMode(fn func()) {
	if fn != nil {
		s.onExit = append(s.onExit, fn)
	}
}

func (s *EditModeSystem) Active() bool {
	return s != nil && s.active
}

// Toggle flips edit mode and notifies subscribers in registration order.
func (s *EditModeSystem) Toggle() {
	s.active = !s.active
	s.log.Info("edit mode toggled", zap.Bool("active", s.active))

	callbacks := s.onExit
	if s.active {
		callbacks = s.onEnter
	}
	for _, fn := range callbacks {
		fn()
	}
}

func (s *EditModeSystem) Update(_ *ecs.World, _ float64) {
	if inpututil.IsKeyJustPressed(s.key) {
		s.Toggle()
	}
}
