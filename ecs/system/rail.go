package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
)

// CarrierProgress returns the rail carrier's cumulative lap progress.
// ok is false when no carrier exists, in which case progress is 0.
func CarrierProgress(w *ecs.World) (float32, bool) {
	e, ok := w.First(component.RailCarrierComponent)
	if !ok {
		return 0, false
	}
	rider, ok := ecs.Get(w, e, component.RailRiderComponent)
	if !ok {
		return 0, false
	}
	return rider.Progress(), true
}

type RailSystem struct {
	script *SpeedScript
	log    *zap.Logger
}

func NewRailSystem(script *SpeedScript, logger *zap.Logger) *RailSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RailSystem{script: script, log: logger}
}

func (r *RailSystem) Update(w *ecs.World, dt float64) {
	if r == nil || w == nil || dt <= 0 {
		return
	}
	ecs.ForEach(w, component.RailRiderComponent, func(e ecs.Entity, rider *component.RailRider) {
		speed := rider.Speed
		if r.script != nil {
			scripted, err := r.script.Speed(rider.Distance, rider.Lap, rider.Speed)
			if err != nil {
				r.log.Warn("rail: speed script failed, using base speed", zap.Stringer("entity", e), zap.Error(err))
			} else {
				speed = scripted
			}
		}
		Advance(rider, float64(speed)*dt)
	})
}

// Advance moves the rider by delta, wrapping at the lap length in either
// direction.
func Advance(rider *component.RailRider, delta float64) {
	if rider == nil {
		return
	}
	d := float64(rider.Distance) + delta
	length := float64(rider.LapLength)
	if length <= 0 {
		rider.Distance = float32(d)
		return
	}

	laps := math.Floor(d / length)
	d -= laps * length
	rider.Lap += int(laps)

	dist := float32(d)
	if dist >= rider.LapLength {
		dist = 0
		rider.Lap++
	}
	if dist < 0 {
		dist = 0
	}
	rider.Distance = dist
}
