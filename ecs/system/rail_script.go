package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// SpeedScript is a tengo program that rewrites the rider's speed each frame.
// It sees distance, lap and base_speed and assigns speed; leaving speed
// untouched keeps the base speed.
type SpeedScript struct {
	compiled *tengo.Compiled
}

func CompileSpeedScript(src []byte) (*SpeedScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("distance", 0.0)
	_ = script.Add("lap", 0)
	_ = script.Add("base_speed", 0.0)
	_ = script.Add("speed", 0.0)

	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rail: compile speed script: %w", err)
	}
	return &SpeedScript{compiled: compiled}, nil
}

func (s *SpeedScript) Speed(distance float32, lap int, base float32) (float32, error) {
	c := s.compiled
	if err := c.Set("distance", float64(distance)); err != nil {
		return base, err
	}
	if err := c.Set("lap", lap); err != nil {
		return base, err
	}
	if err := c.Set("base_speed", float64(base)); err != nil {
		return base, err
	}
	if err := c.Set("speed", float64(base)); err != nil {
		return base, err
	}
	if err := c.Run(); err != nil {
		return base, fmt.Errorf("rail: run speed script: %w", err)
	}
	return float32(c.Get("speed").Float()), nil
}
