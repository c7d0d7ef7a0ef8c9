package component

// LapGate is the authored activation window of a gated entity. Both bounds
// are inclusive.
type LapGate struct {
	MinProgress float32
	MaxProgress float32
}

// Contains reports whether progress lies inside the window. A window with
// MinProgress > MaxProgress contains nothing.
func (g LapGate) Contains(progress float32) bool {
	return progress >= g.MinProgress && progress <= g.MaxProgress
}

// LapGateState is runtime only and never serialized.
type LapGateState struct {
	Active bool
}
