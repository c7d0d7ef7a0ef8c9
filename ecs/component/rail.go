package component

// RailRider moves along a looping rail. Distance is the position within the
// current lap and always lies in [0, LapLength) once LapLength is positive.
type RailRider struct {
	Distance  float32
	LapLength float32
	Speed     float32
	Lap       int
}

// Progress is the rider's cumulative position in laps: completed laps plus
// the fraction of the current one. Without a lap length it is the raw
// distance.
func (r RailRider) Progress() float32 {
	if r.LapLength <= 0 {
		return r.Distance
	}
	return float32(r.Lap) + r.Distance/r.LapLength
}

var RailRiderComponent = NewComponent[RailRider]()

// RailCarrier marks the rider whose progress drives every lap gate.
type RailCarrier struct{}

var RailCarrierComponent = NewComponent[RailCarrier]()
