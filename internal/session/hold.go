package session

// EndZoneHold measures continuous time spent inside the end zone. Leaving or
// re-entering the zone restarts the measurement.
type EndZoneHold struct {
	inside bool
	held   float64
}

// Update advances the hold by dt while inside and returns the held time.
// The tick that enters the zone counts towards the hold.
func (h *EndZoneHold) Update(inside bool, dt float64) float64 {
	if !inside {
		h.inside = false
		h.held = 0
		return 0
	}
	if !h.inside {
		h.inside = true
		h.held = 0
	}
	h.held += dt
	return h.held
}

// Inside reports whether the last update was inside the zone.
func (h *EndZoneHold) Inside() bool {
	return h.inside
}

// Held returns the current continuous hold time.
func (h *EndZoneHold) Held() float64 {
	return h.held
}

// Reset forgets the current hold.
func (h *EndZoneHold) Reset() {
	h.inside = false
	h.held = 0
}
