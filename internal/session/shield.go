package session

// MaxShieldDamage is the number of hits a full shield absorbs.
const MaxShieldDamage = 5

// Shield counts hits taken by the craft.
type Shield struct {
	Damage int
	Max    int
}

// NewShield creates an undamaged shield that absorbs max hits.
func NewShield(max int) Shield {
	return Shield{Max: max}
}

// Depleted reports whether the next hit is fatal.
func (s Shield) Depleted() bool {
	return s.Damage >= s.Max
}

// Hit applies one hit. It returns true when the hit is fatal, which happens
// once all hits have been absorbed. Invulnerable shields never take damage.
func (s *Shield) Hit(invulnerable bool) (fatal bool) {
	if s.Depleted() {
		return !invulnerable
	}
	if !invulnerable {
		s.Damage++
	}
	return false
}

// Repair removes all damage.
func (s *Shield) Repair() {
	s.Damage = 0
}

// Strength returns the remaining shield fraction in [0, 1].
func (s Shield) Strength() float64 {
	if s.Max <= 0 {
		return 0
	}
	return float64(s.Max-s.Damage) / float64(s.Max)
}
