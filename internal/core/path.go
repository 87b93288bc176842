package core

// Path is an ordered sequence of poses.
type Path []Pose

// Length sums the Euclidean segment lengths along the path.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += p[i-1].Dist(p[i])
	}
	return total
}

// Reversed returns a new path with the pose order reversed.
func (p Path) Reversed() Path {
	rev := make(Path, len(p))
	for i, pose := range p {
		rev[len(p)-1-i] = pose
	}
	return rev
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// Closed reports whether the path starts and ends at the same position.
func (p Path) Closed() bool {
	if len(p) < 2 {
		return false
	}
	return p[0].Point == p[len(p)-1].Point
}
