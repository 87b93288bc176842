package core

// Viewpoint is a pose from which a robot observes an inspection target.
// Index is the viewpoint's identity within one planning session.
type Viewpoint struct {
	Index int
	Pose  Pose
}

// NewViewpoint creates a viewpoint with the given identity and pose.
func NewViewpoint(index int, pose Pose) Viewpoint {
	return Viewpoint{Index: index, Pose: pose}
}
