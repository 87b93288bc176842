package core

// InspectionProblem describes one multi-robot inspection task: the world
// obstacles, the flight envelope, and where each robot starts.
type InspectionProblem struct {
	Name           string
	ObstaclePoints []Point
	SafetyArea     []Point // 2D polygon, Z ignored
	MinHeight      float64
	MaxHeight      float64
	StartPoses     []Pose // one per robot
	NumberOfRobots int
}

// Validate checks problem consistency.
func (p *InspectionProblem) Validate() error {
	if p.NumberOfRobots <= 0 {
		return errNoRobots
	}
	if len(p.StartPoses) < p.NumberOfRobots {
		return errMissingStarts
	}
	if p.MaxHeight < p.MinHeight {
		return errBadHeights
	}
	return nil
}
