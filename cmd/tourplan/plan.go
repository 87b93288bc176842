package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/config"
	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/tour"
)

func planCmd() *cobra.Command {
	var scenarioPath string
	var robotIndex int
	var lkhPath string
	var outPath string
	var seed int64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a closed inspection tour for one robot",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.Load(scenarioPath)
			if err != nil {
				return err
			}

			problem := scenario.Problem()
			viewpoints := scenario.ViewpointList()

			// Multi-robot scenarios plan the group owned by --robot.
			if problem.NumberOfRobots > 1 {
				method := cluster.MethodKMeans
				if scenario.Clustering != "" {
					method, err = cluster.ParseMethod(scenario.Clustering)
					if err != nil {
						return err
					}
				}
				groups, err := cluster.Partition(viewpoints, problem, method, rand.New(rand.NewSource(seed)))
				if err != nil {
					return err
				}
				if robotIndex < 0 || robotIndex >= len(groups) {
					return fmt.Errorf("robot index %d out of range [0,%d)", robotIndex, len(groups))
				}
				viewpoints = reindex(groups[robotIndex].Viewpoints)
			}

			pl, err := tour.PreparePlanner(problem, viewpoints, scenario.Planner)
			if err != nil {
				return err
			}

			var seq tour.Sequencer = tour.NewHeuristicSequencer()
			if lkhPath != "" {
				workDir, err := os.MkdirTemp("", "tourplan-lkh-")
				if err != nil {
					return err
				}
				defer os.RemoveAll(workDir)
				seq = tour.NewLKHSequencer(lkhPath, workDir)
			}

			session := tour.NewSession(viewpoints, pl)

			started := time.Now()
			path, err := session.PlanTour(seq)
			if err != nil {
				return err
			}
			elapsed := time.Since(started)

			printSummary(scenario.Name, robotIndex, viewpoints, path, session, elapsed)

			if outPath != "" {
				if err := writeTour(outPath, path); err != nil {
					return err
				}
				fmt.Println("Tour written to", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file (required)")
	cmd.Flags().IntVar(&robotIndex, "robot", 0, "robot index to plan for")
	cmd.Flags().StringVar(&lkhPath, "lkh", "", "path to the LKH solver binary (default: in-process heuristic)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the tour as YAML")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for clustering")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

// reindex renumbers a viewpoint group so indices are session-local.
func reindex(vps []core.Viewpoint) []core.Viewpoint {
	out := make([]core.Viewpoint, len(vps))
	for i, vp := range vps {
		out[i] = core.NewViewpoint(i, vp.Pose)
	}
	return out
}

func printSummary(name string, robot int, viewpoints []core.Viewpoint, path core.Path, session *tour.Session, elapsed time.Duration) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	confirmed, deferred := 0, 0
	n := session.Matrix.Len()
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			switch session.Matrix.State(a, b) {
			case tour.CellConfirmed:
				confirmed++
			case tour.CellDeferred:
				deferred++
			}
		}
	}

	bold.Printf("Scenario %s, robot %d\n", name, robot)
	fmt.Printf("  viewpoints: %d\n", len(viewpoints))
	fmt.Printf("  edges:      %d confirmed, %d deferred off-tour\n", confirmed, deferred)
	fmt.Printf("  waypoints:  %d\n", len(path))
	fmt.Printf("  length:     %.2f\n", path.Length())
	fmt.Printf("  closed:     %v\n", path.Closed())
	green.Printf("  planned in %v\n", elapsed.Round(time.Millisecond))
}

// tourYAML is the serialized tour shape.
type tourYAML struct {
	Poses []config.Pose `yaml:"tour"`
}

func writeTour(path string, p core.Path) error {
	out := tourYAML{Poses: make([]config.Pose, len(p))}
	for i, pose := range p {
		out.Poses[i] = config.Pose{
			X:       pose.Point.X,
			Y:       pose.Point.Y,
			Z:       pose.Point.Z,
			Heading: pose.Heading,
		}
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
