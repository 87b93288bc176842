package main

import (
	"fmt"
	"math/rand"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/config"
	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/sim"
	"github.com/aeroinspect/tourplan/internal/tour"
)

func simulateCmd() *cobra.Command {
	var scenarioPath string
	var speed float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Plan all tours and replay them to estimate fleet timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.Load(scenarioPath)
			if err != nil {
				return err
			}

			problem := scenario.Problem()
			viewpoints := scenario.ViewpointList()

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

			tours := make([]core.Path, len(groups))
			for _, g := range groups {
				local := reindex(g.Viewpoints)

				pl, err := tour.PreparePlanner(problem, local, scenario.Planner)
				if err != nil {
					return err
				}

				session := tour.NewSession(local, pl)
				path, err := session.PlanTour(tour.NewHeuristicSequencer())
				if err != nil {
					return fmt.Errorf("robot %d: %w", g.Robot, err)
				}
				tours[g.Robot] = path
			}

			cfg := sim.DefaultConfig()
			cfg.Speed = speed
			res, err := sim.Replay(tours, cfg)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			bold.Printf("Scenario %s: %d robots at %.1f units/s\n", scenario.Name, len(tours), speed)
			for _, r := range res.Robots {
				fmt.Printf("  robot %d: length %.2f, duration %.1fs\n", r.Robot, r.TourLength, r.Duration)
			}
			bold.Printf("  fleet makespan: %.1fs\n", res.Makespan)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file (required)")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "robot cruise speed, units per second")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for clustering")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
