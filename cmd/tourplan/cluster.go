package main

import (
	"fmt"
	"math/rand"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/config"
)

func clusterCmd() *cobra.Command {
	var scenarioPath string
	var methodName string
	var seed int64

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Partition viewpoints among robots and print the assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.Load(scenarioPath)
			if err != nil {
				return err
			}

			name := methodName
			if name == "" {
				name = scenario.Clustering
			}
			if name == "" {
				name = string(cluster.MethodKMeans)
			}
			method, err := cluster.ParseMethod(name)
			if err != nil {
				return err
			}

			problem := scenario.Problem()
			groups, err := cluster.Partition(scenario.ViewpointList(), problem, method, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			bold.Printf("Scenario %s: %d viewpoints, %d robots, method %s\n",
				scenario.Name, len(scenario.Viewpoints), problem.NumberOfRobots, method)
			for _, g := range groups {
				start := problem.StartPoses[g.Robot]
				fmt.Printf("robot %d (start %.1f,%.1f,%.1f): %d viewpoints\n",
					g.Robot, start.Point.X, start.Point.Y, start.Point.Z, len(g.Viewpoints))
				for _, vp := range g.Viewpoints {
					fmt.Printf("  vp %3d at %.2f,%.2f,%.2f\n",
						vp.Index, vp.Pose.Point.X, vp.Pose.Point.Y, vp.Pose.Point.Z)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file (required)")
	cmd.Flags().StringVar(&methodName, "method", "", "override the scenario clustering method")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for the random method")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
