package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeroinspect/tourplan/internal/config"
)

func scenarioCmd() *cobra.Command {
	p := config.DefaultGenerateParams()
	var outPath string

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Generate a random inspection scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := config.Generate(p)
			if err := config.Save(outPath, s); err != nil {
				return err
			}
			fmt.Printf("Scenario %s written to %s\n", s.Name, outPath)
			return nil
		},
	}

	cmd.Flags().Int64Var(&p.Seed, "seed", p.Seed, "generation seed")
	cmd.Flags().IntVar(&p.NumViewpoints, "viewpoints", p.NumViewpoints, "number of viewpoints")
	cmd.Flags().IntVar(&p.NumRobots, "robots", p.NumRobots, "number of robots")
	cmd.Flags().Float64Var(&p.AreaSize, "area", p.AreaSize, "side of the square safety area")
	cmd.Flags().IntVar(&p.NumWalls, "walls", p.NumWalls, "number of obstacle walls")
	cmd.Flags().StringVar(&outPath, "out", "scenario.yaml", "output file")
	return cmd
}
