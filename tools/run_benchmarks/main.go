// Package main benchmarks the tour pipeline over a scenario suite.
// Each scenario is clustered, planned per robot with every planner
// variant, and the timings are aggregated into a CSV report.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/config"
	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/planner"
	"github.com/aeroinspect/tourplan/internal/tour"
)

// variant is one planner configuration under test.
type variant struct {
	name string
	cfg  *planner.Config
}

func variants() []variant {
	astar := planner.DefaultConfig()

	rrt := planner.DefaultConfig()
	rrt.PathPlanningMethod = planner.MethodRRT
	rrt.DistanceEstimationMethod = planner.MethodEuclidean
	rrt.Seed = 1

	return []variant{
		{name: "euclidean", cfg: nil},
		{name: "astar", cfg: &astar},
		{name: "rrt", cfg: &rrt},
	}
}

// result is one scenario x variant x robot measurement.
type result struct {
	scenario   string
	variant    string
	robot      int
	viewpoints int
	waypoints  int
	length     float64
	deferred   int
	runtimeMs  float64
	err        string
}

func main() {
	scenarioDir := flag.String("scenarios", "scenarios", "directory of scenario YAML files")
	outputFile := flag.String("output", "benchmark_results.csv", "output CSV file")
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*scenarioDir, "*.yaml"))
	if err != nil || len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no scenarios found in %s\n", *scenarioDir)
		os.Exit(1)
	}
	sort.Strings(paths)

	var results []result
	for _, path := range paths {
		scenario, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
			continue
		}
		for _, v := range variants() {
			results = append(results, runScenario(scenario, v)...)
		}
	}

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	printSummary(results)
	fmt.Printf("\nResults written to %s\n", *outputFile)
}

func runScenario(scenario *config.Scenario, v variant) []result {
	problem := scenario.Problem()
	viewpoints := scenario.ViewpointList()

	groups, err := cluster.Partition(viewpoints, problem, cluster.MethodKMeans, rand.New(rand.NewSource(1)))
	if err != nil {
		return []result{{scenario: scenario.Name, variant: v.name, err: err.Error()}}
	}

	var out []result
	for _, g := range groups {
		local := make([]core.Viewpoint, len(g.Viewpoints))
		for i, vp := range g.Viewpoints {
			local[i] = core.NewViewpoint(i, vp.Pose)
		}

		r := result{
			scenario:   scenario.Name,
			variant:    v.name,
			robot:      g.Robot,
			viewpoints: len(local),
		}

		started := time.Now()
		path, err := planOne(problem, local, v.cfg, &r)
		r.runtimeMs = float64(time.Since(started).Microseconds()) / 1000

		if err != nil {
			r.err = err.Error()
		} else {
			r.waypoints = len(path)
			r.length = path.Length()
		}
		out = append(out, r)
	}
	return out
}

func planOne(problem *core.InspectionProblem, viewpoints []core.Viewpoint, cfg *planner.Config, r *result) (core.Path, error) {
	pl, err := tour.PreparePlanner(problem, viewpoints, cfg)
	if err != nil {
		return nil, err
	}

	session := tour.NewSession(viewpoints, pl)
	path, err := session.PlanTour(tour.NewHeuristicSequencer())
	r.deferred = session.Deferred.Len()
	return path, err
}

func writeCSV(results []result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"scenario", "variant", "robot", "viewpoints", "waypoints", "length", "deferred", "runtime_ms", "error"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.scenario,
			r.variant,
			fmt.Sprintf("%d", r.robot),
			fmt.Sprintf("%d", r.viewpoints),
			fmt.Sprintf("%d", r.waypoints),
			fmt.Sprintf("%.3f", r.length),
			fmt.Sprintf("%d", r.deferred),
			fmt.Sprintf("%.3f", r.runtimeMs),
			r.err,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []result) {
	byVariant := make(map[string][]result)
	var names []string
	for _, r := range results {
		if _, seen := byVariant[r.variant]; !seen {
			names = append(names, r.variant)
		}
		byVariant[r.variant] = append(byVariant[r.variant], r)
	}
	sort.Strings(names)

	fmt.Println("\n=== Benchmark Summary ===")
	fmt.Printf("%-12s %6s %6s %12s %12s %12s\n", "variant", "runs", "fails", "mean length", "mean ms", "stddev ms")

	for _, name := range names {
		rs := byVariant[name]

		var lengths, runtimes []float64
		fails := 0
		for _, r := range rs {
			if r.err != "" {
				fails++
				continue
			}
			lengths = append(lengths, r.length)
			runtimes = append(runtimes, r.runtimeMs)
		}

		meanLen := stat.Mean(lengths, nil)
		meanMs := stat.Mean(runtimes, nil)
		sdMs := stat.StdDev(runtimes, nil)

		fmt.Printf("%-12s %6d %6d %12.2f %12.2f %12.2f\n", name, len(rs), fails, meanLen, meanMs, sdMs)
	}
}
