// Command tourplanvis provides a GUI view of an inspection scenario and
// the planned tours.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/aeroinspect/tourplan/internal/config"
	"github.com/aeroinspect/tourplan/internal/vis"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario YAML file")
	flag.Parse()

	var scenario *config.Scenario
	if *scenarioPath != "" {
		s, err := config.Load(*scenarioPath)
		if err != nil {
			log.Fatal(err)
		}
		scenario = s
	} else {
		scenario = config.Generate(config.DefaultGenerateParams())
	}

	scene, err := vis.BuildScene(scenario)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Tour Planner Viewer"),
			app.Size(unit.Dp(1200), unit.Dp(800)),
		)

		application := vis.NewApp(scene)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
