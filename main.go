package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/imagetrail/pkg/app"
	"github.com/decker502/imagetrail/pkg/config"
	"github.com/decker502/imagetrail/pkg/embedded"
)

const defaultConfigPath = "data/trail.yaml"

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Path to a YAML config file (overrides embedded defaults; TRAIL_CONFIG is used when empty)")
	variant := flag.Int("variant", 0, "Trail variant to mount (0 = saved setting or config)")
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	defaults, err := embedded.ReadFile(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read embedded config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, defaults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	trailApp, err := app.NewApp(app.Config{
		Trail:   cfg,
		Verbose: *verbose,
		Variant: *variant,
	})
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	trailApp.ConfigureWindow()

	runErr := ebiten.RunGame(trailApp)
	trailApp.Close()
	if runErr != nil {
		log.Fatal(runErr)
	}
}
