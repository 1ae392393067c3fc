// Package main replays a pointer path through the image trail without a
// window and prints every reveal.
//
// Usage:
//
//	go run ./cmd/trail_replay --script path.yaml
//	go run ./cmd/trail_replay --line 0,300,1200,300 --samples 40
//
// Flags:
//
//	--script <file>    YAML script (see Script)
//	--line x0,y0,x1,y1 Straight path instead of a script
//	--samples <n>      Samples along --line (default 30)
//	--config <file>    Trail config; TRAIL_* env vars apply as usual
//	--verbose          Keep trail logs on stderr
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/imagetrail/pkg/config"
)

var (
	scriptFlag  = flag.String("script", "", "YAML pointer script")
	lineFlag    = flag.String("line", "", "Straight path x0,y0,x1,y1")
	samplesFlag = flag.Int("samples", 30, "Samples along --line")
	configFlag  = flag.String("config", "", "Trail config file")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configFlag, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var script *Script
	switch {
	case *scriptFlag != "":
		script, err = LoadScript(*scriptFlag)
	case *lineFlag != "":
		var x0, y0, x1, y1 float64
		if _, err = fmt.Sscanf(*lineFlag, "%g,%g,%g,%g", &x0, &y0, &x1, &y1); err == nil {
			script = LineScript(x0, y0, x1, y1, *samplesFlag)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	summary, err := Replay(script, cfg.TrailOptions(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%d frames, %d reveals, %d preempted, cursor %d, z %d, idle %v\n",
		summary.Frames, summary.Reveals, summary.Preemptions, summary.FinalCursor, summary.FinalZ, summary.Idle)
}
