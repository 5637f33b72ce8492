package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"planetcloud/catalog"
	"planetcloud/logging"
	"planetcloud/system"
)

func main() {
	var (
		bodyName = flag.String("body", "", "Body to report (default: every body)")
		seed     = flag.Int64("seed", 1, "Generation seed")
		steps    = flag.Int("steps", 600, "Frames to advance before reading telemetry")
	)
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	names := catalog.Names()
	if *bodyName != "" {
		if !catalog.Has(*bodyName) {
			fmt.Fprintf(os.Stderr, "unknown body %q, want one of %v\n", *bodyName, names)
			os.Exit(2)
		}
		names = []string{*bodyName}
	}

	for _, name := range names {
		start := time.Now()
		sys, err := catalog.Build(ctx, name, *seed)
		if err != nil {
			log.Error(ctx, "build", logging.String("body", name), logging.Err(err))
			os.Exit(1)
		}
		log.Debug(ctx, "built", logging.String("body", name), logging.Any("took", time.Since(start)))
		report(sys, *steps)
	}
}

func report(sys *system.System, steps int) {
	fmt.Printf("=== %s ===\n", sys.Name)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLOUD\tKIND\tPOINTS\tNODE\tDYNAMIC")
	for _, a := range sys.Clouds {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%v\n", a.Cloud.Name, a.Cloud.Kind, a.Cloud.Len(), a.Node.Name, a.Cloud.Dynamic)
	}
	w.Flush()

	fmt.Printf("Nodes: %d  Moons: %d  Wires: %d  Particles: %d\n",
		len(sys.Body.Nodes()), len(sys.Body.Moons), len(sys.Wires), sys.Particles())

	f := sys.Snapshot()
	fmt.Printf("Frame %d: %s  camera %.2f\n", f.Number, f.Reading, f.Camera)
	for i := 0; i < steps; i++ {
		f = sys.Step(1)
	}
	fmt.Printf("Frame %d: %s  camera %.2f\n\n", f.Number, f.Reading, f.Camera)
}
