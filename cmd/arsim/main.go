// Command arsim plays a scripted AR session against the simulated tracker
// and prints what the view did.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/arcam"
	"github.com/gogpu/arcam/internal/scenario"
)

func main() {
	var (
		path    = flag.String("scenario", "", "scenario TOML file (default: built-in floor tap run)")
		frames  = flag.Int("frames", 0, "override the number of frames")
		verbose = flag.Bool("v", false, "log per-frame diagnostics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	arcam.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s := scenario.Default()
	if *path != "" {
		var err error
		if s, err = scenario.LoadFile(*path); err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
	}
	if *frames > 0 {
		s.Frames = *frames
	}

	res, err := scenario.Run(s)
	if err != nil {
		log.Fatalf("Scenario failed: %v", err)
	}

	st := res.Stats
	log.Printf("frames: %d drawn, %d skipped, %d background draws\n",
		res.ModelFrames, st.Compositor.SkippedFrames, res.BackgroundDraws)
	log.Printf("session: %d created, %d resumes, %d pauses, %d closes, %d failures\n",
		st.Session.Created, st.Session.Resumes, st.Session.Pauses, st.Session.Closes, st.Session.Failures)
	log.Printf("taps: %d offered, %d dropped, %d handled, %d anchors placed\n",
		st.TapsOffered, st.TapsDropped, st.Compositor.TapsHandled, st.Compositor.AnchorsPlaced)
	log.Printf("model at (%.3f, %.3f, %.3f)\n", res.ModelPosition.X(), res.ModelPosition.Y(), res.ModelPosition.Z())
	if st.DrawErrors > 0 || res.LiveObjects > 0 {
		log.Fatalf("%d draw errors, %d GL objects leaked", st.DrawErrors, res.LiveObjects)
	}
}
