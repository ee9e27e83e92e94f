// Command seed writes a deterministic synthetic snapshot to a sqlite
// file, for local runs and demos.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/rivers/internal/adapters/snapshotio"
	"github.com/okian/rivers/internal/synthetic"
	"github.com/okian/rivers/pkg/logger"
)

func main() {
	var (
		out   = flag.String("out", "snapshot.db", "output sqlite file")
		seed  = flag.Int64("seed", 42, "random seed")
		plays = flag.Int("plays", 900, "offensive plays per team and season")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get().Named("seed")

	ctx := context.Background()
	gen := synthetic.NewGenerator(
		synthetic.WithSeed(*seed),
		synthetic.WithPlaysPerSeason(*plays),
	)

	rows := gen.Plays()
	if err := snapshotio.Save(ctx, *out, rows, gen.TeamGrades(), gen.PlayerGrades(), gen.Injuries()); err != nil {
		log.Error(ctx, "failed to write snapshot", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "snapshot written",
		logger.String("path", *out),
		logger.Int("plays", len(rows)),
	)
}
