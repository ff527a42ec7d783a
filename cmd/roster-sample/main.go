package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/pitchside/internal/sampledata"
	"github.com/okian/pitchside/pkg/logger"
)

const defaultTimeout = 10 * time.Second

func main() {
	var (
		dir     = flag.String("dir", "data", "Output directory")
		format  = flag.String("format", sampledata.FormatCSV, "File format, csv or xlsx")
		sheet   = flag.String("sheet", "Roster", "Worksheet name for xlsx output")
		verify  = flag.String("verify", "", "Base URL of a running service to check after writing")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP timeout for -verify")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Get()

	paths, err := sampledata.Write(ctx, sampledata.Config{Dir: *dir, Format: *format, Sheet: *sheet})
	if err != nil {
		log.Fatal(ctx, "failed to write sample roster", logger.Error(err))
	}
	log.Info(ctx, "set these to load the sample squad",
		logger.String("PITCHSIDE_STARTING_PATH", paths.Starting),
		logger.String("PITCHSIDE_BENCH_PATH", paths.Bench))

	if *verify != "" {
		if err := sampledata.Verify(ctx, *verify, *timeout); err != nil {
			log.Fatal(ctx, "verification failed", logger.Error(err))
		}
	}
}
