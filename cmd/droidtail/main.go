package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/droidtail/droidtail/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	project := flag.String("project", "", "Android project root (default: current directory)")
	noPackage := flag.Bool("no-package", false, "start with the package filter disabled")
	poll := flag.Int("poll", 0, "file poll interval in milliseconds (default 200)")
	noReplay := flag.Bool("no-replay", false, "do not seed the view with existing log content")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		LogPath:    flag.Arg(0),
		Project:    *project,
		NoPackage:  *noPackage,
		PollMillis: *poll,
		NoReplay:   *noReplay,
		PrefsPath:  *prefsPath,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "droidtail: %v\n", err)
		return 1
	}
	return 0
}
