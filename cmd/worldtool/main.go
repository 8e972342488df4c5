// Command worldtool generates, inspects and persists voxel worlds without a
// window.
//
//	worldtool [-v] <command> [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string, log *slog.Logger) error
}

var commands = map[string]command{
	"map":   {"render a top-down PNG of a generated area", runMap},
	"stats": {"generate and mesh an area and report block, mesh and timing statistics", runStats},
	"save":  {"generate an area and write it to a .json file or LevelDB directory", runSave},
	"load":  {"restore a saved world and report its contents", runLoad},
	"fetch": {"download a saved world from a URL or path (git::, http, s3, file)", runFetch},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: worldtool [-v] <command> [flags]\n\ncommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-6s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(out, "\nRun 'worldtool <command> -h' for command flags.\n")
}

func main() {
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "worldtool: unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, flag.Args()[1:], log); err != nil {
		log.Error(flag.Arg(0)+" failed", "error", err)
		os.Exit(1)
	}
}
