package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/idilsaglam/cloon/internal/cli"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	// Root flags (apply to every subcommand)
	group := flag.Bool("group", false, "group catalog output by feed/closet")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	configPath := flag.String("config", "", "config file (TOML)")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	code := cli.Run(ctx, args, cli.Options{
		Group:      *group,
		Theme:      *theme,
		ConfigPath: *configPath,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
