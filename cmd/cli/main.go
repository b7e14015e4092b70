package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/weasel/internal/app"
	"github.com/specialistvlad/weasel/internal/cli"
	"github.com/specialistvlad/weasel/internal/config"
	"github.com/specialistvlad/weasel/internal/hcl"
	"github.com/specialistvlad/weasel/internal/yamlcfg"
)

// main is the entrypoint for the weasel application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Frames go to outW and logs to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	yamlLoader := yamlcfg.NewLoader()
	loaders := config.Loaders{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
	}

	appConfig, shouldExit, err := cli.Parse(ctx, args, outW, loaders)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	_, err = app.NewApp(outW, errW, appConfig).Run(ctx)
	return err
}
