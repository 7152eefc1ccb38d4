package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cleanapi/internal/app"
	"cleanapi/internal/infrastructure"
	"cleanapi/pkg/contracts"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if err := run(context.Background()); err != nil {
		slog.Error("Application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	application, err := app.NewApplication(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer infrastructure.CloseLogFile()

	return application.Run(ctx)
}
