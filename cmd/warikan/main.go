package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"warikan/internal/gateway"
	"warikan/internal/usecase"
	"warikan/pkg/logging"
)

func main() {
	// .env is optional; when present it can supply LOG_LEVEL before the
	// logger is configured.
	envErr := godotenv.Load()
	logging.Setup()
	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	app := cli.NewApp()
	app.Name = "warikan"
	app.Usage = "Split restaurant bills among diners, shared items and tip included"
	app.Commands = commands()

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func commands() []cli.Command {
	return []cli.Command{
		splitCmd(),
		batchCmd(),
	}
}

func splitCmd() cli.Command {
	return cli.Command{
		Name:  "split",
		Usage: "Split a single bill file",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "input, i", Usage: "Path to the bill JSON file (required)"},
			cli.StringFlag{Name: "out, o", Usage: "Write the result to this file instead of stdout"},
			cli.StringFlag{Name: "format, f", Value: "json", Usage: "Output format: json or text"},
			cli.BoolFlag{Name: "envelope", Usage: "Wrap JSON output in a {success, data} envelope"},
		},
		Action: runSplit,
	}
}

func batchCmd() cli.Command {
	return cli.Command{
		Name:  "batch",
		Usage: "Split every bill file in a directory and print a report",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "dir, d", Usage: "Directory containing bill JSON files (required)"},
			cli.StringFlag{Name: "out, o", Usage: "Directory for result artifacts (default: the input directory)"},
			cli.StringFlag{Name: "format, f", Value: "json", Usage: "Output format: json or text"},
			cli.BoolFlag{Name: "envelope", Usage: "Wrap JSON output in a {success, data} envelope"},
		},
		Action: runBatch,
	}
}

func runSplit(c *cli.Context) error {
	input := c.String("input")
	if input == "" {
		return cli.NewExitError("Error: the -input flag is required.", 1)
	}

	uc, err := buildUseCase(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	output, err := uc.ProcessBill(ctx, input, c.String("out"))
	if err != nil {
		return err
	}

	slog.Info("bill split", "file", input, "people", len(output.Items), "total", output.TotalAmount)
	return nil
}

func runBatch(c *cli.Context) error {
	dir := c.String("dir")
	if dir == "" {
		return cli.NewExitError("Error: the -dir flag is required.", 1)
	}
	outDir := c.String("out")
	if outDir == "" {
		outDir = dir
	}

	uc, err := buildUseCase(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	report, err := uc.ProcessBatch(ctx, dir, outDir)
	if err != nil {
		return err
	}

	// --- Present the Output ---
	// The report goes to stdout; progress logs already went to stderr.
	rendered, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate batch report: %w", err)
	}
	fmt.Println(string(rendered))
	return nil
}

// buildUseCase wires the application from the flags.
// In a larger app, this might be done with a DI container.
// Here, we do it manually, which is clear and simple.
func buildUseCase(c *cli.Context) (*usecase.SplitUseCase, error) {
	format, err := gateway.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	// 1. Create the adapters (the outermost layer)
	repo := gateway.NewJSONBillRepository()
	writer := gateway.NewResultWriter(format, c.Bool("envelope"))

	// 2. Create the usecase and inject them (the core logic layer)
	return usecase.NewSplitUseCase(repo, writer), nil
}

// signalContext cancels on Ctrl-C or SIGTERM so a batch stops between
// bills instead of mid-file.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
