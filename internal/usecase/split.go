package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"warikan/internal/calculator"
	"warikan/internal/domain"
)

// SplitUseCase orchestrates the load, split, write pipeline.
type SplitUseCase struct {
	repo   BillRepository
	writer ResultWriter
}

// NewSplitUseCase creates a new instance of the usecase.
func NewSplitUseCase(repo BillRepository, writer ResultWriter) *SplitUseCase {
	return &SplitUseCase{repo: repo, writer: writer}
}

// ProcessBill runs one bill through the pipeline and writes the result to
// dest (stdout when dest is empty). The computed allocation is returned so
// callers can report on it.
func (uc *SplitUseCase) ProcessBill(ctx context.Context, path, dest string) (*domain.BillOutput, error) {
	// Step 1: Load and validate the bill.
	input, err := uc.repo.GetBill(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not load bill: %w", err)
	}

	// Step 2: Compute the allocation.
	output := calculator.Split(input)

	// Step 3: Deliver the result.
	if err := uc.writer.WriteResult(ctx, output, dest); err != nil {
		return nil, fmt.Errorf("could not write result: %w", err)
	}
	return &output, nil
}

// ProcessBatch runs every bill file in dir through the pipeline, writing one
// result artifact per bill into outDir. A failing bill is recorded in the
// report and the batch moves on; only listing failures and context
// cancellation abort the whole run.
func (uc *SplitUseCase) ProcessBatch(ctx context.Context, dir, outDir string) (*domain.BatchReport, error) {
	paths, err := uc.repo.ListBills(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("could not list bills: %w", err)
	}

	report := domain.BatchReport{
		Summary: domain.BatchSummary{
			RunID:     uuid.NewString(),
			Directory: dir,
		},
		Results: make([]domain.FileResult, 0, len(paths)),
	}

	start := time.Now()
	slog.Info("batch started", "run_id", report.Summary.RunID, "directory", dir, "bills", len(paths))
	if len(paths) == 0 {
		slog.Warn("no bill files found", "directory", dir)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch aborted: %w", err)
		}

		dest := uc.writer.ResultPath(outDir, path)
		output, err := uc.ProcessBill(ctx, path, dest)

		result := domain.FileResult{File: path, Success: err == nil}
		if err != nil {
			result.Error = err.Error()
			report.Summary.Failed++
			slog.Error("bill failed", "file", path, "error", err)
		} else {
			result.Output = dest
			report.Summary.Succeeded++
			slog.Info("bill processed", "file", path, "people", len(output.Items), "total", output.TotalAmount)
		}
		report.Results = append(report.Results, result)
	}

	report.Summary.Processed = len(report.Results)
	report.Summary.DurationMS = time.Since(start).Milliseconds()
	slog.Info("batch complete",
		"run_id", report.Summary.RunID,
		"processed", report.Summary.Processed,
		"succeeded", report.Summary.Succeeded,
		"failed", report.Summary.Failed,
		"duration_ms", report.Summary.DurationMS,
	)
	return &report, nil
}
