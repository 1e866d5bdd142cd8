package usecase

import (
	"context"

	"warikan/internal/domain"
)

// BillRepository defines the interface for loading bill data.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go BillRepository
type BillRepository interface {
	// GetBill reads and validates a single bill file.
	GetBill(ctx context.Context, path string) (domain.BillInput, error)
	// ListBills returns the bill files of a directory in name order.
	ListBills(ctx context.Context, dir string) ([]string, error)
}

// ResultWriter renders split results and delivers them to their destination.
type ResultWriter interface {
	// WriteResult writes the rendered result to dest; an empty dest means stdout.
	WriteResult(ctx context.Context, result domain.BillOutput, dest string) error
	// ResultPath returns the artifact path for a bill processed into outDir.
	ResultPath(outDir, billPath string) string
}
