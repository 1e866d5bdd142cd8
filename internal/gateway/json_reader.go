package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"warikan/internal/domain"
)

// Validation sentinels. Callers classify loader failures with errors.Is; the
// wrapped message names the offending field.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field value")
)

// datePattern is a plausibility check only. Calendar correctness is not
// enforced: "2024-13-40" passes here and is rendered as-is downstream.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// billFile mirrors the JSON wire shape of a bill. Leaf fields decode through
// pointers so a missing key is distinguishable from a zero value.
type billFile struct {
	Date          *string        `json:"date"`
	Location      *string        `json:"location"`
	TipPercentage *float64       `json:"tipPercentage"`
	Items         []billFileItem `json:"items"`
	Persons       []string       `json:"persons"`
}

type billFileItem struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	IsShared bool     `json:"isShared"` // absent means personal
	Person   *string  `json:"person"`
}

// JSONBillRepository implements the BillRepository interface for JSON bill
// files on disk.
type JSONBillRepository struct{}

// NewJSONBillRepository creates a new repository instance.
func NewJSONBillRepository() *JSONBillRepository {
	return &JSONBillRepository{}
}

// GetBill reads and validates a single bill file.
func (r *JSONBillRepository) GetBill(ctx context.Context, path string) (domain.BillInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.BillInput{}, fmt.Errorf("failed to open bill file %s: %w", path, err)
	}

	var bill billFile
	if err := json.Unmarshal(data, &bill); err != nil {
		return domain.BillInput{}, fmt.Errorf("failed to parse bill file %s: %w", path, err)
	}

	input, err := bill.toDomain()
	if err != nil {
		return domain.BillInput{}, fmt.Errorf("invalid bill file %s: %w", path, err)
	}
	return input, nil
}

// ListBills returns the bill files of a directory in name order. Result
// artifacts from earlier runs are skipped so a batch can write its outputs
// next to its inputs.
func (r *JSONBillRepository) ListBills(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasSuffix(name, ".result.json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

// toDomain validates the wire shape and converts it to a domain.BillInput.
// The calculator assumes well-shaped input, so every missing-field and
// bad-value problem must be caught here.
func (b billFile) toDomain() (domain.BillInput, error) {
	if b.Date == nil {
		return domain.BillInput{}, fmt.Errorf("%w: date", ErrMissingField)
	}
	if !datePattern.MatchString(*b.Date) {
		return domain.BillInput{}, fmt.Errorf("%w: date must look like YYYY-MM-DD, got %q", ErrInvalidField, *b.Date)
	}
	if b.Location == nil {
		return domain.BillInput{}, fmt.Errorf("%w: location", ErrMissingField)
	}
	if b.TipPercentage == nil {
		return domain.BillInput{}, fmt.Errorf("%w: tipPercentage", ErrMissingField)
	}
	if b.Items == nil {
		return domain.BillInput{}, fmt.Errorf("%w: items", ErrMissingField)
	}

	items := make([]domain.BillItem, 0, len(b.Items))
	for i, fileItem := range b.Items {
		item, err := fileItem.toDomain()
		if err != nil {
			return domain.BillInput{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}

	return domain.BillInput{
		Date:          *b.Date,
		Location:      *b.Location,
		TipPercentage: *b.TipPercentage,
		Items:         items,
		Persons:       b.Persons,
	}, nil
}

func (it billFileItem) toDomain() (domain.BillItem, error) {
	if it.Name == nil {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if it.Price == nil {
		return nil, fmt.Errorf("%w: price", ErrMissingField)
	}
	if *it.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative, got %v", ErrInvalidField, *it.Price)
	}

	if it.IsShared {
		// A person on a shared item is meaningless and silently dropped.
		return domain.SharedItem{Name: *it.Name, Price: *it.Price}, nil
	}
	if it.Person == nil || *it.Person == "" {
		return nil, fmt.Errorf("%w: person is required for a personal item", ErrMissingField)
	}
	return domain.PersonalItem{Name: *it.Name, Price: *it.Price, Person: *it.Person}, nil
}
