package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"warikan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBillRepository_GetBill(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected domain.BillInput
		wantErr  error
	}{
		{
			name: "valid bill with shared and personal items",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 15,
				"items": [
					{"name": "Soup", "price": 20, "isShared": true},
					{"name": "Steak", "price": 50.5, "isShared": false, "person": "Alice"}
				]
			}`,
			expected: domain.BillInput{
				Date:          "2024-03-21",
				Location:      "Cafe",
				TipPercentage: 15,
				Items: []domain.BillItem{
					domain.SharedItem{Name: "Soup", Price: 20},
					domain.PersonalItem{Name: "Steak", Price: 50.5, Person: "Alice"},
				},
			},
		},
		{
			name: "persons override is carried through verbatim",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 0,
				"items": [{"name": "Platter", "price": 30, "isShared": true}],
				"persons": ["Chika", "Asuka", "Chika"]
			}`,
			expected: domain.BillInput{
				Date:          "2024-03-21",
				Location:      "Cafe",
				TipPercentage: 0,
				Items: []domain.BillItem{
					domain.SharedItem{Name: "Platter", Price: 30},
				},
				Persons: []string{"Chika", "Asuka", "Chika"},
			},
		},
		{
			name: "missing isShared means personal",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": [{"name": "Juice", "price": 5, "person": "Bob"}]
			}`,
			expected: domain.BillInput{
				Date:          "2024-03-21",
				Location:      "Cafe",
				TipPercentage: 10,
				Items: []domain.BillItem{
					domain.PersonalItem{Name: "Juice", Price: 5, Person: "Bob"},
				},
			},
		},
		{
			name: "person on a shared item is dropped",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": [{"name": "Nachos", "price": 12, "isShared": true, "person": "Bob"}]
			}`,
			expected: domain.BillInput{
				Date:          "2024-03-21",
				Location:      "Cafe",
				TipPercentage: 10,
				Items: []domain.BillItem{
					domain.SharedItem{Name: "Nachos", Price: 12},
				},
			},
		},
		{
			name: "implausible date still passes the shape check",
			json: `{
				"date": "2024-13-40",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": []
			}`,
			expected: domain.BillInput{
				Date:          "2024-13-40",
				Location:      "Cafe",
				TipPercentage: 10,
				Items:         []domain.BillItem{},
			},
		},
		{
			name: "empty items array is a valid empty bill",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": []
			}`,
			expected: domain.BillInput{
				Date:          "2024-03-21",
				Location:      "Cafe",
				TipPercentage: 10,
				Items:         []domain.BillItem{},
			},
		},
		{
			name:    "missing date",
			json:    `{"location": "Cafe", "tipPercentage": 10, "items": []}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "malformed date",
			json:    `{"date": "2024/03/21", "location": "Cafe", "tipPercentage": 10, "items": []}`,
			wantErr: ErrInvalidField,
		},
		{
			name:    "missing location",
			json:    `{"date": "2024-03-21", "tipPercentage": 10, "items": []}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "missing tipPercentage",
			json:    `{"date": "2024-03-21", "location": "Cafe", "items": []}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "missing items",
			json:    `{"date": "2024-03-21", "location": "Cafe", "tipPercentage": 10}`,
			wantErr: ErrMissingField,
		},
		{
			name: "item without a price",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": [{"name": "Soup", "isShared": true}]
			}`,
			wantErr: ErrMissingField,
		},
		{
			name: "negative price",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": [{"name": "Refund", "price": -3, "isShared": true}]
			}`,
			wantErr: ErrInvalidField,
		},
		{
			name: "personal item without a person",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": [{"name": "Steak", "price": 50}]
			}`,
			wantErr: ErrMissingField,
		},
		{
			name: "personal item with an empty person",
			json: `{
				"date": "2024-03-21",
				"location": "Cafe",
				"tipPercentage": 10,
				"items": [{"name": "Steak", "price": 50, "person": ""}]
			}`,
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBillFile(t, tt.json)

			repo := NewJSONBillRepository()
			ctx := context.Background()

			got, err := repo.GetBill(ctx, path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestJSONBillRepository_GetBill_FileErrors(t *testing.T) {
	repo := NewJSONBillRepository()
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.GetBill(ctx, "nonexistent_bill.json")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nonexistent_bill.json")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeBillFile(t, `{"date": "2024-03-21",`)
		_, err := repo.GetBill(ctx, path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse bill file")
	})
}

func TestJSONBillRepository_ListBills(t *testing.T) {
	t.Run("json files in name order, artifacts skipped", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"dinner.json", "brunch.json", "notes.txt", "brunch.result.json"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

		repo := NewJSONBillRepository()
		got, err := repo.ListBills(context.Background(), dir)

		assert.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "brunch.json"),
			filepath.Join(dir, "dinner.json"),
		}, got)
	})

	t.Run("directory not found", func(t *testing.T) {
		repo := NewJSONBillRepository()
		_, err := repo.ListBills(context.Background(), "no_such_dir")
		assert.Error(t, err)
	})
}

// Helper functions

func writeBillFile(tb testing.TB, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "bill.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("Failed to write bill fixture: %v", err)
	}
	return path
}

// Benchmark tests

func BenchmarkGetBill(b *testing.B) {
	// Build a large bill for benchmarking
	bill := `{"date": "2024-03-21", "location": "Banquet Hall", "tipPercentage": 12, "items": [`
	for i := 0; i < 1000; i++ {
		if i > 0 {
			bill += ","
		}
		bill += `{"name": "Dish", "price": 9.75, "person": "Alice"}`
	}
	bill += `]}`

	path := writeBillFile(b, bill)

	repo := NewJSONBillRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := repo.GetBill(ctx, path)
		if err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
