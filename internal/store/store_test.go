package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fashionstore/ingest/internal/ingest"
)

// createTestStore opens a sqlite-backed store with the sales schema
// applied. The production Postgres driver shares every SQL construct used
// here (ON CONFLICT DO NOTHING, SAVEPOINT, foreign keys).
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.db")
	s, err := Open("sqlite3", "file:"+path+"?_foreign_keys=on", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() failed: %v", err)
	}
	return s
}

// testRecord builds a complete sale record around the identifying fields.
func testRecord(customerID, productID, saleID, itemID, saleDate string) ingest.SaleRecord {
	return ingest.SaleRecord{
		CustomerID:       customerID,
		FirstName:        "Ana",
		LastName:         "Silva",
		Email:            customerID + "@example.com",
		Country:          "FR",
		SignupDate:       "2022-01-10",
		Gender:           "F",
		AgeRange:         "25-34",
		ProductID:        productID,
		ProductName:      "Linen Shirt",
		Brand:            "Maison",
		Category:         "tops",
		CostPrice:        "12.50",
		Color:            "white",
		Size:             "M",
		CatalogPrice:     "39.90",
		SaleID:           saleID,
		SaleDate:         saleDate,
		Channel:          "web",
		ChannelCampaigns: "summer_launch",
		ItemID:           itemID,
		Quantity:         "2",
		DiscountApplied:  "0.10",
	}
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := createTestStore(t)
	// A second application must be a no-op, not an error.
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema() failed: %v", err)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	_, err := Open("sqlite3", "file:/no/such/dir/sales.db", nil)
	if err == nil {
		t.Fatal("Open() succeeded with unreachable database")
	}
	if !ingest.IsStorageError(err) {
		t.Errorf("Open() error = %v, want StorageError", err)
	}
}
