package store

import (
	"context"
	"testing"

	"github.com/fashionstore/ingest/internal/ingest"
)

func TestSaleDateExists(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	exists, err := s.SaleDateExists(ctx, "2023-06-15")
	if err != nil {
		t.Fatalf("SaleDateExists() failed: %v", err)
	}
	if exists {
		t.Error("SaleDateExists() = true on empty store")
	}

	_, err = s.LoadSales(ctx, []ingest.SaleRecord{testRecord("C1", "P1", "S1", "I1", "2023-06-15")})
	if err != nil {
		t.Fatalf("LoadSales() failed: %v", err)
	}

	exists, err = s.SaleDateExists(ctx, "2023-06-15")
	if err != nil {
		t.Fatalf("SaleDateExists() failed: %v", err)
	}
	if !exists {
		t.Error("SaleDateExists() = false after loading the date")
	}

	exists, err = s.SaleDateExists(ctx, "2023-06-16")
	if err != nil {
		t.Fatalf("SaleDateExists() failed: %v", err)
	}
	if exists {
		t.Error("SaleDateExists() = true for a date never loaded")
	}
}

func TestSaleDateExists_QueryFailure(t *testing.T) {
	s := createTestStore(t)
	s.Close()

	_, err := s.SaleDateExists(context.Background(), "2023-06-15")
	if err == nil {
		t.Fatal("SaleDateExists() succeeded on a closed store")
	}
	if !ingest.IsStorageError(err) {
		t.Errorf("error = %v, want StorageError", err)
	}
}
