package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

func TestExportRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddAccount(ctx, AddAccountParams{Name: "Bank", Type: core.AccountBank, InitialBalance: cents(5000)}); err != nil {
		t.Fatalf("add account: %v", err)
	}
	if _, err := s.AddTransaction(ctx, AddTransactionParams{
		Type: core.Income, Amount: cents(1000), Account: "Bank", Description: "pay", Category: "Salary",
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if _, err := s.AddDebt(ctx, AddDebtParams{Type: core.DebtToMe, Person: "Anna", Amount: cents(300)}); err != nil {
		t.Fatalf("add debt: %v", err)
	}
	if _, err := s.AddSavingsGoal(ctx, AddSavingsGoalParams{Name: "Holiday", TargetAmount: cents(9000)}); err != nil {
		t.Fatalf("add goal: %v", err)
	}

	before, err := s.ExportData(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if before.Version != ExportVersion {
		t.Errorf("export version = %q", before.Version)
	}

	// Wipe everything, then restore from the snapshot.
	if err := s.ClearAllData(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.RestoreData(ctx, before); err != nil {
		t.Fatalf("restore: %v", err)
	}

	after, err := s.ExportData(ctx)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}

	// Equivalent modulo the new exportedAt stamp.
	before.ExportedAt = after.ExportedAt
	b1, _ := json.Marshal(before)
	b2, _ := json.Marshal(after)
	if string(b1) != string(b2) {
		t.Errorf("round-trip diverged:\nbefore: %s\nafter:  %s", b1, b2)
	}
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	s := newTestStore(t)

	err := s.RestoreData(context.Background(), &Export{Version: "99"})
	if !errors.Is(err, ErrUnsupportedExport) {
		t.Errorf("expected ErrUnsupportedExport, got %v", err)
	}
}

func TestExportFilenameCarriesTimestamp(t *testing.T) {
	s := newTestStore(t)

	export, err := s.ExportData(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	name := export.Filename()
	if !strings.HasPrefix(name, "soldi-export-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected filename: %s", name)
	}
	if !strings.Contains(name, export.ExportedAt.Format("20060102")) {
		t.Errorf("filename missing timestamp: %s", name)
	}
}

// A corrupted persisted value is silently replaced by the structural
// default, never surfaced as an error.
func TestCorruptCollectionFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soldi.db")
	ctx := context.Background()

	s, err := Open(path, Options{Namespace: "soldi", DefaultAccount: "Cash"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.AddTransaction(ctx, AddTransactionParams{
		Type: core.Income, Amount: cents(100), Account: "Cash", Category: "Salary",
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Scribble over the stored transactions list.
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		t.Fatalf("raw open: %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("soldi")).Put([]byte(keyTransactions), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("raw close: %v", err)
	}

	s2 := openTestStore(t, path)
	transactions, err := s2.GetTransactions(ctx)
	if err != nil {
		t.Fatalf("corrupt data must not surface an error, got %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("corrupt collection should read as empty, got %d", len(transactions))
	}

	// The healthy collections are untouched.
	accounts, err := s2.GetAccounts(ctx)
	if err != nil || len(accounts) != 1 {
		t.Errorf("accounts should survive: %v, %d", err, len(accounts))
	}
}
