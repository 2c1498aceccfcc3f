package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// ExportVersion tags the export payload format.
const ExportVersion = "1"

// ErrUnsupportedExport is returned when restoring a payload with an
// unknown version tag.
var ErrUnsupportedExport = errors.New("unsupported export version")

// Export is a complete snapshot of the store: all six collections plus the
// meta document, stamped with the export time and a format version.
type Export struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exportedAt"`
	Meta         core.Meta          `json:"meta"`
	Accounts     []core.Account     `json:"accounts"`
	Transactions []core.Transaction `json:"transactions"`
	Debts        []core.Debt        `json:"debts"`
	Savings      []core.SavingsGoal `json:"savings"`
	Categories   []core.Category    `json:"categories"`
	People       []core.Person      `json:"people"`
}

// Filename returns a download name carrying the export timestamp.
func (e *Export) Filename() string {
	return fmt.Sprintf("soldi-export-%s.json", e.ExportedAt.Format("20060102-150405"))
}

// ExportData snapshots every collection into a single payload.
func (s *Store) ExportData(ctx context.Context) (*Export, error) {
	export := &Export{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		export.Meta = readMeta(b)
		export.Accounts = readList[core.Account](b, keyAccounts)
		export.Transactions = readList[core.Transaction](b, keyTransactions)
		export.Debts = readList[core.Debt](b, keyDebts)
		export.Savings = readList[core.SavingsGoal](b, keySavings)
		export.Categories = readList[core.Category](b, keyCategories)
		export.People = readList[core.Person](b, keyPeople)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}

	slog.InfoContext(ctx, "Data exported",
		"accounts", len(export.Accounts),
		"transactions", len(export.Transactions),
		"debts", len(export.Debts))
	return export, nil
}

// RestoreData replaces every collection with the contents of an export
// payload. The payload's meta document is kept as-is so a restore
// reconstructs the exported state exactly.
func (s *Store) RestoreData(ctx context.Context, export *Export) error {
	if export.Version != ExportVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedExport, export.Version)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		if err := writeList(b, keyAccounts, export.Accounts); err != nil {
			return err
		}
		if err := writeList(b, keyTransactions, export.Transactions); err != nil {
			return err
		}
		if err := writeList(b, keyDebts, export.Debts); err != nil {
			return err
		}
		if err := writeList(b, keySavings, export.Savings); err != nil {
			return err
		}
		if err := writeList(b, keyCategories, export.Categories); err != nil {
			return err
		}
		if err := writeList(b, keyPeople, export.People); err != nil {
			return err
		}

		meta, err := json.Marshal(export.Meta)
		if err != nil {
			return fmt.Errorf("marshal meta: %w", err)
		}
		if err := b.Put([]byte(keyMeta), meta); err != nil {
			return fmt.Errorf("write meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore data: %w", err)
	}

	slog.InfoContext(ctx, "Data restored",
		"accounts", len(export.Accounts),
		"transactions", len(export.Transactions))
	return nil
}
