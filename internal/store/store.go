// Package store implements the finance store: six collections persisted
// as JSON documents under namespaced keys in a local bbolt database, with
// the balance-mutation rules that tie accounts, transactions, debts, and
// savings goals together.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// SchemaVersion tags the persisted layout in the meta document.
const SchemaVersion = "1"

// Collection keys inside the namespace bucket. Absence of a key means
// "use the structural default", never an error.
const (
	keyAccounts     = "accounts"
	keyTransactions = "transactions"
	keyDebts        = "debts"
	keySavings      = "savings"
	keyCategories   = "categories"
	keyPeople       = "people"
	keyMeta         = "meta"
)

var collectionKeys = []string{
	keyAccounts, keyTransactions, keyDebts, keySavings, keyCategories, keyPeople,
}

var (
	// ErrNotFound is returned when a record referenced by id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAccountInUse is returned when deleting an account that still has
	// transactions referencing it.
	ErrAccountInUse = errors.New("account has transactions")
)

// Store is a finance store bound to one namespace of a bbolt database.
// Construct it explicitly and inject it into consumers; there is no
// package-level instance.
type Store struct {
	db             *bolt.DB
	namespace      []byte
	defaultAccount string
}

// Options configures a Store.
type Options struct {
	// Namespace is the bucket all collection keys live under.
	Namespace string
	// DefaultAccount is the account name debts fall back to when no
	// account is given.
	DefaultAccount string
}

// Open opens (creating if needed) the database at path, binds the store to
// its namespace, and seeds first-use defaults for any absent collection.
func Open(path string, opts Options) (*Store, error) {
	if opts.Namespace == "" {
		return nil, errors.New("namespace is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{
		db:             db,
		namespace:      []byte(opts.Namespace),
		defaultAccount: opts.DefaultAccount,
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.namespace)
		if err != nil {
			return fmt.Errorf("create namespace bucket: %w", err)
		}
		return s.seed(b)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// bucket returns the namespace bucket of an open transaction.
func (s *Store) bucket(tx *bolt.Tx) *bolt.Bucket {
	return tx.Bucket(s.namespace)
}

// seed writes first-use defaults for every key that is entirely absent.
// Existing data is never overwritten, so seeding is idempotent.
func (s *Store) seed(b *bolt.Bucket) error {
	now := time.Now()

	if b.Get([]byte(keyCategories)) == nil {
		defaults := []core.Category{
			{ID: newID(prefixCategory), Name: "Salary", Type: core.Income, Icon: "💰", Color: "#2e7d32"},
			{ID: newID(prefixCategory), Name: "Groceries", Type: core.Expense, Icon: "🛒", Color: "#ef6c00"},
			{ID: newID(prefixCategory), Name: "Transport", Type: core.Expense, Icon: "🚌", Color: "#1565c0"},
			{ID: newID(prefixCategory), Name: "Bills", Type: core.Expense, Icon: "🧾", Color: "#6a1b9a"},
			{ID: newID(prefixCategory), Name: "Entertainment", Type: core.Expense, Icon: "🎬", Color: "#c62828"},
		}
		if err := writeList(b, keyCategories, defaults); err != nil {
			return err
		}
	}

	if b.Get([]byte(keyAccounts)) == nil {
		name := s.defaultAccount
		if name == "" {
			name = "Cash"
		}
		accounts := []core.Account{{
			ID:        newID(prefixAccount),
			Name:      name,
			Type:      core.AccountCash,
			CreatedAt: now,
		}}
		if err := writeList(b, keyAccounts, accounts); err != nil {
			return err
		}
	}

	for _, key := range []string{keyTransactions, keyDebts, keySavings, keyPeople} {
		if b.Get([]byte(key)) == nil {
			if err := b.Put([]byte(key), []byte("[]")); err != nil {
				return fmt.Errorf("seed %s: %w", key, err)
			}
		}
	}

	if b.Get([]byte(keyMeta)) == nil {
		meta := core.Meta{CreatedAt: now, SchemaVersion: SchemaVersion}
		data, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal meta: %w", err)
		}
		if err := b.Put([]byte(keyMeta), data); err != nil {
			return fmt.Errorf("seed meta: %w", err)
		}
	}

	return nil
}

// ClearAllData removes every key in the namespace and restores first-use
// defaults.
func (s *Store) ClearAllData() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.namespace); err != nil {
			return fmt.Errorf("drop namespace: %w", err)
		}
		b, err := tx.CreateBucket(s.namespace)
		if err != nil {
			return fmt.Errorf("recreate namespace: %w", err)
		}
		return s.seed(b)
	})
}

// readList loads a collection. A missing key yields the empty collection;
// an unparseable value is discarded in favor of the structural default
// with only a warning, never a surfaced error.
func readList[T any](b *bolt.Bucket, key string) []T {
	data := b.Get([]byte(key))
	if data == nil {
		return nil
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		slog.Warn("Discarding unreadable collection", "key", key, "error", err)
		return nil
	}
	return list
}

// writeList persists a whole collection under its key.
func writeList[T any](b *bolt.Bucket, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := b.Put([]byte(key), data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// readMeta loads the meta document, falling back to a fresh one when the
// key is absent or corrupt.
func readMeta(b *bolt.Bucket) core.Meta {
	data := b.Get([]byte(keyMeta))
	if data != nil {
		var meta core.Meta
		if err := json.Unmarshal(data, &meta); err == nil {
			return meta
		}
		slog.Warn("Discarding unreadable meta document")
	}
	return core.Meta{CreatedAt: time.Now(), SchemaVersion: SchemaVersion}
}
