package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// AddAccountParams are the inputs for creating an account.
type AddAccountParams struct {
	Name           string
	Type           core.AccountType
	InitialBalance core.Money
	// Balance overrides the live balance; when nil it starts at
	// InitialBalance.
	Balance   *core.Money
	CreatedAt time.Time
}

// UpdateAccountParams is a partial account update; nil fields are left
// untouched.
type UpdateAccountParams struct {
	Name    *string
	Type    *core.AccountType
	Balance *core.Money
}

// AddAccount creates an account. The account type is stored as given; the
// name must be non-empty.
func (s *Store) AddAccount(ctx context.Context, p AddAccountParams) (*core.Account, error) {
	name := core.NormalizeName(p.Name)
	if name == "" {
		return nil, fmt.Errorf("add account: %w", core.ErrEmptyName)
	}

	balance := p.InitialBalance
	if p.Balance != nil {
		balance = *p.Balance
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	account := core.Account{
		ID:             newID(prefixAccount),
		Name:           name,
		Type:           p.Type,
		InitialBalance: p.InitialBalance,
		Balance:        balance,
		CreatedAt:      createdAt,
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		accounts := readList[core.Account](b, keyAccounts)
		return writeList(b, keyAccounts, append(accounts, account))
	})
	if err != nil {
		return nil, fmt.Errorf("add account: %w", err)
	}

	slog.InfoContext(ctx, "Account created",
		"id", account.ID,
		"name", account.Name,
		"type", account.Type,
		"balance_cents", account.Balance.Cents)
	return &account, nil
}

// GetAccounts returns all accounts in stored order.
func (s *Store) GetAccounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		accounts = readList[core.Account](s.bucket(tx), keyAccounts)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	return accounts, nil
}

// GetAccount returns the account with the given id.
func (s *Store) GetAccount(ctx context.Context, id string) (*core.Account, error) {
	var account *core.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		accounts := readList[core.Account](s.bucket(tx), keyAccounts)
		for i := range accounts {
			if accounts[i].ID == id {
				account = &accounts[i]
				return nil
			}
		}
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccount applies a partial update to the account with the given
// id. A name update must be non-empty, same as on create.
func (s *Store) UpdateAccount(ctx context.Context, id string, p UpdateAccountParams) error {
	if p.Name != nil && core.NormalizeName(*p.Name) == "" {
		return fmt.Errorf("update account: %w", core.ErrEmptyName)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		accounts := readList[core.Account](b, keyAccounts)
		for i := range accounts {
			if accounts[i].ID != id {
				continue
			}
			if p.Name != nil {
				accounts[i].Name = core.NormalizeName(*p.Name)
			}
			if p.Type != nil {
				accounts[i].Type = *p.Type
			}
			if p.Balance != nil {
				accounts[i].Balance = *p.Balance
			}
			return writeList(b, keyAccounts, accounts)
		}
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Account updated", "id", id)
	return nil
}

// DeleteAccount removes an account. It fails with ErrAccountInUse while
// any transaction still references the account.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)

		transactions := readList[core.Transaction](b, keyTransactions)
		for _, t := range transactions {
			if t.AccountID == id {
				return fmt.Errorf("account %q: %w", id, ErrAccountInUse)
			}
		}

		accounts := readList[core.Account](b, keyAccounts)
		for i := range accounts {
			if accounts[i].ID == id {
				return writeList(b, keyAccounts, append(accounts[:i], accounts[i+1:]...))
			}
		}
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Account deleted", "id", id)
	return nil
}

// TotalBalance sums the live balance of every account.
func (s *Store) TotalBalance(ctx context.Context) (core.Money, error) {
	var total core.Money
	err := s.db.View(func(tx *bolt.Tx) error {
		for _, a := range readList[core.Account](s.bucket(tx), keyAccounts) {
			total = total.Add(a.Balance)
		}
		return nil
	})
	if err != nil {
		return core.Money{}, fmt.Errorf("total balance: %w", err)
	}
	return total, nil
}

// lookupAccount resolves an account reference with a two-step fallback:
// id match first, display-name match second.
func lookupAccount(accounts []core.Account, ref string) (int, bool) {
	for i := range accounts {
		if accounts[i].ID == ref {
			return i, true
		}
	}
	for i := range accounts {
		if accounts[i].Name == ref {
			return i, true
		}
	}
	return -1, false
}

// adjustAccountBalance resolves ref, applies delta to the stored balance,
// and persists the whole account list. It returns the updated account.
func adjustAccountBalance(b *bolt.Bucket, ref string, delta core.Money) (core.Account, error) {
	accounts := readList[core.Account](b, keyAccounts)
	i, ok := lookupAccount(accounts, ref)
	if !ok {
		return core.Account{}, fmt.Errorf("account %q: %w", ref, ErrNotFound)
	}
	accounts[i].Balance = accounts[i].Balance.Add(delta)
	if err := writeList(b, keyAccounts, accounts); err != nil {
		return core.Account{}, err
	}
	return accounts[i], nil
}
