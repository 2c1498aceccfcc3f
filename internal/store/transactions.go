package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// AddTransactionParams are the inputs for recording a transaction. Account
// accepts an account id or a display name.
type AddTransactionParams struct {
	Type        core.TransactionType
	Amount      core.Money
	Description string
	Category    string
	Account     string
	Date        time.Time
	Notes       string
}

// AddTransaction resolves the account, applies the signed amount to its
// balance, and appends the transaction record. The record denormalizes
// both account id and name so listings stay stable if the account is
// later renamed. An unresolvable account is a validation failure.
func (s *Store) AddTransaction(ctx context.Context, p AddTransactionParams) (*core.Transaction, error) {
	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := core.Transaction{
		ID:          newID(prefixTransaction),
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		Category:    p.Category,
		Date:        date,
		Notes:       p.Notes,
		CreatedAt:   time.Now(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)

		accounts := readList[core.Account](b, keyAccounts)
		i, ok := lookupAccount(accounts, p.Account)
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrAccountNotFound, p.Account)
		}
		accounts[i].Balance = accounts[i].Balance.Add(txn.Signed())
		if err := writeList(b, keyAccounts, accounts); err != nil {
			return err
		}

		txn.AccountID = accounts[i].ID
		txn.AccountName = accounts[i].Name

		transactions := readList[core.Transaction](b, keyTransactions)
		return writeList(b, keyTransactions, append(transactions, txn))
	})
	if err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"id", txn.ID,
		"type", txn.Type,
		"amount_cents", txn.Amount.Cents,
		"account", txn.AccountName,
		"category", txn.Category)
	return &txn, nil
}

// GetTransactions returns all transactions sorted ascending by date.
func (s *Store) GetTransactions(ctx context.Context) ([]core.Transaction, error) {
	transactions, err := s.allTransactions()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
	return transactions, nil
}

// GetTransactionsByPeriod returns the transactions dated between the
// period start and now, most recent first.
func (s *Store) GetTransactionsByPeriod(ctx context.Context, period core.Period) ([]core.Transaction, error) {
	transactions, err := s.allTransactions()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start, bounded := period.Start(now)

	filtered := transactions[:0]
	for _, t := range transactions {
		if bounded && t.Date.Before(start) {
			continue
		}
		if t.Date.After(now) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered, nil
}

// MonthlyIncome sums income transactions dated within the calendar month
// containing ref.
func (s *Store) MonthlyIncome(ctx context.Context, ref time.Time) (core.Money, error) {
	return s.monthlyTotal(core.Income, ref)
}

// MonthlyExpenses sums expense transactions dated within the calendar
// month containing ref.
func (s *Store) MonthlyExpenses(ctx context.Context, ref time.Time) (core.Money, error) {
	return s.monthlyTotal(core.Expense, ref)
}

func (s *Store) monthlyTotal(kind core.TransactionType, ref time.Time) (core.Money, error) {
	transactions, err := s.allTransactions()
	if err != nil {
		return core.Money{}, err
	}
	var total core.Money
	for _, t := range transactions {
		if t.Type == kind && core.InMonth(t.Date, ref) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *Store) allTransactions() ([]core.Transaction, error) {
	var transactions []core.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		transactions = readList[core.Transaction](s.bucket(tx), keyTransactions)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	return transactions, nil
}
