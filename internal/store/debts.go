package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// AddDebtParams are the inputs for recording a debt. Person accepts a
// person id or a name; an unknown name creates the person on the fly.
// Account accepts an id or name and falls back to the store's default
// account when empty.
type AddDebtParams struct {
	Type        core.DebtType
	Person      string
	Amount      core.Money
	Description string
	Date        time.Time
	DueDate     time.Time
	Status      core.DebtStatus
	Notes       string
	Account     string
	// AffectBalance applies the debt to the linked account at creation:
	// money lent out (to-me) decreases it, money borrowed (from-me)
	// increases it.
	AffectBalance bool
}

// AddDebt records a debt, auto-creating the person when needed.
func (s *Store) AddDebt(ctx context.Context, p AddDebtParams) (*core.Debt, error) {
	personRef := core.NormalizeName(p.Person)
	if personRef == "" {
		return nil, fmt.Errorf("add debt: person %w", core.ErrEmptyName)
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}
	dueDate := p.DueDate
	if dueDate.IsZero() {
		dueDate = date
	}
	status := p.Status
	if status == "" {
		status = core.DebtPending
	}
	accountRef := p.Account
	if accountRef == "" {
		accountRef = s.defaultAccount
	}

	debt := core.Debt{
		ID:          newID(prefixDebt),
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		Date:        date,
		DueDate:     dueDate,
		Status:      status,
		Notes:       p.Notes,
		CreatedAt:   time.Now(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)

		person, err := findOrCreatePerson(b, personRef)
		if err != nil {
			return err
		}
		debt.PersonID = person.ID

		accounts := readList[core.Account](b, keyAccounts)
		if i, ok := lookupAccount(accounts, accountRef); ok {
			debt.AccountID = accounts[i].ID
		} else if p.AffectBalance {
			return fmt.Errorf("account %q: %w", accountRef, ErrNotFound)
		} else {
			slog.WarnContext(ctx, "Debt account not resolved", "account", accountRef)
		}

		if p.AffectBalance {
			delta := p.Amount.Neg() // to-me: money leaves the account
			if p.Type == core.DebtFromMe {
				delta = p.Amount // borrowed money arrives
			}
			if _, err := adjustAccountBalance(b, debt.AccountID, delta); err != nil {
				return err
			}
		}

		debts := readList[core.Debt](b, keyDebts)
		return writeList(b, keyDebts, append(debts, debt))
	})
	if err != nil {
		return nil, fmt.Errorf("add debt: %w", err)
	}

	slog.InfoContext(ctx, "Debt recorded",
		"id", debt.ID,
		"type", debt.Type,
		"amount_cents", debt.Amount.Cents,
		"person_id", debt.PersonID,
		"affect_balance", p.AffectBalance)
	return &debt, nil
}

// GetDebts returns all debts in stored order.
func (s *Store) GetDebts(ctx context.Context) ([]core.Debt, error) {
	var debts []core.Debt
	err := s.db.View(func(tx *bolt.Tx) error {
		debts = readList[core.Debt](s.bucket(tx), keyDebts)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get debts: %w", err)
	}
	return debts, nil
}

// PayDebt settles part or all of a payable (from-me) debt, withdrawing
// amount from the resolved account. Settling a receivable this way is
// rejected: receipts must go through ReceiveDebt.
func (s *Store) PayDebt(ctx context.Context, debtID string, amount core.Money, account string) (*core.Debt, error) {
	return s.settleDebt(ctx, debtID, amount, account, core.DebtFromMe)
}

// ReceiveDebt settles part or all of a receivable (to-me) debt, depositing
// amount into the resolved account.
func (s *Store) ReceiveDebt(ctx context.Context, debtID string, amount core.Money, account string) (*core.Debt, error) {
	return s.settleDebt(ctx, debtID, amount, account, core.DebtToMe)
}

// settleDebt applies a payment or receipt. The settle amount must be
// positive: the remaining amount only counts down, and paid is terminal.
// Reaching zero forces the paid status, anything else leaves the debt
// partial.
func (s *Store) settleDebt(ctx context.Context, debtID string, amount core.Money, accountRef string, want core.DebtType) (*core.Debt, error) {
	if amount.Cents <= 0 {
		return nil, fmt.Errorf("settle debt: %w", core.ErrNonPositiveAmount)
	}

	var settled core.Debt

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)

		debts := readList[core.Debt](b, keyDebts)
		idx := -1
		for i := range debts {
			if debts[i].ID == debtID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("debt %q: %w", debtID, ErrNotFound)
		}
		if debts[idx].Type != want {
			return fmt.Errorf("%w: debt %q is %s", core.ErrWrongDebtType, debtID, debts[idx].Type)
		}

		delta := amount.Neg() // paying withdraws
		if want == core.DebtToMe {
			delta = amount // receiving deposits
		}
		if _, err := adjustAccountBalance(b, accountRef, delta); err != nil {
			return err
		}

		remaining := debts[idx].Amount.Sub(amount)
		if remaining.Cents <= 0 {
			debts[idx].Amount = core.Money{}
			debts[idx].Status = core.DebtPaid
		} else {
			debts[idx].Amount = remaining
			debts[idx].Status = core.DebtPartial
		}
		settled = debts[idx]

		return writeList(b, keyDebts, debts)
	})
	if err != nil {
		return nil, fmt.Errorf("settle debt: %w", err)
	}

	slog.InfoContext(ctx, "Debt settled",
		"id", settled.ID,
		"status", settled.Status,
		"remaining_cents", settled.Amount.Cents,
		"paid_cents", amount.Cents)
	return &settled, nil
}
