package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"soldi/internal/core"
)

// The scenario from the account ledger contract: initial 100, +50 income,
// -30 expense, final balance 120.
func TestTransactionBalanceIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddAccount(ctx, AddAccountParams{Name: "Wallet", Type: core.AccountCash, InitialBalance: cents(10000)})
	if err != nil {
		t.Fatalf("add account: %v", err)
	}

	if _, err := s.AddTransaction(ctx, AddTransactionParams{
		Type: core.Income, Amount: cents(5000), Account: "Wallet", Description: "pay", Category: "Salary",
	}); err != nil {
		t.Fatalf("add income: %v", err)
	}
	if _, err := s.AddTransaction(ctx, AddTransactionParams{
		Type: core.Expense, Amount: cents(3000), Account: "Wallet", Description: "food", Category: "Groceries",
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	got, err := s.GetAccount(ctx, a.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Balance.Cents != 12000 {
		t.Errorf("balance = %d, want 12000", got.Balance.Cents)
	}
	if got.InitialBalance.Cents != 10000 {
		t.Errorf("initial balance must stay immutable, got %d", got.InitialBalance.Cents)
	}

	// balance == initialBalance + signed sum of transactions
	transactions, _ := s.GetTransactions(ctx)
	sum := got.InitialBalance
	for _, txn := range transactions {
		sum = sum.Add(txn.Signed())
	}
	if sum.Cents != got.Balance.Cents {
		t.Errorf("identity broken: initial+signed = %d, balance = %d", sum.Cents, got.Balance.Cents)
	}

	total, err := s.TotalBalance(ctx)
	if err != nil {
		t.Fatalf("total balance: %v", err)
	}
	// Default Cash account sits at zero, so the total equals Wallet.
	if total.Cents != 12000 {
		t.Errorf("total balance = %d, want 12000", total.Cents)
	}
}

func TestAddTransactionUnknownAccount(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddTransaction(context.Background(), AddTransactionParams{
		Type: core.Income, Amount: cents(100), Account: "No Such Account",
	})
	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAddTransactionDenormalizesAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddAccount(ctx, AddAccountParams{Name: "Bank", Type: core.AccountBank})
	txn, err := s.AddTransaction(ctx, AddTransactionParams{
		Type: core.Expense, Amount: cents(700), Account: "Bank", Description: "x", Category: "Bills",
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if txn.AccountID != a.ID || txn.AccountName != "Bank" {
		t.Errorf("denormalized account fields wrong: %+v", txn)
	}

	// Renaming the account must not rewrite history.
	newName := "Renamed"
	if err := s.UpdateAccount(ctx, a.ID, UpdateAccountParams{Name: &newName}); err != nil {
		t.Fatalf("update account: %v", err)
	}
	transactions, _ := s.GetTransactions(ctx)
	if transactions[0].AccountName != "Bank" {
		t.Errorf("transaction account name changed after rename: %s", transactions[0].AccountName)
	}
}

func TestGetTransactionsSortedAscending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddAccount(ctx, AddAccountParams{Name: "Bank", Type: core.AccountBank}); err != nil {
		t.Fatalf("add account: %v", err)
	}

	dates := []time.Time{
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if _, err := s.AddTransaction(ctx, AddTransactionParams{
			Type: core.Expense, Amount: cents(100), Account: "Bank", Date: d, Category: "Bills",
		}); err != nil {
			t.Fatalf("add transaction: %v", err)
		}
	}

	transactions, err := s.GetTransactions(ctx)
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	for i := 1; i < len(transactions); i++ {
		if transactions[i].Date.Before(transactions[i-1].Date) {
			t.Fatalf("transactions not ascending at %d: %v before %v", i, transactions[i].Date, transactions[i-1].Date)
		}
	}
}

func TestGetTransactionsByPeriodMonth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddAccount(ctx, AddAccountParams{Name: "Bank", Type: core.AccountBank}); err != nil {
		t.Fatalf("add account: %v", err)
	}

	now := time.Now()
	monthStart, _ := core.MonthBounds(now)
	inMonth := monthStart.Add(time.Hour)
	lastMonth := monthStart.AddDate(0, 0, -1)

	for _, d := range []time.Time{inMonth, lastMonth, now.Add(-time.Minute)} {
		if _, err := s.AddTransaction(ctx, AddTransactionParams{
			Type: core.Expense, Amount: cents(100), Account: "Bank", Date: d, Category: "Bills",
		}); err != nil {
			t.Fatalf("add transaction: %v", err)
		}
	}

	got, err := s.GetTransactionsByPeriod(ctx, core.PeriodMonth)
	if err != nil {
		t.Fatalf("by period: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions this month, got %d", len(got))
	}
	// Most recent first.
	if got[0].Date.Before(got[1].Date) {
		t.Error("period listing should be descending")
	}
	for _, txn := range got {
		if txn.Date.Before(monthStart) {
			t.Errorf("transaction from previous month included: %v", txn.Date)
		}
	}

	all, err := s.GetTransactionsByPeriod(ctx, core.PeriodAll)
	if err != nil {
		t.Fatalf("by period all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("period all should include everything, got %d", len(all))
	}
}

func TestMonthlyIncomeAndExpenses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddAccount(ctx, AddAccountParams{Name: "Bank", Type: core.AccountBank}); err != nil {
		t.Fatalf("add account: %v", err)
	}

	ref := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	add := func(kind core.TransactionType, amount int64, date time.Time) {
		t.Helper()
		if _, err := s.AddTransaction(ctx, AddTransactionParams{
			Type: kind, Amount: cents(amount), Account: "Bank", Date: date, Category: "Bills",
		}); err != nil {
			t.Fatalf("add transaction: %v", err)
		}
	}

	add(core.Income, 200000, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	add(core.Income, 5000, time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC))
	add(core.Income, 99999, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) // next month
	add(core.Expense, 7500, time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC))
	add(core.Expense, 100, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)) // previous month

	income, err := s.MonthlyIncome(ctx, ref)
	if err != nil {
		t.Fatalf("monthly income: %v", err)
	}
	if income.Cents != 205000 {
		t.Errorf("monthly income = %d, want 205000", income.Cents)
	}

	expenses, err := s.MonthlyExpenses(ctx, ref)
	if err != nil {
		t.Fatalf("monthly expenses: %v", err)
	}
	if expenses.Cents != 7500 {
		t.Errorf("monthly expenses = %d, want 7500", expenses.Cents)
	}
}
