package core

import (
	"errors"
	"strings"
	"time"
)

const (
	AccountCash    AccountType = "cash"
	AccountBank    AccountType = "bank"
	AccountCredit  AccountType = "credit"
	AccountSavings AccountType = "savings"

	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	// DebtToMe is a receivable: money another person owes the owner.
	DebtToMe DebtType = "to-me"
	// DebtFromMe is a payable: money the owner owes another person.
	DebtFromMe DebtType = "from-me"

	DebtPending DebtStatus = "pending"
	DebtPartial DebtStatus = "partial"
	DebtPaid    DebtStatus = "paid"
)

type (
	AccountType     string
	TransactionType string
	DebtType        string
	DebtStatus      string

	Account struct {
		ID             string      `json:"id"`
		Name           string      `json:"name"`
		Type           AccountType `json:"type"`
		InitialBalance Money       `json:"initialBalance"`
		Balance        Money       `json:"balance"`
		CreatedAt      time.Time   `json:"createdAt"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		AccountID   string          `json:"accountId"`
		AccountName string          `json:"accountName"`
		Date        time.Time       `json:"date"`
		Notes       string          `json:"notes,omitempty"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Debt struct {
		ID          string     `json:"id"`
		Type        DebtType   `json:"type"`
		PersonID    string     `json:"personId"`
		Amount      Money      `json:"amount"` // remaining, counts down to zero
		Description string     `json:"description"`
		Date        time.Time  `json:"date"`
		DueDate     time.Time  `json:"dueDate"`
		Status      DebtStatus `json:"status"`
		AccountID   string     `json:"accountId"`
		Notes       string     `json:"notes,omitempty"`
		CreatedAt   time.Time  `json:"createdAt"`
	}

	SavingsGoal struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		TargetAmount  Money     `json:"targetAmount"`
		CurrentAmount Money     `json:"currentAmount"`
		TargetDate    time.Time `json:"targetDate"`
		Description   string    `json:"description,omitempty"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Icon  string          `json:"icon"`
		Color string          `json:"color"`
	}

	Person struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Phone     string    `json:"phone,omitempty"`
		Email     string    `json:"email,omitempty"`
		Notes     string    `json:"notes,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Meta describes the persisted dataset itself.
	Meta struct {
		CreatedAt     time.Time `json:"createdAt"`
		SchemaVersion string    `json:"schemaVersion"`
	}
)

var (
	ErrEmptyName         = errors.New("name is required")
	ErrAccountNotFound   = errors.New("account not found")
	ErrWrongDebtType     = errors.New("operation does not match debt type")
	ErrUnknownPeriod     = errors.New("unknown period")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// IsValidation reports whether err belongs to the validation class of
// failures: bad or missing input that the caller can correct and resubmit.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrWrongDebtType) ||
		errors.Is(err, ErrUnknownPeriod) ||
		errors.Is(err, ErrNonPositiveAmount)
}

// Signed returns the balance delta a transaction applies to its account:
// positive for income, negative for expense.
func (t Transaction) Signed() Money {
	if t.Type == Expense {
		return Money{Cents: -t.Amount.Cents}
	}
	return t.Amount
}

// NormalizeName trims surrounding whitespace from a user-supplied name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
