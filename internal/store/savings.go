package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// AddSavingsGoalParams are the inputs for creating a savings goal.
type AddSavingsGoalParams struct {
	Name          string
	TargetAmount  core.Money
	CurrentAmount core.Money
	TargetDate    time.Time
	Description   string
}

// UpdateSavingsGoalParams is a partial goal update; nil fields are left
// untouched.
type UpdateSavingsGoalParams struct {
	Name          *string
	TargetAmount  *core.Money
	CurrentAmount *core.Money
	TargetDate    *time.Time
}

// AddSavingsGoal creates a savings goal. The target amount is stored as
// given, zero and negative targets included.
func (s *Store) AddSavingsGoal(ctx context.Context, p AddSavingsGoalParams) (*core.SavingsGoal, error) {
	name := core.NormalizeName(p.Name)
	if name == "" {
		return nil, fmt.Errorf("add savings goal: %w", core.ErrEmptyName)
	}

	goal := core.SavingsGoal{
		ID:            newID(prefixGoal),
		Name:          name,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		TargetDate:    p.TargetDate,
		Description:   p.Description,
		CreatedAt:     time.Now(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		goals := readList[core.SavingsGoal](b, keySavings)
		return writeList(b, keySavings, append(goals, goal))
	})
	if err != nil {
		return nil, fmt.Errorf("add savings goal: %w", err)
	}

	slog.InfoContext(ctx, "Savings goal created",
		"id", goal.ID,
		"name", goal.Name,
		"target_cents", goal.TargetAmount.Cents)
	return &goal, nil
}

// GetSavingsGoals returns all savings goals in stored order.
func (s *Store) GetSavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	var goals []core.SavingsGoal
	err := s.db.View(func(tx *bolt.Tx) error {
		goals = readList[core.SavingsGoal](s.bucket(tx), keySavings)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get savings goals: %w", err)
	}
	return goals, nil
}

// UpdateSavingsGoal applies a partial update to the goal with the given
// id. A name update must be non-empty, same as on create.
func (s *Store) UpdateSavingsGoal(ctx context.Context, id string, p UpdateSavingsGoalParams) error {
	if p.Name != nil && core.NormalizeName(*p.Name) == "" {
		return fmt.Errorf("update savings goal: %w", core.ErrEmptyName)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		goals := readList[core.SavingsGoal](b, keySavings)
		for i := range goals {
			if goals[i].ID != id {
				continue
			}
			if p.Name != nil {
				goals[i].Name = core.NormalizeName(*p.Name)
			}
			if p.TargetAmount != nil {
				goals[i].TargetAmount = *p.TargetAmount
			}
			if p.CurrentAmount != nil {
				goals[i].CurrentAmount = *p.CurrentAmount
			}
			if p.TargetDate != nil {
				goals[i].TargetDate = *p.TargetDate
			}
			return writeList(b, keySavings, goals)
		}
		return fmt.Errorf("savings goal %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Savings goal updated", "id", id)
	return nil
}

// ContributeToSavings moves amount out of the resolved account and into
// the goal's accumulated amount. The amount must be positive; a negative
// contribution would drain the goal back into the account.
func (s *Store) ContributeToSavings(ctx context.Context, goalID string, amount core.Money, account string) (*core.SavingsGoal, error) {
	if amount.Cents <= 0 {
		return nil, fmt.Errorf("contribute to savings: %w", core.ErrNonPositiveAmount)
	}

	var updated core.SavingsGoal

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)

		goals := readList[core.SavingsGoal](b, keySavings)
		idx := -1
		for i := range goals {
			if goals[i].ID == goalID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("savings goal %q: %w", goalID, ErrNotFound)
		}

		if _, err := adjustAccountBalance(b, account, amount.Neg()); err != nil {
			return err
		}

		goals[idx].CurrentAmount = goals[idx].CurrentAmount.Add(amount)
		updated = goals[idx]
		return writeList(b, keySavings, goals)
	})
	if err != nil {
		return nil, fmt.Errorf("contribute to savings: %w", err)
	}

	slog.InfoContext(ctx, "Savings contribution applied",
		"goal_id", updated.ID,
		"amount_cents", amount.Cents,
		"current_cents", updated.CurrentAmount.Cents)
	return &updated, nil
}
