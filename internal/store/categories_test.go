package store

import (
	"context"
	"testing"

	"soldi/internal/core"
)

func TestAddCategoryDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, _ := s.GetCategories(ctx)

	first, err := s.AddCategory(ctx, AddCategoryParams{Name: "Rent", Type: core.Expense, Icon: "🏠", Color: "#333"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	second, err := s.AddCategory(ctx, AddCategoryParams{Name: "Rent", Type: core.Expense})
	if err != nil {
		t.Fatalf("add category again: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("same (name,type) should return the same category: %s vs %s", first.ID, second.ID)
	}

	after, _ := s.GetCategories(ctx)
	if len(after) != len(before)+1 {
		t.Errorf("collection length changed on duplicate add: %d -> %d", len(before), len(after))
	}
}

func TestAddCategorySameNameDifferentType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	expense, _ := s.AddCategory(ctx, AddCategoryParams{Name: "Other", Type: core.Expense})
	income, err := s.AddCategory(ctx, AddCategoryParams{Name: "Other", Type: core.Income})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if expense.ID == income.ID {
		t.Error("the natural key is (name, type); differing types must create distinct categories")
	}
}

func TestAddPersonDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddPerson(ctx, AddPersonParams{Name: "Anna", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("add person: %v", err)
	}
	second, err := s.AddPerson(ctx, AddPersonParams{Name: "Anna", Phone: "555-9999"})
	if err != nil {
		t.Fatalf("add person again: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("same name should return the same person: %s vs %s", first.ID, second.ID)
	}
	// Dedup happens on creation only: the existing record is not updated.
	if second.Phone != "555-0100" {
		t.Errorf("duplicate add must not update the existing record, phone = %s", second.Phone)
	}

	people, _ := s.GetPeople(ctx)
	if len(people) != 1 {
		t.Errorf("person duplicated: %d entries", len(people))
	}
}
