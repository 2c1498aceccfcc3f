package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"soldi/internal/core"
)

// AddPersonParams are the inputs for creating a person.
type AddPersonParams struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// AddPerson creates a person, deduplicated by name: when a person with the
// same name already exists it is returned unchanged.
func (s *Store) AddPerson(ctx context.Context, p AddPersonParams) (*core.Person, error) {
	name := core.NormalizeName(p.Name)
	if name == "" {
		return nil, fmt.Errorf("add person: %w", core.ErrEmptyName)
	}

	var person core.Person
	created := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := s.bucket(tx)
		people := readList[core.Person](b, keyPeople)
		for _, existing := range people {
			if existing.Name == name {
				person = existing
				return nil
			}
		}

		person = core.Person{
			ID:        newID(prefixPerson),
			Name:      name,
			Phone:     p.Phone,
			Email:     p.Email,
			Notes:     p.Notes,
			CreatedAt: time.Now(),
		}
		created = true
		return writeList(b, keyPeople, append(people, person))
	})
	if err != nil {
		return nil, fmt.Errorf("add person: %w", err)
	}

	if created {
		slog.InfoContext(ctx, "Person created", "id", person.ID, "name", person.Name)
	}
	return &person, nil
}

// GetPeople returns all people in stored order.
func (s *Store) GetPeople(ctx context.Context) ([]core.Person, error) {
	var people []core.Person
	err := s.db.View(func(tx *bolt.Tx) error {
		people = readList[core.Person](s.bucket(tx), keyPeople)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get people: %w", err)
	}
	return people, nil
}

// findOrCreatePerson resolves ref by id, then by name, creating a person
// with that name when nothing matches. Used by debt creation so debts can
// name people that were never registered explicitly.
func findOrCreatePerson(b *bolt.Bucket, ref string) (core.Person, error) {
	people := readList[core.Person](b, keyPeople)
	for i := range people {
		if people[i].ID == ref {
			return people[i], nil
		}
	}
	for i := range people {
		if people[i].Name == ref {
			return people[i], nil
		}
	}

	person := core.Person{
		ID:        newID(prefixPerson),
		Name:      ref,
		CreatedAt: time.Now(),
	}
	if err := writeList(b, keyPeople, append(people, person)); err != nil {
		return core.Person{}, err
	}
	return person, nil
}
