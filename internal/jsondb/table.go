package jsondb

import "fmt"

// table implements the CRUD operations shared by every collection.
type table[T any] struct {
	db       *DB
	rows     func(*document) *[]T
	id       func(*T) *int
	notFound error
}

func (t table[T]) list(match func(T) bool) []T {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()

	out := []T{}
	for _, row := range *t.rows(&t.db.doc) {
		if match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t table[T]) get(id int) (*T, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()

	for _, row := range *t.rows(&t.db.doc) {
		if *t.id(&row) == id {
			return &row, nil
		}
	}
	return nil, t.notFound
}

// mutate runs fn against the collection and persists the document, restoring
// the previous rows when the write fails.
func (t table[T]) mutate(fn func(rows *[]T) error) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	rows := t.rows(&t.db.doc)
	previous := append([]T(nil), (*rows)...)

	if err := fn(rows); err != nil {
		return err
	}
	if err := t.db.persist(); err != nil {
		*rows = previous
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

func (t table[T]) create(v T) (*T, error) {
	err := t.mutate(func(rows *[]T) error {
		next := 1
		for i := range *rows {
			if id := *t.id(&(*rows)[i]); id >= next {
				next = id + 1
			}
		}
		*t.id(&v) = next
		*rows = append(*rows, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (t table[T]) update(id int, apply func(T) T) (*T, error) {
	var updated T
	err := t.mutate(func(rows *[]T) error {
		for i := range *rows {
			if *t.id(&(*rows)[i]) == id {
				updated = apply((*rows)[i])
				*t.id(&updated) = id
				(*rows)[i] = updated
				return nil
			}
		}
		return t.notFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (t table[T]) delete(id int) error {
	return t.mutate(func(rows *[]T) error {
		for i := range *rows {
			if *t.id(&(*rows)[i]) == id {
				*rows = append((*rows)[:i], (*rows)[i+1:]...)
				return nil
			}
		}
		return t.notFound
	})
}
