// Package jsondb is the file-backed storage of the mock backend: one JSON
// document holding every collection, rewritten after each mutation.
package jsondb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"resto-app/internal/order"
	"resto-app/internal/product"
	"resto-app/internal/user"
)

type document struct {
	Users    []user.User       `json:"users"`
	Products []product.Product `json:"products"`
	Orders   []order.Order     `json:"orders"`
}

func (d *document) normalize() {
	if d.Users == nil {
		d.Users = []user.User{}
	}
	if d.Products == nil {
		d.Products = []product.Product{}
	}
	if d.Orders == nil {
		d.Orders = []order.Order{}
	}
}

type DB struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// Open loads the document at path, creating an empty one when the file does
// not exist yet.
func Open(path string) (*DB, error) {
	db := &DB{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		db.doc.normalize()
		if err := db.persist(); err != nil {
			return nil, err
		}
		return db, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &db.doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	db.doc.normalize()

	return db, nil
}

func (db *DB) Path() string {
	return db.path
}

// persist writes the document to a temp file next to path and renames it
// into place. Callers hold the write lock.
func (db *DB) persist() error {
	data, err := json.MarshalIndent(db.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(db.path), ".jsondb-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), db.path); err != nil {
		return fmt.Errorf("replace %s: %w", db.path, err)
	}
	return nil
}

func (db *DB) Users() user.Repository {
	return &userRepository{table[user.User]{
		db:       db,
		rows:     func(d *document) *[]user.User { return &d.Users },
		id:       func(u *user.User) *int { return &u.ID },
		notFound: user.ErrUserNotFound,
	}}
}

func (db *DB) Products() product.Repository {
	return &productRepository{table[product.Product]{
		db:       db,
		rows:     func(d *document) *[]product.Product { return &d.Products },
		id:       func(p *product.Product) *int { return &p.ID },
		notFound: product.ErrProductNotFound,
	}}
}

func (db *DB) Orders() order.Repository {
	return &orderRepository{table[order.Order]{
		db:       db,
		rows:     func(d *document) *[]order.Order { return &d.Orders },
		id:       func(o *order.Order) *int { return &o.ID },
		notFound: order.ErrOrderNotFound,
	}}
}
