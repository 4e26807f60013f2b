// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "model/"

// BadgerStore keeps the latest artifact per name in an embedded BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a BadgerDB at dir. An empty dir opens an in-memory
// database, which is what the tests use.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an already open database.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func badgerKey(name string) []byte {
	return []byte(badgerKeyPrefix + name)
}

// Save implements Store. Version assignment and the write share one
// transaction.
//
//nolint:gocritic // meta passed by value is filled in and returned
func (s *BadgerStore) Save(ctx context.Context, name string, data interface{}, meta Metadata) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var saved *Metadata
	err := s.db.Update(func(txn *badger.Txn) error {
		prev := 0
		item, err := txn.Get(badgerKey(name))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return fmt.Errorf("get model: %w", err)
		default:
			if err := item.Value(func(val []byte) error {
				m, err := decodeMetadata(bytes.NewReader(val))
				if err != nil {
					return err
				}
				prev = m.Version
				return nil
			}); err != nil {
				return err
			}
		}

		meta.Name = name
		meta.Version = prev + 1
		payload, m, err := encode(data, meta)
		if err != nil {
			return err
		}
		saved = m
		return txn.Set(badgerKey(name), payload)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context, name string, target interface{}) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var meta *Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get model: %w", err)
		}
		return item.Value(func(val []byte) error {
			m, err := decode(bytes.NewReader(val), target)
			if err != nil {
				return err
			}
			meta = m
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// Exists implements Store.
func (s *BadgerStore) Exists(_ context.Context, name string) bool {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(name))
		return err
	})
	return err == nil
}

// List implements Store. Keys sort by name, so iteration order is the
// result order.
func (s *BadgerStore) List(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				m, err := decodeMetadata(bytes.NewReader(val))
				if err != nil {
					return err
				}
				out = append(out, *m)
				return nil
			}); err != nil {
				return fmt.Errorf("read %s: %w", it.Item().Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Verify interface implementations at compile time
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
