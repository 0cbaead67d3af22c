package database

import (
	"encoding/json"
	"fmt"

	"github.com/wordowl-games/wordowl/internal/cache"
	"github.com/wordowl-games/wordowl/internal/database"
	"github.com/wordowl-games/wordowl/internal/database/identity/model"
	bolt "go.etcd.io/bbolt"
)

var NotFoundErr = fmt.Errorf("not found")

const (
	bucket = "identity"
	pk     = "device"
)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) Fetch() (model.Identity, error) {
	var m model.Identity
	if db.cache != nil {
		if v, ok := db.cache.Get(pk); ok {
			return v.(model.Identity), nil
		}
	}

	var bytes []byte
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return NotFoundErr
		}
		bytes = b.Get([]byte(pk))
		return nil
	}); err != nil {
		return m, fmt.Errorf("view transaction error: %w", err)
	}

	if len(bytes) == 0 {
		return m, NotFoundErr
	}

	if err := json.Unmarshal(bytes, &m); err != nil {
		return m, fmt.Errorf("unmarshal: %v", err)
	}

	if db.cache != nil {
		db.cache.Add(pk, m)
	}

	return m, nil
}

func (db *DB) Store(m model.Identity) error {
	bytes, err := json.Marshal(m)
	if err != nil {
		return err
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			bs, err := tx.CreateBucket([]byte(bucket))
			if err != nil {
				return fmt.Errorf("create bucket: %w", err)
			}
			b = bs
		}

		if err := b.Put([]byte(pk), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}

		if db.cache != nil {
			db.cache.Add(pk, m)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}
