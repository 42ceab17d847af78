package bbolt

import (
	"bytes"
	"path/filepath"

	"github.com/gpt-tools/partition/store"
	"go.etcd.io/bbolt"
)

type boltStore struct {
	db *bbolt.DB
}

const (
	dbFileName  = "partition.db"
	tupleBucket = "tuples"
)

func Open(dir string) (store.Store, error) {
	db, err := bbolt.Open(filepath.Join(dir, dbFileName), 0666, nil)
	if err != nil {
		return nil, err
	}

	s := &boltStore{db: db}
	if err := s.createBucketIfNotExists(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *boltStore) createBucketIfNotExists() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(tupleBucket))
		return err
	})
}

func (s *boltStore) Begin(update bool) (store.Tx, error) {
	tx, err := s.db.Begin(update)
	if err != nil {
		return nil, err
	}
	return &boltTx{Tx: tx}, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

type boltTx struct {
	*bbolt.Tx
}

func (tx *boltTx) bucket() *bbolt.Bucket {
	return tx.Bucket([]byte(tupleBucket))
}

func (tx *boltTx) Set(key, value []byte) error {
	return tx.bucket().Put(key, value)
}

// Get returns a copy, since bbolt values are only valid for the life of the transaction.
func (tx *boltTx) Get(key []byte) ([]byte, error) {
	value := tx.bucket().Get(key)
	if value == nil {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (tx *boltTx) Delete(key []byte) error {
	return tx.bucket().Delete(key)
}

func (tx *boltTx) Cursor(forward bool) (store.Cursor, error) {
	return &boltCursor{
		Cursor:  tx.bucket().Cursor(),
		forward: forward,
	}, nil
}

func (tx *boltTx) Commit() error {
	return tx.Tx.Commit()
}

func (tx *boltTx) Rollback() error {
	return tx.Tx.Rollback()
}

type boltCursor struct {
	*bbolt.Cursor
	forward bool

	currItem *store.Item
}

func (c *boltCursor) Seek(seek []byte) error {
	key, value := c.Cursor.Seek(seek)
	c.currItem = &store.Item{Key: key, Value: value}

	c.adjustSeek(key, seek)
	return nil
}

// adjustSeek steps back when scanning in reverse and Seek landed past the
// requested key, or past the end of the bucket.
func (c *boltCursor) adjustSeek(key []byte, seek []byte) {
	if c.forward || bytes.Equal(key, seek) {
		return
	}

	if key == nil {
		key, value := c.Cursor.Last()
		c.currItem = &store.Item{Key: key, Value: value}
		return
	}

	key, value := c.Cursor.Prev()
	c.currItem = &store.Item{Key: key, Value: value}
}

func (c *boltCursor) Next() {
	var key, value []byte
	if c.forward {
		key, value = c.Cursor.Next()
	} else {
		key, value = c.Cursor.Prev()
	}
	c.currItem = &store.Item{Key: key, Value: value}
}

func (c *boltCursor) Valid() bool {
	return c.currItem != nil && c.currItem.Key != nil && c.currItem.Value != nil
}

func (c *boltCursor) Item() (store.Item, error) {
	return store.Item{
		Key:   append([]byte(nil), c.currItem.Key...),
		Value: append([]byte(nil), c.currItem.Value...),
	}, nil
}

func (c *boltCursor) Close() error {
	return nil
}
