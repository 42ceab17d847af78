// Package store abstracts the ordered key/value engines the catalog runs on.
package store

type Store interface {
	Begin(update bool) (Tx, error)
	Close() error
}

type Tx interface {
	Set(key, value []byte) error
	Delete(key []byte) error
	// Get returns a nil value, and no error, when key is missing.
	Get(key []byte) ([]byte, error)
	Cursor(forward bool) (Cursor, error)
	Commit() error
	Rollback() error
}

type Cursor interface {
	Seek(key []byte) error
	Next()
	Valid() bool
	Item() (Item, error)
	Close() error
}

type Item struct {
	Key, Value []byte
}
