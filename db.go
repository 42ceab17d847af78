package partition

import (
	"bytes"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofrs/uuid/v5"
	"github.com/gpt-tools/partition/dto"
	"github.com/gpt-tools/partition/encoding"
	"github.com/gpt-tools/partition/internal"
	"github.com/gpt-tools/partition/ir"
	"github.com/gpt-tools/partition/store"
	badgerstore "github.com/gpt-tools/partition/store/badger"
	bboltstore "github.com/gpt-tools/partition/store/bbolt"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrFeatureNotExist = errors.New("no such feature")
	ErrCorrupted       = errors.New("feature data is corrupted")
)

// DB is a catalog of compiled features. Each saved feature is stored as the
// list of its n-tuple inputs under a generated id.
type DB struct {
	store store.Store
}

const defaultPermDir = 0777

func makeDirIfNotExists(dir string) error {
	if err := os.Mkdir(dir, defaultPermDir); err != nil && !os.IsExist(err) {
		return err
	}
	return nil
}

func openStore(dir string, c *Config) (store.Store, error) {
	if c.InMemory {
		return badgerstore.OpenInMemory()
	}

	if err := makeDirIfNotExists(dir); err != nil {
		return nil, err
	}

	if c.Backend == Bbolt {
		return bboltstore.Open(dir)
	}
	return badgerstore.OpenWithOptions(badger.DefaultOptions(dir), c.GCReclaimInterval, c.GCDiscardRatio)
}

// Open opens the catalog stored in dir, creating it if needed.
// In in-memory mode dir is ignored.
func Open(dir string, opts ...Option) (*DB, error) {
	config, err := defaultConfig().applyOptions(opts)
	if err != nil {
		return nil, err
	}

	s, err := openStore(dir, config)
	if err != nil {
		return nil, err
	}

	return &DB{store: s}, nil
}

func (db *DB) Close() error {
	return db.store.Close()
}

// SaveFeature compiles f into n-tuple inputs and stores them in a single
// transaction. It returns the id of the stored feature.
func (db *DB) SaveFeature(f *ir.Feature) (string, error) {
	tuples, err := f.NTuples()
	if err != nil {
		return "", err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	featureId := id.String()

	tx, err := db.store.Begin(true)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	header, err := internal.FeaturePrefix(featureId)
	if err != nil {
		return "", err
	}

	count, err := msgpack.Marshal(uint64(len(tuples)))
	if err != nil {
		return "", err
	}

	if err := tx.Set(header, count); err != nil {
		return "", err
	}

	for i, tuple := range tuples {
		key, err := internal.TupleKey(featureId, uint64(i))
		if err != nil {
			return "", err
		}

		value, err := encoding.EncodeTuple(tuple)
		if err != nil {
			return "", errors.Wrapf(err, "tuple %d", i)
		}

		if err := tx.Set(key, value); err != nil {
			return "", err
		}
	}
	return featureId, tx.Commit()
}

func readCount(tx store.Tx, featureId string) ([]byte, uint64, error) {
	header, err := internal.FeaturePrefix(featureId)
	if err != nil {
		return nil, 0, err
	}

	value, err := tx.Get(header)
	if err != nil {
		return nil, 0, err
	}

	if value == nil {
		return nil, 0, errors.Wrapf(ErrFeatureNotExist, "%q", featureId)
	}

	var count uint64
	if err := msgpack.Unmarshal(value, &count); err != nil {
		return nil, 0, errors.Wrapf(ErrCorrupted, "header of %q: %s", featureId, err)
	}
	return header, count, nil
}

// iterateTuples visits the stored tuples of a feature in index order.
func iterateTuples(tx store.Tx, header []byte, onItem func(index uint64, item store.Item) error) error {
	cursor, err := tx.Cursor(true)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for err = cursor.Seek(header); err == nil && cursor.Valid(); cursor.Next() {
		item, itemErr := cursor.Item()
		if itemErr != nil {
			return itemErr
		}

		if !bytes.HasPrefix(item.Key, header) {
			break
		}

		if bytes.Equal(item.Key, header) {
			continue
		}

		_, index, parseErr := internal.ParseTupleKey(item.Key)
		if parseErr != nil {
			return errors.Wrap(ErrCorrupted, parseErr.Error())
		}

		if err := onItem(index, item); err != nil {
			return err
		}
	}
	return err
}

// Inputs returns the n-tuple inputs of a stored feature, in predicate order.
func (db *DB) Inputs(featureId string) ([]dto.NTupleInput, error) {
	tx, err := db.store.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	header, count, err := readCount(tx, featureId)
	if err != nil {
		return nil, err
	}

	tuples := make([]dto.NTupleInput, 0, count)
	err = iterateTuples(tx, header, func(index uint64, item store.Item) error {
		if index != uint64(len(tuples)) {
			return errors.Wrapf(ErrCorrupted, "%q: expected tuple %d, found %d", featureId, len(tuples), index)
		}

		tuple, err := encoding.DecodeTuple(item.Value)
		if err != nil {
			return errors.Wrapf(err, "%q: tuple %d", featureId, index)
		}
		tuples = append(tuples, tuple)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uint64(len(tuples)) != count {
		return nil, errors.Wrapf(ErrCorrupted, "%q: expected %d tuples, found %d", featureId, count, len(tuples))
	}
	return tuples, nil
}

func (db *DB) HasFeature(featureId string) (bool, error) {
	tx, err := db.store.Begin(false)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	_, _, err = readCount(tx, featureId)
	if errors.Is(err, ErrFeatureNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Features lists the ids of all stored features.
func (db *DB) Features() ([]string, error) {
	tx, err := db.store.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cursor, err := tx.Cursor(true)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	ids := make([]string, 0)
	for err = cursor.Seek(nil); err == nil && cursor.Valid(); cursor.Next() {
		item, itemErr := cursor.Item()
		if itemErr != nil {
			return nil, itemErr
		}

		if id, ok := internal.ParseFeaturePrefix(item.Key); ok {
			ids = append(ids, id)
		}
	}
	return ids, err
}

func (db *DB) DeleteFeature(featureId string) error {
	tx, err := db.store.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	header, _, err := readCount(tx, featureId)
	if err != nil {
		return err
	}

	keys := [][]byte{header}
	err = iterateTuples(tx, header, func(_ uint64, item store.Item) error {
		keys = append(keys, item.Key)
		return nil
	})
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return tx.Commit()
}
