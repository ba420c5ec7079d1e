package pairmatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/jaki95/tracksim/internal/logging"
)

var keyPrefix = []byte("match\x00")

// BadgerRepository keeps one key per labelled pair.
type BadgerRepository struct {
	db *badger.DB
}

var _ Repository = (*BadgerRepository)(nil)

type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless InMemory.
	Dir string

	// InMemory runs BadgerDB without disk persistence.
	InMemory bool
}

func NewBadgerRepository(opts BadgerOptions) (*BadgerRepository, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("pairmatch: badger directory is required")
	}
	dbOpts := badger.DefaultOptions(opts.Dir).WithLogger(badgerLogger{})
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open match database: %w", err)
	}
	return &BadgerRepository{db: db}, nil
}

func encodeKey(left, right string) []byte {
	k := make([]byte, 0, len(keyPrefix)+len(left)+1+len(right))
	k = append(k, keyPrefix...)
	k = append(k, left...)
	k = append(k, 0)
	return append(k, right...)
}

func decodeKey(k []byte) (left, right string, err error) {
	rest := bytes.TrimPrefix(k, keyPrefix)
	l, r, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return "", "", fmt.Errorf("malformed match key %q", k)
	}
	return string(l), string(r), nil
}

func (b *BadgerRepository) Load(_ context.Context) (*Matrix, error) {
	m := NewMatrix()
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = keyPrefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			item := it.Item()
			left, right, err := decodeKey(item.KeyCopy(nil))
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			m.Set(left, right, bytes.Equal(val, []byte{'1'}))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	return m, nil
}

func (b *BadgerRepository) Save(ctx context.Context, m *Matrix) error {
	stored, err := b.Load(ctx)
	if err != nil {
		return err
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, p := range stored.Entries() {
		if m.Exists(p.Left, p.Right) {
			continue
		}
		if err := wb.Delete(encodeKey(p.Left, p.Right)); err != nil {
			return fmt.Errorf("failed to remove match: %w", err)
		}
	}
	for _, p := range m.Entries() {
		val := []byte{'0'}
		if p.Match {
			val = []byte{'1'}
		}
		if err := wb.Set(encodeKey(p.Left, p.Right), val); err != nil {
			return fmt.Errorf("failed to store match: %w", err)
		}
	}
	return wb.Flush()
}

func (b *BadgerRepository) Close() error {
	return b.db.Close()
}

// badgerLogger routes badger's own logs through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logging.Error().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Warningf(format string, args ...any) {
	logging.Warn().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Infof(format string, args ...any) {
	logging.Debug().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Debugf(format string, args ...any) {
	logging.Debug().Str("component", "badger").Msgf(format, args...)
}
